package enricher

import (
	"context"

	"github.com/9seconds/geoenrich/geolib"
)

// Cache returns geolocation records by address. *geolib.LookupCache
// implements it.
type Cache interface {
	Get(ctx context.Context, ip string) (geolib.Record, bool, error)
}

// Sink receives enriched events.
type Sink interface {
	Emit(EnrichedEvent)
}

// Logger receives diagnostics about events which were not enriched.
type Logger interface {
	LookupError(eventID, ip string, err error)
	NotFound(eventID, ip string)
}
