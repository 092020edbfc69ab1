package enricher

import (
	"context"
	"sync/atomic"
)

// Enricher resolves an address of incoming events and emits derived
// events with geolocation data.
//
// Only session-connect (src_ip) and direct-tcpip-request (dst_ip)
// events are enriched. Everything else is ignored without lookup.
// Addresses without geolocation data produce no events. Lookup errors
// are reported to Logger and never propagated.
type Enricher struct {
	stats  Stats
	cache  Cache
	sink   Sink
	logger Logger
}

// Enrich handles a single event to completion: lookup, shaping and
// emission happen before it returns. Emitted event is also returned.
func (e *Enricher) Enrich(ctx context.Context, evt Event) (EnrichedEvent, bool) {
	hdl, ok := handlers[KindOf(evt.EventID)]
	if !ok {
		atomic.AddUint64(&e.stats.ignored, 1)

		return EnrichedEvent{}, false
	}

	addr := hdl.address(evt)

	record, found, err := e.cache.Get(ctx, addr)

	switch {
	case err != nil:
		atomic.AddUint64(&e.stats.failed, 1)
		e.logger.LookupError(evt.EventID, addr, err)

		return EnrichedEvent{}, false
	case !found:
		atomic.AddUint64(&e.stats.notFound, 1)
		e.logger.NotFound(evt.EventID, addr)

		return EnrichedEvent{}, false
	}

	enriched := hdl.build(evt, record)

	e.sink.Emit(enriched)
	atomic.AddUint64(&e.stats.emitted, 1)

	return enriched, true
}

func (e *Enricher) Stats() *Stats {
	return &e.stats
}

func NewEnricher(cache Cache, sink Sink, logger Logger) *Enricher {
	return &Enricher{
		cache:  cache,
		sink:   sink,
		logger: logger,
	}
}
