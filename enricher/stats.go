package enricher

import (
	"encoding/json"
	"sync/atomic"
)

// Stats counts outcomes of Enrich calls. Events without geolocation
// data are not emitted so these counters are the only way to see a
// miss rate.
type Stats struct {
	emitted  uint64
	notFound uint64
	failed   uint64
	ignored  uint64
}

type StatsSnapshot struct {
	Emitted  uint64 `json:"emitted"`
	NotFound uint64 `json:"not_found"`
	Failed   uint64 `json:"failed"`
	Ignored  uint64 `json:"ignored"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Emitted:  atomic.LoadUint64(&s.emitted),
		NotFound: atomic.LoadUint64(&s.notFound),
		Failed:   atomic.LoadUint64(&s.failed),
		Ignored:  atomic.LoadUint64(&s.ignored),
	}
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	snapshot := s.Snapshot()

	return json.Marshal(&snapshot)
}
