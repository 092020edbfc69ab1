package geolib

import (
	"encoding/json"
	"sync"
	"time"
)

// UsageStats tracks how a LookupCache serves its callers.
type UsageStats struct {
	mutex     sync.Mutex
	lastUsed  time.Time
	hits      uint64
	lookups   uint64
	notFound  uint64
	failures  uint64
	evictions uint64
}

// UsageSnapshot is a point-in-time copy of UsageStats.
type UsageSnapshot struct {
	LastUsed  int64  `json:"last_used"`
	Hits      uint64 `json:"hits"`
	Lookups   uint64 `json:"lookups"`
	NotFound  uint64 `json:"not_found"`
	Failures  uint64 `json:"failures"`
	Evictions uint64 `json:"evictions"`
}

// Hit is called when a caller was served from the cache.
func (u *UsageStats) Hit() {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.lastUsed = now
	u.hits++
}

// Looked is called after each resolver call.
func (u *UsageStats) Looked(found bool, err error) {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.lastUsed = now
	u.lookups++

	switch {
	case err != nil:
		u.failures++
	case !found:
		u.notFound++
	}
}

func (u *UsageStats) Evicted() {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	u.evictions++
}

func (u *UsageStats) Snapshot() UsageSnapshot {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	rv := UsageSnapshot{
		Hits:      u.hits,
		Lookups:   u.lookups,
		NotFound:  u.notFound,
		Failures:  u.failures,
		Evictions: u.evictions,
	}

	if !u.lastUsed.IsZero() {
		rv.LastUsed = u.lastUsed.Unix()
	}

	return rv
}

func (u *UsageStats) MarshalJSON() ([]byte, error) {
	snapshot := u.Snapshot()

	return json.Marshal(&snapshot)
}
