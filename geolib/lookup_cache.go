package geolib

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/juju/errors"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCacheSize is a maximal number of distinct addresses kept
	// by LookupCache.
	DefaultCacheSize = 1000

	// DefaultLookupTimeout limits a single resolver call.
	DefaultLookupTimeout = 3 * time.Second

	// DefaultLocale is a locale of country, region and city names.
	DefaultLocale = "en"
)

// LookupCacheOpts tunes LookupCache. Zero values mean defaults.
type LookupCacheOpts struct {
	Size          int
	LookupTimeout time.Duration
	Locale        string
}

type cacheEntry struct {
	record Record
	found  bool
}

// LookupCache memoizes answers of Resolver. Records and negative
// answers are cached until evicted by LRU policy; resolver errors are
// never cached.
type LookupCache struct {
	resolver Resolver
	shape    Shape
	locale   string
	timeout  time.Duration
	cache    *lru.Cache
	group    singleflight.Group
	stats    *UsageStats
}

// Get returns a shaped record for the given address. ok is false if
// resolver has no data for it.
//
// Concurrent calls for the same uncached address share a single
// resolver call.
func (l *LookupCache) Get(ctx context.Context, ip string) (Record, bool, error) {
	if entry, ok := l.get(ip); ok {
		return entry.record.Copy(), entry.found, nil
	}

	if err := ctx.Err(); err != nil {
		return Record{}, false, errors.Annotatef(err, "cannot lookup %s", ip)
	}

	resultChan := l.group.DoChan(ip, func() (interface{}, error) {
		return l.resolve(ip)
	})

	select {
	case <-ctx.Done():
		return Record{}, false, errors.Annotatef(ctx.Err(), "cannot wait for a lookup of %s", ip)
	case result := <-resultChan:
		if result.Err != nil {
			return Record{}, false, result.Err
		}

		entry := result.Val.(cacheEntry)

		return entry.record.Copy(), entry.found, nil
	}
}

// Len returns a number of cached addresses.
func (l *LookupCache) Len() int {
	return l.cache.Len()
}

// Shape returns a shape of cached records.
func (l *LookupCache) Shape() Shape {
	return l.shape
}

func (l *LookupCache) Stats() *UsageStats {
	return l.stats
}

func (l *LookupCache) get(ip string) (cacheEntry, bool) {
	value, ok := l.cache.Get(ip)
	if !ok {
		return cacheEntry{}, false
	}

	l.stats.Hit()

	return value.(cacheEntry), true
}

func (l *LookupCache) resolve(ip string) (interface{}, error) {
	// previous flight for this address could finish between a cache
	// miss and DoChan. Caller was already counted as a miss.
	if value, ok := l.cache.Get(ip); ok {
		return value.(cacheEntry), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	city, found, err := l.resolver.Lookup(ctx, ip)

	l.stats.Looked(found, err)

	if err != nil {
		return nil, errors.Annotatef(err, "cannot resolve %s", ip)
	}

	entry := cacheEntry{
		found: found && city != nil,
	}

	if entry.found {
		entry.record = l.shape.Build(city, l.locale)
	}

	l.cache.Add(ip, entry)

	return entry, nil
}

// NewLookupCache creates a new cache in front of the given resolver.
func NewLookupCache(resolver Resolver, shape Shape, opts LookupCacheOpts) (*LookupCache, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultCacheSize
	}

	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = DefaultLookupTimeout
	}

	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}

	stats := &UsageStats{}

	cache, err := lru.NewWithEvict(opts.Size, func(key, value interface{}) {
		stats.Evicted()
	})
	if err != nil {
		return nil, errors.Annotate(err, "cannot create lru cache")
	}

	return &LookupCache{
		resolver: resolver,
		shape:    shape,
		locale:   opts.Locale,
		timeout:  opts.LookupTimeout,
		cache:    cache,
		stats:    stats,
	}, nil
}
