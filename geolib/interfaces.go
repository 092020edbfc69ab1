package geolib

import "context"

// Resolver is an opaque geolocation database. ok is false if database
// has no record for the given address; this is not an error.
type Resolver interface {
	Lookup(ctx context.Context, ip string) (city *City, ok bool, err error)
}
