// This package provides a set of structs and functions which turn raw
// geolocation database records into enrichment payloads.
//
// geolib is a core of the geoenrich project. LookupCache sits in front
// of a Resolver and memoizes its answers in a bounded LRU cache: every
// distinct IP address is resolved at most once while it stays in the
// cache, no matter how many goroutines ask for it at the same time.
//
// Resolved records are shaped by Shape: ShapeMinimal keeps only a
// country, ShapeFull adds coordinates, region and city. A shape is
// chosen by configuration so downstream consumers of both generations
// of the payload keep working.
package geolib
