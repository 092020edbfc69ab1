// Geoenrich is a service which adds geolocation data to honeypot
// session events.
//
// Idea is simple: attacker connects from 1.2.3.4 or asks a honeypot to
// forward a connection to 5.6.7.8. You want to know where these
// addresses are. So, this is a geolocation task.
//
// Tool itself is organized into 3 logical parts:
//
// Geolib
//
// geolib is a main package of the application which contains
// LookupCache and record shapes. LookupCache resolves each address at
// most once and keeps results in a bounded LRU cache.
//
// Providers
//
// This package has a resolver which works with MaxMind GeoLite2 City
// database and a filter which skips private networks.
//
// Enricher
//
// enricher knows which events should be enriched, which address to
// resolve for each of them and how derived events look like.
//
// A main package itself wires everything together. It reads events as
// JSON lines from stdin or a file, writes enriched events as JSON lines
// to stdout and optionally serves HTTP API.
package main
