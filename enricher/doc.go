// Package enricher turns honeypot session events into geolocation
// events.
//
// Each known event kind has its own handler which knows what address
// to resolve and how to build a derived event:
//
//   session-connect      -> src_ip -> geoip.connect
//   direct-tcpip-request -> dst_ip -> geoip.forward
package enricher
