package enricher

import "github.com/9seconds/geoenrich/geolib"

const (
	EventSessionConnect     = "session-connect"
	EventDirectTCPIPRequest = "direct-tcpip-request"

	EventGeoIPConnect = "geoip.connect"
	EventGeoIPForward = "geoip.forward"
)

// Kind is a kind of incoming event which enricher knows how to handle.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSessionConnect
	KindDirectTCPIPRequest
)

func (k Kind) String() string {
	switch k {
	case KindSessionConnect:
		return EventSessionConnect
	case KindDirectTCPIPRequest:
		return EventDirectTCPIPRequest
	}

	return "unknown"
}

// KindOf maps eventid to Kind.
func KindOf(eventID string) Kind {
	switch eventID {
	case EventSessionConnect:
		return KindSessionConnect
	case EventDirectTCPIPRequest:
		return KindDirectTCPIPRequest
	}

	return KindUnknown
}

// Event is an incoming session event. Fields which are not related to
// geolocation are ignored.
type Event struct {
	EventID string `json:"eventid"`
	Session string `json:"session"`
	SrcIP   string `json:"src_ip,omitempty"`
	DstIP   string `json:"dst_ip,omitempty"`
}

// EnrichedEvent is an event derived from Event with geolocation data.
// It carries only one of SrcIP and DstIP: the address which was
// resolved.
type EnrichedEvent struct {
	EventID string        `json:"eventid"`
	Session string        `json:"session"`
	SrcIP   string        `json:"src_ip,omitempty"`
	DstIP   string        `json:"dst_ip,omitempty"`
	GeoIP   geolib.Record `json:"geoip"`
}

// Address returns the resolved address.
func (e EnrichedEvent) Address() string {
	if e.SrcIP != "" {
		return e.SrcIP
	}

	return e.DstIP
}
