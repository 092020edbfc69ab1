package enricher

import "github.com/9seconds/geoenrich/geolib"

type handler struct {
	address func(Event) string
	build   func(Event, geolib.Record) EnrichedEvent
}

var handlers = map[Kind]handler{
	KindSessionConnect: {
		address: func(evt Event) string {
			return evt.SrcIP
		},
		build: func(evt Event, record geolib.Record) EnrichedEvent {
			return EnrichedEvent{
				EventID: EventGeoIPConnect,
				Session: evt.Session,
				SrcIP:   evt.SrcIP,
				GeoIP:   record,
			}
		},
	},
	KindDirectTCPIPRequest: {
		address: func(evt Event) string {
			return evt.DstIP
		},
		build: func(evt Event, record geolib.Record) EnrichedEvent {
			return EnrichedEvent{
				EventID: EventGeoIPForward,
				Session: evt.Session,
				DstIP:   evt.DstIP,
				GeoIP:   record,
			}
		},
	},
}
