package enricher

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// SinkFunc is an adapter to use ordinary functions as sinks.
type SinkFunc func(EnrichedEvent)

func (s SinkFunc) Emit(evt EnrichedEvent) {
	s(evt)
}

// LogSink writes enriched events as JSON lines, one event per line.
type LogSink struct {
	logger *log.Logger
}

func (l *LogSink) Emit(evt EnrichedEvent) {
	fields := log.Fields{
		"eventid": evt.EventID,
		"session": evt.Session,
		"geoip":   evt.GeoIP,
	}

	if evt.SrcIP != "" {
		fields["src_ip"] = evt.SrcIP
	}

	if evt.DstIP != "" {
		fields["dst_ip"] = evt.DstIP
	}

	l.logger.WithFields(fields).Info("geoip: GeoIP record for IP " + evt.Address() + " found")
}

// NewLogSink creates a sink which writes into the given writer.
func NewLogSink(writer io.Writer) *LogSink {
	logger := log.New()

	logger.SetOutput(writer)
	logger.SetLevel(log.InfoLevel)
	logger.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000000Z07:00",
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "timestamp",
			log.FieldKeyMsg:  "message",
		},
	})

	return &LogSink{logger: logger}
}
