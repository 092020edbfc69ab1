package main

import (
	log "github.com/sirupsen/logrus"
)

type logger struct {
	lookupLog *log.Entry
}

func (l *logger) LookupError(eventID, ip string, err error) {
	l.lookupLog.WithFields(log.Fields{
		"eventid": eventID,
		"ip":      ip,
		"error":   err.Error(),
	}).Warn("geoip: Error in GeoIP lookup")
}

func (l *logger) NotFound(eventID, ip string) {
	l.lookupLog.WithFields(log.Fields{
		"eventid": eventID,
		"ip":      ip,
	}).Debug("geoip: No GeoIP record")
}

func newLogger() *logger {
	return &logger{
		lookupLog: log.WithField("event_name", "lookup"),
	}
}
