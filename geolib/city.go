package geolib

import "github.com/oschwald/geoip2-golang"

// CityRecord is a record of MaxMind City database as geoip2 decodes it.
type CityRecord = geoip2.City

// City is a resolver answer. Coordinates of CityRecord are plain floats
// so they are decoded once more as pointers: a record without location
// has to differ from a record located at 0,0.
type City struct {
	CityRecord

	Location Coordinates `maxminddb:"location"`
}

type Coordinates struct {
	Latitude  *float64 `maxminddb:"latitude"`
	Longitude *float64 `maxminddb:"longitude"`
}

// Known tells if both latitude and longitude are set.
func (c Coordinates) Known() bool {
	return c.Latitude != nil && c.Longitude != nil
}
