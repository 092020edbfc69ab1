package geolib

// Record is a normalized geolocation payload which is attached to
// enriched events under the geoip key.
//
// Location, Region and City are omitted from JSON if there is no data
// for them. Consumers must not assume they are present.
type Record struct {
	Country  Country   `json:"country"`
	Location *Location `json:"location,omitempty"`
	Region   *Region   `json:"region,omitempty"`
	City     string    `json:"city,omitempty"`
}

// Copy returns a deep copy so cached records stay immutable.
func (r Record) Copy() Record {
	if r.Location != nil {
		location := *r.Location
		r.Location = &location
	}

	if r.Region != nil {
		region := *r.Region
		r.Region = &region
	}

	return r
}

type Country struct {
	Name    string `json:"name,omitempty"`
	ISOCode string `json:"iso_code,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Region is the most specific subdivision of a country.
type Region struct {
	Name    string `json:"name"`
	ISOCode string `json:"iso_code,omitempty"`
}
