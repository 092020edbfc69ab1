package geolib_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/9seconds/geoenrich/geolib"
)

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Lookup(ctx context.Context, ip string) (*geolib.City, bool, error) {
	args := m.Called(ctx, ip)

	city, _ := args.Get(0).(*geolib.City)

	return city, args.Bool(1), args.Error(2)
}

func makeCity(country, isoCode string) *geolib.City {
	city := &geolib.City{}
	city.Country.Names = map[string]string{"en": country}
	city.Country.IsoCode = isoCode

	return city
}

// subdivisions are anonymous structs in geoip2 so they are easier to
// fill from json.
func addSubdivisions(city *geolib.City, raw string) *geolib.City {
	if err := json.Unmarshal([]byte(raw), &city.Subdivisions); err != nil {
		panic(err)
	}

	return city
}

func setLocation(city *geolib.City, latitude, longitude float64) *geolib.City {
	city.Location = geolib.Coordinates{
		Latitude:  &latitude,
		Longitude: &longitude,
	}

	return city
}
