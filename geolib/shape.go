package geolib

import (
	"strings"

	"github.com/juju/errors"
)

// Shape defines which parts of a database record go into Record.
type Shape uint8

const (
	// ShapeMinimal keeps country name and ISO code only.
	ShapeMinimal Shape = iota

	// ShapeFull keeps country, coordinates and, if known, region and
	// city.
	ShapeFull
)

const (
	shapeMinimalName = "minimal"
	shapeFullName    = "full"
)

func (s Shape) String() string {
	switch s {
	case ShapeMinimal:
		return shapeMinimalName
	case ShapeFull:
		return shapeFullName
	}

	return "unknown"
}

func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Build converts a database record into Record. Names are taken for
// the given locale.
func (s Shape) Build(city *City, locale string) Record {
	rv := Record{
		Country: Country{
			Name:    city.Country.Names[locale],
			ISOCode: city.Country.IsoCode,
		},
	}

	if s != ShapeFull {
		return rv
	}

	if city.Location.Known() {
		rv.Location = &Location{
			Latitude:  *city.Location.Latitude,
			Longitude: *city.Location.Longitude,
		}
	}

	if count := len(city.Subdivisions); count > 0 {
		subdivision := city.Subdivisions[count-1]

		if name := subdivision.Names[locale]; name != "" {
			rv.Region = &Region{
				Name:    name,
				ISOCode: subdivision.IsoCode,
			}
		}
	}

	rv.City = city.City.Names[locale]

	return rv
}

// ParseShape returns a shape by its configuration name.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case shapeMinimalName:
		return ShapeMinimal, nil
	case shapeFullName:
		return ShapeFull, nil
	}

	return ShapeMinimal, errors.NotValidf("shape %q", name)
}
