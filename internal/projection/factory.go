package projection

import (
	"errors"
	"fmt"
)

// Type represents the name of a projection.
type Type string

const (
	// TypeSphericalMercator represents the spherical (Web) Mercator projection.
	TypeSphericalMercator Type = "spherical_mercator"
	// TypeMercator represents the ellipsoidal Mercator projection.
	TypeMercator Type = "mercator"
	// TypeLonLat represents the identity longitude/latitude projection.
	TypeLonLat Type = "lonlat"
)

// ErrUnsupportedType is returned by New for an unknown projection name.
var ErrUnsupportedType = errors.New("unsupported projection type")

// New returns the projection registered under the given name.
//
// Supported types:
// - "spherical_mercator": SphericalMercator (EPSG:3857)
// - "mercator": Mercator (EPSG:3395)
// - "lonlat": LonLat (EPSG:4326 and planar maps)
func New(typ Type) (Projection, error) {
	switch typ {
	case TypeSphericalMercator:
		return SphericalMercator{}, nil
	case TypeMercator:
		return Mercator{}, nil
	case TypeLonLat:
		return LonLat{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
}

// Types lists every supported projection name.
func Types() []Type {
	return []Type{TypeSphericalMercator, TypeMercator, TypeLonLat}
}
