package projection

import (
	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
)

// Projection is an interface that maps geographical coordinates onto a
// plane and back. Implementations are stateless and safe for concurrent use.
//
// Project converts a LatLng into projected units (meters for the Mercator
// variants, degrees for LonLat). Unproject is its inverse. Bounds describes
// the valid extent of the projected space.
type Projection interface {
	Project(latlng geo.LatLng) geometry.Point
	Unproject(point geometry.Point) geo.LatLng
	Bounds() geometry.Bounds
}

const (
	degToRad = 0.017453292519943295 // math.Pi / 180
	radToDeg = 57.29577951308232    // 180 / math.Pi
)

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}

	return v
}
