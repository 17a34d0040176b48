package projection

import (
	"math"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
)

// Constants for the spherical (Web) Mercator projection.
const (
	// EarthRadius is the sphere radius in meters, the WGS84 semi-major axis.
	EarthRadius = 6378137.0
	// SphericalMaxLatitude is the latitude where projected y reaches the
	// projected x of the antimeridian, giving a square world (atan(sinh(π))).
	SphericalMaxLatitude = 85.0511287798
)

// SphericalMercator implements the Projection interface for EPSG:3857,
// treating the Earth as a sphere. Latitudes beyond SphericalMaxLatitude are
// clamped.
type SphericalMercator struct{}

// Project converts a LatLng to meters.
func (SphericalMercator) Project(latlng geo.LatLng) geometry.Point {
	lat := clamp(latlng.Lat, SphericalMaxLatitude)
	sin := math.Sin(lat * degToRad)

	return geometry.Point{
		X: EarthRadius * latlng.Lng * degToRad,
		Y: EarthRadius * math.Log((1+sin)/(1-sin)) / 2,
	}
}

// Unproject converts meters back to a LatLng.
func (SphericalMercator) Unproject(point geometry.Point) geo.LatLng {
	return geo.NewLatLng(
		(2*math.Atan(math.Exp(point.Y/EarthRadius))-math.Pi/2)*radToDeg,
		point.X*radToDeg/EarthRadius,
	)
}

// Bounds returns the square [-R·π, R·π] in both axes.
func (SphericalMercator) Bounds() geometry.Bounds {
	d := EarthRadius * math.Pi
	return geometry.NewBounds(geometry.Pt(-d, -d), geometry.Pt(d, d))
}
