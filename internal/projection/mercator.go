package projection

import (
	"math"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
)

// Constants for the ellipsoidal Mercator projection (WGS84).
const (
	// EarthRadiusMinor is the WGS84 semi-minor axis in meters.
	EarthRadiusMinor = 6356752.314245179
	// MercatorMaxLatitude is the ellipsoidal counterpart of SphericalMaxLatitude.
	MercatorMaxLatitude = 85.0840591556

	mercatorExtent     = 20037508.34279
	inverseTolerance   = 1e-12
	inverseIterations  = 15
	minConformalFactor = 1e-10
)

// eccentricity of the WGS84 ellipsoid.
var eccentricity = math.Sqrt(1 - (EarthRadiusMinor/EarthRadius)*(EarthRadiusMinor/EarthRadius))

// Mercator implements the Projection interface for EPSG:3395, the
// ellipsoidal Mercator projection. It is more accurate than
// SphericalMercator at the cost of an iterative inverse.
type Mercator struct{}

// Project converts a LatLng to meters.
func (Mercator) Project(latlng geo.LatLng) geometry.Point {
	phi := clamp(latlng.Lat, MercatorMaxLatitude) * degToRad
	con := eccentricity * math.Sin(phi)
	ts := math.Tan(math.Pi/4-phi/2) / math.Pow((1-con)/(1+con), eccentricity/2)

	return geometry.Point{
		X: latlng.Lng * degToRad * EarthRadius,
		Y: -EarthRadius * math.Log(math.Max(ts, minConformalFactor)),
	}
}

// Unproject converts meters back to a LatLng. The latitude is refined until
// the correction drops below 1e-12 radians, at most 15 times.
func (Mercator) Unproject(point geometry.Point) geo.LatLng {
	ts := math.Exp(-point.Y / EarthRadius)
	phi := math.Pi/2 - 2*math.Atan(ts)

	dphi := 1.0
	for i := 0; i < inverseIterations && math.Abs(dphi) > inverseTolerance; i++ {
		con := eccentricity * math.Sin(phi)
		con = math.Pow((1-con)/(1+con), eccentricity/2)
		dphi = math.Pi/2 - 2*math.Atan(ts*con) - phi
		phi += dphi
	}

	return geo.NewLatLng(phi*radToDeg, point.X*radToDeg/EarthRadius)
}

// Bounds returns the square reached at MercatorMaxLatitude and the antimeridian.
func (Mercator) Bounds() geometry.Bounds {
	return geometry.NewBounds(
		geometry.Pt(-mercatorExtent, -mercatorExtent),
		geometry.Pt(mercatorExtent, mercatorExtent),
	)
}
