package projection

import (
	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
)

// LonLat is the equirectangular identity projection: x is the longitude and
// y the latitude, both in degrees. It backs EPSG:4326 and planar maps.
type LonLat struct{}

func (LonLat) Project(latlng geo.LatLng) geometry.Point {
	return geometry.Point{X: latlng.Lng, Y: latlng.Lat}
}

func (LonLat) Unproject(point geometry.Point) geo.LatLng {
	return geo.NewLatLng(point.Y, point.X)
}

func (LonLat) Bounds() geometry.Bounds {
	return geometry.NewBounds(geometry.Pt(-180, -90), geometry.Pt(180, 90))
}
