package crs

import (
	"math"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
	"github.com/UnknownOlympus/meridian/internal/projection"
)

// DefaultTileSize is the edge of a map tile in pixels.
const DefaultTileSize = 256.0

// Codes of the built-in reference systems.
const (
	CodeEPSG3857   = "EPSG:3857"
	CodeEPSG900913 = "EPSG:900913"
	CodeEPSG3395   = "EPSG:3395"
	CodeEPSG4326   = "EPSG:4326"
	CodeSimple     = "Simple"
)

// mercatorScale maps ±R·π meters onto [0, 1].
const mercatorScale = 0.5 / (math.Pi * projection.EarthRadius)

var (
	// MercatorTransformation maps Mercator meters to a 1x1 square with the
	// origin in the north-west corner.
	MercatorTransformation = geometry.NewTransformation(mercatorScale, 0.5, -mercatorScale, 0.5)

	// EPSG3857 is the spherical (Web) Mercator system used by most tile
	// services.
	EPSG3857 = MustNew(Config{
		Code:           CodeEPSG3857,
		Projection:     projection.SphericalMercator{},
		Transformation: MercatorTransformation,
		WrapLng:        geo.LngRange,
	})

	// EPSG900913 is the legacy code for EPSG3857.
	EPSG900913 = MustNew(Config{
		Code:           CodeEPSG900913,
		Projection:     projection.SphericalMercator{},
		Transformation: MercatorTransformation,
		WrapLng:        geo.LngRange,
	})

	// EPSG3395 is the ellipsoidal Mercator system.
	EPSG3395 = MustNew(Config{
		Code:           CodeEPSG3395,
		Projection:     projection.Mercator{},
		Transformation: MercatorTransformation,
		WrapLng:        geo.LngRange,
	})

	// EPSG4326 is the equirectangular system on WGS84 degrees. The world is
	// two tiles wide at zoom 0.
	EPSG4326 = MustNew(Config{
		Code:           CodeEPSG4326,
		Projection:     projection.LonLat{},
		Transformation: geometry.NewTransformation(1.0/180, 1, -1.0/180, 0.5),
		WrapLng:        geo.LngRange,
	})

	// Simple maps longitude and latitude directly to x and y, for planar
	// maps such as game worlds or floor plans. One unit is one pixel at
	// zoom 0 and the space has no bounds.
	Simple = MustNew(Config{
		Code:           CodeSimple,
		Projection:     projection.LonLat{},
		Transformation: geometry.NewTransformation(1, 0, -1, 0),
		Scale:          PowerScale,
		Zoom:           PowerZoom,
		Distance:       EuclideanDistance,
		Infinite:       true,
	})
)

// TileScale returns the scale function tileSize·2^zoom.
func TileScale(tileSize float64) ScaleFunc {
	return func(zoom float64) float64 {
		return tileSize * math.Exp2(zoom)
	}
}

// TileZoom returns the inverse of TileScale.
func TileZoom(tileSize float64) ZoomFunc {
	return func(scale float64) float64 {
		return math.Log2(scale / tileSize)
	}
}

// PowerScale is 2^zoom.
func PowerScale(zoom float64) float64 {
	return math.Exp2(zoom)
}

// PowerZoom is the inverse of PowerScale.
func PowerZoom(scale float64) float64 {
	return math.Log2(scale)
}

// GreatCircleDistance returns the haversine distance in meters on a sphere
// of geo.EarthRadius.
func GreatCircleDistance(a, b geo.LatLng) float64 {
	return geo.Haversine(a, b, geo.EarthRadius)
}

// EuclideanDistance treats longitude and latitude as planar x and y.
func EuclideanDistance(a, b geo.LatLng) float64 {
	return math.Hypot(b.Lng-a.Lng, b.Lat-a.Lat)
}
