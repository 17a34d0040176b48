package crs

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
	"github.com/UnknownOlympus/meridian/internal/projection"
)

// Common errors for CRS construction and lookup.
var (
	ErrInvalidTransformation = errors.New("invalid crs transformation")
	ErrMissingProjection     = errors.New("crs projection is required")
	ErrMissingCode           = errors.New("crs code is required")
	ErrMissingZoom           = errors.New("crs with a custom scale needs its zoom inverse")
	ErrUnknownCRS            = errors.New("unknown crs")
)

// ScaleFunc returns the pixel scale factor for a zoom level.
type ScaleFunc func(zoom float64) float64

// ZoomFunc is the inverse of a ScaleFunc.
type ZoomFunc func(scale float64) float64

// DistanceFunc returns the distance between two points in the CRS' unit.
type DistanceFunc func(a, b geo.LatLng) float64

// Config holds everything needed to build a CRS.
//
// Fields:
// - Code: The identifier other modules bind to, e.g. "EPSG:3857".
// - Projection: The projection from LatLng to projected units.
// - Transformation: The affine map from projected units to pixels at scale 1.
// - Scale, Zoom: The per-zoom scale function and its inverse (tile-based by default).
// - Distance: The distance function (great-circle by default).
// - WrapLng, WrapLat: Optional wrap ranges; the zero Range disables wrapping.
// - Infinite: Whether the CRS has no projected bounds.
type Config struct {
	Code           string
	Projection     projection.Projection
	Transformation geometry.Transformation
	Scale          ScaleFunc
	Zoom           ZoomFunc
	Distance       DistanceFunc
	WrapLng        geo.Range
	WrapLat        geo.Range
	Infinite       bool
}

// CRS converts between geographical coordinates, projected coordinates and
// pixel coordinates at a given zoom. A CRS is immutable and safe for
// concurrent use.
type CRS struct {
	code           string
	projection     projection.Projection
	transformation geometry.Transformation
	scale          ScaleFunc
	zoom           ZoomFunc
	distance       DistanceFunc
	wrapLng        geo.Range
	wrapLat        geo.Range
	infinite       bool
}

// New validates cfg and returns the resulting CRS. A missing Scale defaults
// to 256-pixel tiles and a missing Distance to the great-circle distance on
// the mean Earth radius. A custom Scale must come with its Zoom inverse.
func New(cfg Config) (*CRS, error) {
	if cfg.Code == "" {
		return nil, ErrMissingCode
	}
	if cfg.Projection == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingProjection, cfg.Code)
	}
	if err := cfg.Transformation.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTransformation, cfg.Code, err)
	}

	if cfg.Scale == nil {
		cfg.Scale = TileScale(DefaultTileSize)
		cfg.Zoom = TileZoom(DefaultTileSize)
	}
	if cfg.Zoom == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingZoom, cfg.Code)
	}
	if cfg.Distance == nil {
		cfg.Distance = GreatCircleDistance
	}

	return &CRS{
		code:           cfg.Code,
		projection:     cfg.Projection,
		transformation: cfg.Transformation,
		scale:          cfg.Scale,
		zoom:           cfg.Zoom,
		distance:       cfg.Distance,
		wrapLng:        cfg.WrapLng,
		wrapLat:        cfg.WrapLat,
		infinite:       cfg.Infinite,
	}, nil
}

// MustNew is like New but panics on a misconfigured CRS.
func MustNew(cfg Config) *CRS {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}

	return c
}

// Code returns the CRS identifier.
func (c *CRS) Code() string { return c.code }

// Projection returns the underlying projection.
func (c *CRS) Projection() projection.Projection { return c.projection }

// Transformation returns the projected-to-pixel transformation.
func (c *CRS) Transformation() geometry.Transformation { return c.transformation }

// Infinite reports whether the CRS has no projected bounds.
func (c *CRS) Infinite() bool { return c.infinite }

// WrapLng returns the longitude wrap range; the zero Range means none.
func (c *CRS) WrapLng() geo.Range { return c.wrapLng }

// WrapLat returns the latitude wrap range; the zero Range means none.
func (c *CRS) WrapLat() geo.Range { return c.wrapLat }

// LatLngToPoint projects latlng and transforms it to pixels at zoom.
func (c *CRS) LatLngToPoint(latlng geo.LatLng, zoom float64) geometry.Point {
	projected := c.projection.Project(latlng)
	return c.transformation.Transform(projected, c.scale(zoom))
}

// PointToLatLng is the inverse of LatLngToPoint.
func (c *CRS) PointToLatLng(point geometry.Point, zoom float64) geo.LatLng {
	untransformed := c.transformation.Untransform(point, c.scale(zoom))
	return c.projection.Unproject(untransformed)
}

// Project converts latlng to projected units, without zoom scaling.
func (c *CRS) Project(latlng geo.LatLng) geometry.Point {
	return c.projection.Project(latlng)
}

// Unproject converts projected units back to a LatLng.
func (c *CRS) Unproject(point geometry.Point) geo.LatLng {
	return c.projection.Unproject(point)
}

// Scale returns the pixel scale factor at zoom.
func (c *CRS) Scale(zoom float64) float64 {
	return c.scale(zoom)
}

// Zoom returns the zoom level matching scale.
func (c *CRS) Zoom(scale float64) float64 {
	return c.zoom(scale)
}

// ProjectedBounds returns the projection bounds in pixels at zoom. The
// second result is false for infinite CRSs, which have no bounds.
func (c *CRS) ProjectedBounds(zoom float64) (geometry.Bounds, bool) {
	if c.infinite {
		return geometry.Bounds{}, false
	}

	b := c.projection.Bounds()
	s := c.scale(zoom)

	return geometry.NewBounds(
		c.transformation.Transform(b.Min(), s),
		c.transformation.Transform(b.Max(), s),
	), true
}

// Distance returns the distance between a and b: meters on Earth CRSs,
// native units on planar ones.
func (c *CRS) Distance(a, b geo.LatLng) float64 {
	return c.distance(a, b)
}

// WrapLatLng wraps the longitude (and latitude, when configured) of latlng
// into the CRS ranges. Altitude is kept.
func (c *CRS) WrapLatLng(latlng geo.LatLng) geo.LatLng {
	latlng = latlng.WrapWithin(c.wrapLng)
	latlng.Lat = c.wrapLat.Wrap(latlng.Lat)

	return latlng
}

// WrapLatLngBounds shifts b by whole wrap periods so that its center lies
// within the CRS wrap ranges, keeping its size. LatLngBounds always stores
// longitudes in (-180, 180], so a longitude shift is only visible for wrap
// ranges of that form; with a range such as [0, 360] the box comes back with
// canonical longitudes even though WrapLatLng would move its center past 180.
func (c *CRS) WrapLatLngBounds(b geo.LatLngBounds) geo.LatLngBounds {
	if !b.IsValid() {
		return b
	}

	center := b.Center()
	wrapped := c.WrapLatLng(center)
	latShift := center.Lat - wrapped.Lat
	lngShift := center.Lng - wrapped.Lng
	if latShift == 0 && lngShift == 0 {
		return b
	}

	sw, ne := b.SouthWest(), b.NorthEast()

	return geo.NewLatLngBounds(
		geo.NewLatLng(sw.Lat-latShift, sw.Lng-lngShift),
		geo.NewLatLng(ne.Lat-latShift, ne.Lng-lngShift),
	)
}

// LatLngBoundsToPixelBounds folds the corners of b through LatLngToPoint.
// A box crossing the antimeridian extends past the east edge of the world
// instead of covering it from side to side.
func (c *CRS) LatLngBoundsToPixelBounds(b geo.LatLngBounds, zoom float64) geometry.Bounds {
	if !b.IsValid() {
		return geometry.Bounds{}
	}

	ne := b.NorthEast()
	if b.CrossesAntimeridian() {
		ne.Lng += 360
	}

	return geometry.BoundsOf(
		c.LatLngToPoint(b.SouthWest(), zoom),
		c.LatLngToPoint(ne, zoom),
	)
}

func (c *CRS) String() string {
	return c.code
}
