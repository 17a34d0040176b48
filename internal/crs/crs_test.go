package crs_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/crs"
	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
	"github.com/UnknownOlympus/meridian/internal/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPointNear(t *testing.T, want, got geometry.Point, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, delta, "y of %v", got)
}

func TestCRS_LatLngToPoint(t *testing.T) {
	kyivish := geo.NewLatLng(50, 30)

	tests := []struct {
		name string
		crs  *crs.CRS
		zoom float64
		want geometry.Point
	}{
		{"EPSG3857 zoom 0", crs.EPSG3857, 0, geometry.Pt(149.333, 86.821)},
		{"EPSG3857 zoom 2", crs.EPSG3857, 2, geometry.Pt(597.333, 347.284)},
		{"EPSG900913 matches 3857", crs.EPSG900913, 0, geometry.Pt(149.333, 86.821)},
		{"EPSG3395 zoom 0", crs.EPSG3395, 0, geometry.Pt(149.333, 87.030)},
		{"EPSG4326 zoom 0", crs.EPSG4326, 0, geometry.Pt(298.667, 56.889)},
		{"Simple zoom 0", crs.Simple, 0, geometry.Pt(30, -50)},
		{"Simple zoom 1", crs.Simple, 1, geometry.Pt(60, -100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPointNear(t, tt.want, tt.crs.LatLngToPoint(kyivish, tt.zoom), 0.001)
		})
	}
}

func TestCRS_Origin(t *testing.T) {
	assertPointNear(t, geometry.Pt(128, 128), crs.EPSG3857.LatLngToPoint(geo.NewLatLng(0, 0), 0), 1e-9)
	assertPointNear(t, geometry.Pt(256, 128), crs.EPSG4326.LatLngToPoint(geo.NewLatLng(0, 0), 0), 1e-9)
	assertPointNear(t, geometry.Pt(0, 0), crs.Simple.LatLngToPoint(geo.NewLatLng(0, 0), 7), 0)
}

func TestCRS_PointToLatLngRoundTrip(t *testing.T) {
	systems := []*crs.CRS{crs.EPSG3857, crs.EPSG3395, crs.EPSG4326, crs.Simple}
	coords := []geo.LatLng{
		geo.NewLatLng(0, 0),
		geo.NewLatLng(50.4501, 30.5234),
		geo.NewLatLng(-33.8688, 151.2093),
		geo.NewLatLng(84, -179.5),
	}

	for _, c := range systems {
		t.Run(c.Code(), func(t *testing.T) {
			for _, zoom := range []float64{0, 3.5, 18} {
				for _, want := range coords {
					got := c.PointToLatLng(c.LatLngToPoint(want, zoom), zoom)
					assert.True(t, got.EqualsWithin(want, 1e-7), "%v at zoom %v gave %v", want, zoom, got)
				}
			}
		})
	}
}

func TestCRS_ProjectUnproject(t *testing.T) {
	p := crs.EPSG3857.Project(geo.NewLatLng(50, 30))
	assertPointNear(t, geometry.Pt(3339584.724, 6446275.841), p, 0.01)

	back := crs.EPSG3857.Unproject(p)
	assert.True(t, back.EqualsWithin(geo.NewLatLng(50, 30), 1e-9))
}

func TestCRS_ScaleAndZoom(t *testing.T) {
	assert.InDelta(t, 256.0, crs.EPSG3857.Scale(0), 0)
	assert.InDelta(t, 1024.0, crs.EPSG3857.Scale(2), 0)
	assert.InDelta(t, 2.0, crs.EPSG3857.Zoom(1024), 1e-12)
	assert.InDelta(t, 8.0, crs.Simple.Scale(3), 0)
	assert.InDelta(t, 3.0, crs.Simple.Zoom(8), 1e-12)

	for _, zoom := range []float64{-2, 0, 0.5, 7, 21} {
		assert.InDelta(t, zoom, crs.EPSG4326.Zoom(crs.EPSG4326.Scale(zoom)), 1e-9)
	}
}

func TestCRS_ProjectedBounds(t *testing.T) {
	t.Run("spherical mercator covers one tile", func(t *testing.T) {
		b, ok := crs.EPSG3857.ProjectedBounds(0)

		require.True(t, ok)
		assertPointNear(t, geometry.Pt(0, 0), b.Min(), 1e-9)
		assertPointNear(t, geometry.Pt(256, 256), b.Max(), 1e-9)
	})

	t.Run("grows with zoom", func(t *testing.T) {
		b, ok := crs.EPSG3395.ProjectedBounds(3)

		require.True(t, ok)
		assertPointNear(t, geometry.Pt(2048, 2048), b.Size(), 1e-6)
	})

	t.Run("plate carree is two tiles wide", func(t *testing.T) {
		b, ok := crs.EPSG4326.ProjectedBounds(0)

		require.True(t, ok)
		assertPointNear(t, geometry.Pt(0, 0), b.Min(), 1e-9)
		assertPointNear(t, geometry.Pt(512, 256), b.Max(), 1e-9)
	})

	t.Run("infinite crs has no bounds", func(t *testing.T) {
		b, ok := crs.Simple.ProjectedBounds(0)

		assert.False(t, ok)
		assert.False(t, b.IsValid())
	})
}

func TestCRS_Distance(t *testing.T) {
	quarter := crs.EPSG3857.Distance(geo.NewLatLng(0, 0), geo.NewLatLng(0, 90))
	assert.InDelta(t, geo.EarthRadius*math.Pi/2, quarter, 1e-6)

	kyiv := geo.NewLatLng(50.4501, 30.5234)
	lviv := geo.NewLatLng(49.8397, 24.0297)
	assert.InDelta(t, kyiv.DistanceTo(lviv), crs.EPSG4326.Distance(kyiv, lviv), 1e-9)

	assert.InDelta(t, 5.0, crs.Simple.Distance(geo.NewLatLng(0, 0), geo.NewLatLng(3, 4)), 1e-12)
}

func TestCRS_WrapLatLng(t *testing.T) {
	t.Run("earth crs wraps longitude", func(t *testing.T) {
		got := crs.EPSG3857.WrapLatLng(geo.NewLatLngAlt(10, 190, 42))

		assert.InDelta(t, 10.0, got.Lat, 0)
		assert.InDelta(t, -170.0, got.Lng, 1e-9)
		alt, ok := got.Alt()
		assert.True(t, ok)
		assert.InDelta(t, 42.0, alt, 0)
	})

	t.Run("latitude is left alone", func(t *testing.T) {
		got := crs.EPSG4326.WrapLatLng(geo.NewLatLng(100, 0))

		assert.InDelta(t, 100.0, got.Lat, 0)
	})

	t.Run("simple crs does not wrap", func(t *testing.T) {
		in := geo.NewLatLng(500, -1000)

		assert.Equal(t, in, crs.Simple.WrapLatLng(in))
	})

	t.Run("custom latitude range", func(t *testing.T) {
		c := crs.MustNew(crs.Config{
			Code:           "torus",
			Projection:     projection.LonLat{},
			Transformation: geometry.NewTransformation(1, 0, -1, 0),
			WrapLng:        geo.Range{Min: 0, Max: 100},
			WrapLat:        geo.Range{Min: 0, Max: 50},
		})

		got := c.WrapLatLng(geo.NewLatLng(60, -30))

		assert.InDelta(t, 10.0, got.Lat, 1e-9)
		assert.InDelta(t, 70.0, got.Lng, 1e-9)
	})
}

func TestCRS_WrapLatLngBounds(t *testing.T) {
	t.Run("canonical box is unchanged", func(t *testing.T) {
		b := geo.NewLatLngBounds(geo.NewLatLng(-10, 170), geo.NewLatLng(10, -170))

		assert.True(t, crs.EPSG3857.WrapLatLngBounds(b).Equals(b))
	})

	t.Run("empty box stays empty", func(t *testing.T) {
		assert.False(t, crs.EPSG3857.WrapLatLngBounds(geo.LatLngBounds{}).IsValid())
	})

	t.Run("shifted by latitude range keeping its size", func(t *testing.T) {
		c := crs.MustNew(crs.Config{
			Code:           "bands",
			Projection:     projection.LonLat{},
			Transformation: geometry.NewTransformation(1, 0, -1, 0),
			WrapLat:        geo.Range{Min: -90, Max: 90},
		})
		b := geo.NewLatLngBounds(geo.NewLatLng(100, 0), geo.NewLatLng(110, 10))

		got := c.WrapLatLngBounds(b)

		assert.InDelta(t, -80.0, got.South(), 1e-9)
		assert.InDelta(t, -70.0, got.North(), 1e-9)
		assert.InDelta(t, 0.0, got.West(), 1e-9)
		assert.InDelta(t, 10.0, got.East(), 1e-9)
	})

	t.Run("longitudes stay canonical for a custom longitude range", func(t *testing.T) {
		c := crs.MustNew(crs.Config{
			Code:           "east-positive",
			Projection:     projection.LonLat{},
			Transformation: geometry.NewTransformation(1, 0, -1, 0),
			WrapLng:        geo.Range{Min: 0, Max: 360},
		})
		b := geo.NewLatLngBounds(geo.NewLatLng(-10, -20), geo.NewLatLng(10, -10))

		got := c.WrapLatLngBounds(b)

		assert.InDelta(t, 345.0, c.WrapLatLng(b.Center()).Lng, 1e-9)
		assert.InDelta(t, -20.0, got.West(), 1e-9)
		assert.InDelta(t, -10.0, got.East(), 1e-9)
		assert.InDelta(t, -10.0, got.South(), 0)
		assert.InDelta(t, 10.0, got.North(), 0)
	})
}

func TestCRS_LatLngBoundsToPixelBounds(t *testing.T) {
	t.Run("regular box", func(t *testing.T) {
		b := geo.NewLatLngBounds(geo.NewLatLng(-45, -90), geo.NewLatLng(45, 90))

		got := crs.EPSG4326.LatLngBoundsToPixelBounds(b, 0)

		assertPointNear(t, geometry.Pt(128, 64), got.Min(), 1e-9)
		assertPointNear(t, geometry.Pt(384, 192), got.Max(), 1e-9)
	})

	t.Run("antimeridian box stays narrow", func(t *testing.T) {
		b := geo.NewLatLngBounds(geo.NewLatLng(-10, 170), geo.NewLatLng(10, -170))

		got := crs.EPSG3857.LatLngBoundsToPixelBounds(b, 0)

		assert.InDelta(t, 256*350.0/360, got.Min().X, 1e-9)
		assert.InDelta(t, 256*370.0/360, got.Max().X, 1e-9)
		assert.InDelta(t, 256.0, got.Min().Y+got.Max().Y, 1e-9)
	})

	t.Run("empty box", func(t *testing.T) {
		assert.False(t, crs.EPSG3857.LatLngBoundsToPixelBounds(geo.LatLngBounds{}, 0).IsValid())
	})
}

func TestCRS_Accessors(t *testing.T) {
	assert.Equal(t, "EPSG:3857", crs.EPSG3857.Code())
	assert.Equal(t, "EPSG:3857", crs.EPSG3857.String())
	assert.Equal(t, projection.SphericalMercator{}, crs.EPSG3857.Projection())
	assert.Equal(t, crs.MercatorTransformation, crs.EPSG3857.Transformation())
	assert.Equal(t, geo.LngRange, crs.EPSG3857.WrapLng())
	assert.True(t, crs.EPSG3857.WrapLat().IsZero())
	assert.False(t, crs.EPSG3857.Infinite())
	assert.True(t, crs.Simple.Infinite())
	assert.True(t, crs.Simple.WrapLng().IsZero())
}

func TestNew(t *testing.T) {
	valid := crs.Config{
		Code:           "custom",
		Projection:     projection.LonLat{},
		Transformation: geometry.NewTransformation(1, 0, -1, 0),
	}

	t.Run("defaults to tiles and great circle", func(t *testing.T) {
		c, err := crs.New(valid)

		require.NoError(t, err)
		assert.InDelta(t, 256.0, c.Scale(0), 0)
		assert.InDelta(t, geo.EarthRadius*math.Pi/2, c.Distance(geo.NewLatLng(0, 0), geo.NewLatLng(0, 90)), 1e-6)
		assert.True(t, c.WrapLng().IsZero())
	})

	t.Run("missing code", func(t *testing.T) {
		cfg := valid
		cfg.Code = ""

		_, err := crs.New(cfg)

		require.ErrorIs(t, err, crs.ErrMissingCode)
	})

	t.Run("missing projection", func(t *testing.T) {
		cfg := valid
		cfg.Projection = nil

		_, err := crs.New(cfg)

		require.ErrorIs(t, err, crs.ErrMissingProjection)
	})

	t.Run("degenerate transformation", func(t *testing.T) {
		cfg := valid
		cfg.Transformation = geometry.NewTransformation(0, 0, -1, 0)

		_, err := crs.New(cfg)

		require.ErrorIs(t, err, crs.ErrInvalidTransformation)
		require.ErrorIs(t, err, geometry.ErrDegenerateTransformation)
		assert.Contains(t, err.Error(), "custom")
	})

	t.Run("custom scale without zoom", func(t *testing.T) {
		cfg := valid
		cfg.Scale = crs.PowerScale

		_, err := crs.New(cfg)

		require.ErrorIs(t, err, crs.ErrMissingZoom)
	})

	t.Run("must new panics", func(t *testing.T) {
		cfg := valid
		cfg.Code = ""

		assert.Panics(t, func() { crs.MustNew(cfg) })
	})
}
