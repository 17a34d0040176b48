package geo_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(south, west, north, east float64) geo.LatLngBounds {
	return geo.NewLatLngBounds(geo.NewLatLng(south, west), geo.NewLatLng(north, east))
}

func TestNewLatLngBounds(t *testing.T) {
	t.Run("orders latitudes", func(t *testing.T) {
		b := box(40, 10, 20, 30)

		assert.InDelta(t, 20.0, b.South(), 0)
		assert.InDelta(t, 40.0, b.North(), 0)
		assert.InDelta(t, 10.0, b.West(), 0)
		assert.InDelta(t, 30.0, b.East(), 0)
		assert.False(t, b.CrossesAntimeridian())
	})

	t.Run("crossing box keeps its corners", func(t *testing.T) {
		b := box(-10, 170, 10, -170)

		assert.True(t, b.CrossesAntimeridian())
		assert.InDelta(t, 170.0, b.West(), 0)
		assert.InDelta(t, -170.0, b.East(), 0)
	})

	t.Run("unwrapped longitudes are normalized", func(t *testing.T) {
		b := box(-10, 170, 10, 190)

		assert.True(t, b.CrossesAntimeridian())
		assert.InDelta(t, 170.0, b.West(), 1e-9)
		assert.InDelta(t, -170.0, b.East(), 1e-9)

		b = box(-10, 180, 10, 190)
		assert.False(t, b.CrossesAntimeridian())
		assert.InDelta(t, -180.0, b.West(), 1e-9)
		assert.InDelta(t, -170.0, b.East(), 1e-9)
	})

	t.Run("full span covers the globe", func(t *testing.T) {
		for _, b := range []geo.LatLngBounds{box(-90, -180, 90, 180), box(0, -200, 10, 200)} {
			assert.InDelta(t, -180.0, b.West(), 0)
			assert.InDelta(t, 180.0, b.East(), 0)
			assert.True(t, b.Contains(geo.NewLatLng(5, 179.99)))
			assert.True(t, b.Contains(geo.NewLatLng(5, -179.99)))
			assert.True(t, b.Contains(geo.NewLatLng(5, 0)))
		}
	})

	t.Run("point at the antimeridian", func(t *testing.T) {
		b := box(0, -180, 0, -180)

		assert.True(t, b.IsValid())
		assert.True(t, b.Contains(geo.NewLatLng(0, 180)))
		assert.False(t, b.Contains(geo.NewLatLng(0, 179)))
	})
}

func TestLatLngBounds_IsValid(t *testing.T) {
	assert.False(t, geo.LatLngBounds{}.IsValid())
	assert.True(t, box(0, 0, 1, 1).IsValid())
	assert.False(t, box(math.NaN(), 0, 1, 1).IsValid())
	assert.False(t, box(0, 0, 1, math.NaN()).IsValid())
}

func TestLatLngBounds_ContainsAcrossAntimeridian(t *testing.T) {
	b := box(-20, 170, 20, -170)

	tests := []struct {
		name string
		ll   geo.LatLng
		want bool
	}{
		{"east of the line", geo.NewLatLng(0, 179.9), true},
		{"west of the line", geo.NewLatLng(0, -179.9), true},
		{"on the line", geo.NewLatLng(0, 180), true},
		{"on the west edge", geo.NewLatLng(0, 170), true},
		{"on the east edge", geo.NewLatLng(0, -170), true},
		{"unwrapped longitude", geo.NewLatLng(0, 185), true},
		{"greenwich", geo.NewLatLng(0, 0), false},
		{"just outside west", geo.NewLatLng(0, 169.9), false},
		{"just outside east", geo.NewLatLng(0, -169.9), false},
		{"too far north", geo.NewLatLng(21, 179.9), false},
		{"nan", geo.NewLatLng(math.NaN(), 179.9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.ll))
		})
	}
}

func TestLatLngBounds_Extend(t *testing.T) {
	t.Run("empty box becomes the point", func(t *testing.T) {
		b := geo.LatLngBounds{}.Extend(geo.NewLatLng(10, 20))

		require.True(t, b.IsValid())
		assert.True(t, b.SouthWest().Equals(geo.NewLatLng(10, 20)))
		assert.True(t, b.NorthEast().Equals(geo.NewLatLng(10, 20)))
	})

	t.Run("grows towards the closer side", func(t *testing.T) {
		b := box(0, 0, 10, 10).Extend(geo.NewLatLng(5, -170))

		assert.False(t, b.CrossesAntimeridian())
		assert.InDelta(t, -170.0, b.West(), 0)
		assert.InDelta(t, 10.0, b.East(), 0)
	})

	t.Run("grows across the antimeridian when shorter", func(t *testing.T) {
		b := box(0, 160, 10, 170).Extend(geo.NewLatLng(5, -175))

		assert.True(t, b.CrossesAntimeridian())
		assert.InDelta(t, 160.0, b.West(), 0)
		assert.InDelta(t, -175.0, b.East(), 0)
		assert.True(t, b.Contains(geo.NewLatLng(5, 179)))
	})

	t.Run("tie prefers the non-crossing box", func(t *testing.T) {
		b := box(0, 0, 10, 10).Extend(geo.NewLatLng(5, -175))

		assert.False(t, b.CrossesAntimeridian())
		assert.InDelta(t, -175.0, b.West(), 0)
		assert.InDelta(t, 10.0, b.East(), 0)
	})

	t.Run("contained point changes nothing", func(t *testing.T) {
		b := box(-20, 170, 20, -170)
		assert.True(t, b.Equals(b.Extend(geo.NewLatLng(0, 179))))
	})

	t.Run("nan point is ignored", func(t *testing.T) {
		b := box(0, 0, 10, 10)
		assert.True(t, b.Equals(b.Extend(geo.NewLatLng(math.NaN(), 5))))
	})

	t.Run("latitudes grow", func(t *testing.T) {
		b := box(0, 0, 10, 10).Extend(geo.NewLatLng(-30, 5)).Extend(geo.NewLatLng(45, 5))

		assert.InDelta(t, -30.0, b.South(), 0)
		assert.InDelta(t, 45.0, b.North(), 0)
	})
}

func TestLatLngBounds_ExtendContainsBoth(t *testing.T) {
	boxes := []geo.LatLngBounds{
		box(0, 0, 10, 10),
		box(-20, 170, 20, -170),
		box(30, -60, 40, -50),
		box(-5, 100, 5, 175),
		box(-90, -180, 90, 180),
		box(50, 90, 50, 90),
		box(-10, -179, -5, -100),
	}

	for _, a := range boxes {
		for _, b := range boxes {
			u := a.ExtendBounds(b)
			assert.True(t, u.ContainsBounds(a), "%v should contain %v", u, a)
			assert.True(t, u.ContainsBounds(b), "%v should contain %v", u, b)
		}
	}
}

func TestLatLngBounds_ExtendContainsBothFractional(t *testing.T) {
	t.Run("east edge taken from the other box", func(t *testing.T) {
		a := box(0, 37.67770367266306, 1, 158.58327169620446)
		b := box(0, 59.24161915865656, 1, -22.42289261268712)

		u := a.ExtendBounds(b)

		assert.InDelta(t, 37.67770367266306, u.West(), 0)
		assert.InDelta(t, -22.42289261268712, u.East(), 0)
		assert.True(t, u.ContainsBounds(a), "%v should contain %v", u, a)
		assert.True(t, u.ContainsBounds(b), "%v should contain %v", u, b)
	})

	t.Run("random boxes", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		randomBox := func() geo.LatLngBounds {
			return geo.NewLatLngBounds(
				geo.NewLatLng(rng.Float64()*180-90, rng.Float64()*360-180),
				geo.NewLatLng(rng.Float64()*180-90, rng.Float64()*360-180),
			)
		}

		for range 20000 {
			a, b := randomBox(), randomBox()
			u := a.ExtendBounds(b)
			require.True(t, u.ContainsBounds(a), "%v should contain %v", u, a)
			require.True(t, u.ContainsBounds(b), "%v should contain %v", u, b)
		}
	})
}

func TestLatLngBoundsOf(t *testing.T) {
	b := geo.LatLngBoundsOf(
		geo.NewLatLng(10, 175),
		geo.NewLatLng(-10, -175),
		geo.NewLatLng(0, 178),
	)

	assert.True(t, b.CrossesAntimeridian())
	assert.InDelta(t, 175.0, b.West(), 0)
	assert.InDelta(t, -175.0, b.East(), 0)
	assert.False(t, geo.LatLngBoundsOf().IsValid())
}

func TestLatLngBounds_ContainsBounds(t *testing.T) {
	outer := box(-20, 160, 20, -160)

	assert.True(t, outer.ContainsBounds(box(-10, 170, 10, -170)))
	assert.True(t, outer.ContainsBounds(box(-10, 165, 10, 175)))
	assert.True(t, outer.ContainsBounds(box(-10, -175, 10, -165)))
	assert.False(t, outer.ContainsBounds(box(-10, 150, 10, 170)))
	assert.False(t, outer.ContainsBounds(box(-30, 170, 10, -170)))
	assert.False(t, outer.ContainsBounds(box(-90, -180, 90, 180)))
	assert.True(t, box(-90, -180, 90, 180).ContainsBounds(outer))
}

func TestLatLngBounds_IntersectsAndOverlaps(t *testing.T) {
	crossing := box(-10, 170, 10, -170)

	tests := []struct {
		name       string
		a, b       geo.LatLngBounds
		intersects bool
		overlaps   bool
	}{
		{"plain overlap", box(0, 0, 10, 10), box(5, 5, 15, 15), true, true},
		{"touching edge", box(0, 0, 10, 10), box(0, 10, 10, 20), true, false},
		{"apart", box(0, 0, 10, 10), box(0, 11, 10, 20), false, false},
		{"crossing with eastern box", crossing, box(-5, -175, 5, -160), true, true},
		{"crossing with western box", crossing, box(-5, 160, 5, 175), true, true},
		{"crossing touching west edge", crossing, box(-5, 160, 5, 170), true, false},
		{"crossing far away", crossing, box(-5, 0, 5, 10), false, false},
		{"two crossing boxes", crossing, box(-5, 175, 5, -175), true, true},
		{"latitude apart", crossing, box(20, 175, 30, -175), false, false},
		{"empty", crossing, geo.LatLngBounds{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.intersects, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.intersects, tt.b.Intersects(tt.a))
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestLatLngBounds_Center(t *testing.T) {
	assert.True(t, box(0, 0, 10, 20).Center().Equals(geo.NewLatLng(5, 10)))
	assert.True(t, box(-10, 170, 10, -170).Center().Equals(geo.NewLatLng(0, 180)))
	assert.True(t, box(-10, 160, 10, -170).Center().Equals(geo.NewLatLng(0, 175)))
}

func TestLatLngBounds_Corners(t *testing.T) {
	b := box(14, 12, 30, 40)

	assert.True(t, b.SouthWest().Equals(geo.NewLatLng(14, 12)))
	assert.True(t, b.NorthEast().Equals(geo.NewLatLng(30, 40)))
	assert.True(t, b.NorthWest().Equals(geo.NewLatLng(30, 12)))
	assert.True(t, b.SouthEast().Equals(geo.NewLatLng(14, 40)))
}

func TestLatLngBounds_Pad(t *testing.T) {
	t.Run("plain box", func(t *testing.T) {
		b := box(0, 0, 10, 20).Pad(0.5)

		assert.InDelta(t, -5.0, b.South(), 1e-9)
		assert.InDelta(t, 15.0, b.North(), 1e-9)
		assert.InDelta(t, -10.0, b.West(), 1e-9)
		assert.InDelta(t, 30.0, b.East(), 1e-9)
	})

	t.Run("crossing box", func(t *testing.T) {
		b := box(-10, 170, 10, -170).Pad(0.5)

		assert.True(t, b.CrossesAntimeridian())
		assert.InDelta(t, 160.0, b.West(), 1e-9)
		assert.InDelta(t, -160.0, b.East(), 1e-9)
	})

	t.Run("grows to the globe", func(t *testing.T) {
		b := box(-10, 170, 10, -170).Pad(10)

		assert.InDelta(t, -180.0, b.West(), 0)
		assert.InDelta(t, 180.0, b.East(), 0)
	})

	t.Run("shrinks to the center", func(t *testing.T) {
		b := box(0, 0, 10, 20).Pad(-1)

		assert.True(t, b.SouthWest().Equals(geo.NewLatLng(5, 10)))
		assert.True(t, b.NorthEast().Equals(geo.NewLatLng(5, 10)))
	})
}

func TestLatLngBounds_Equals(t *testing.T) {
	assert.True(t, box(0, 170, 10, -170).Equals(box(10, -190, 0, -170)))
	assert.False(t, box(0, 0, 10, 10).Equals(box(0, 0, 10, 11)))
	assert.True(t, geo.LatLngBounds{}.Equals(geo.LatLngBounds{}))
	assert.False(t, geo.LatLngBounds{}.Equals(box(0, 0, 1, 1)))
}

func TestLatLngBounds_BBoxString(t *testing.T) {
	assert.Equal(t, "170,-10,-170,10.5", box(-10, 170, 10.5, -170).BBoxString())
}
