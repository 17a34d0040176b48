package geometry

import "math"

// Bounds is an axis-aligned rectangle in a planar coordinate space.
// The zero value is an empty Bounds that contains nothing; extending it with
// a point yields a degenerate Bounds around that point.
type Bounds struct {
	min   Point
	max   Point
	valid bool
}

// NewBounds returns the rectangle spanned by two arbitrary corners.
func NewBounds(a, b Point) Bounds {
	return Bounds{
		min:   Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		max:   Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
		valid: true,
	}
}

// BoundsOf returns the smallest Bounds enclosing every given point.
// Without points it returns the empty Bounds.
func BoundsOf(points ...Point) Bounds {
	var b Bounds
	for _, p := range points {
		b = b.Extend(p)
	}

	return b
}

// Extend returns the smallest Bounds enclosing b and p.
func (b Bounds) Extend(p Point) Bounds {
	if !b.valid {
		return Bounds{min: p, max: p, valid: true}
	}

	return Bounds{
		min:   Point{X: math.Min(b.min.X, p.X), Y: math.Min(b.min.Y, p.Y)},
		max:   Point{X: math.Max(b.max.X, p.X), Y: math.Max(b.max.Y, p.Y)},
		valid: true,
	}
}

// ExtendBounds returns the smallest Bounds enclosing both b and other.
func (b Bounds) ExtendBounds(other Bounds) Bounds {
	if !other.valid {
		return b
	}

	return b.Extend(other.min).Extend(other.max)
}

// IsValid reports whether b has been given corners.
func (b Bounds) IsValid() bool {
	return b.valid
}

// Min returns the corner with the smallest coordinates.
func (b Bounds) Min() Point { return b.min }

// Max returns the corner with the largest coordinates.
func (b Bounds) Max() Point { return b.max }

// BottomLeft returns the corner (min.X, max.Y). Y grows downwards in pixel space.
func (b Bounds) BottomLeft() Point { return Point{X: b.min.X, Y: b.max.Y} }

// TopRight returns the corner (max.X, min.Y).
func (b Bounds) TopRight() Point { return Point{X: b.max.X, Y: b.min.Y} }

// TopLeft returns the same corner as Min.
func (b Bounds) TopLeft() Point { return b.min }

// BottomRight returns the same corner as Max.
func (b Bounds) BottomRight() Point { return b.max }

// Center returns the middle of b.
func (b Bounds) Center() Point {
	return Point{X: (b.min.X + b.max.X) / 2, Y: (b.min.Y + b.max.Y) / 2}
}

// Size returns the width and height of b as a Point.
func (b Bounds) Size() Point {
	return b.max.Subtract(b.min)
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	if !b.valid {
		return false
	}

	return p.X >= b.min.X && p.X <= b.max.X && p.Y >= b.min.Y && p.Y <= b.max.Y
}

// ContainsBounds reports whether other lies entirely inside b, edges included.
func (b Bounds) ContainsBounds(other Bounds) bool {
	if !b.valid || !other.valid {
		return false
	}

	return other.min.X >= b.min.X && other.max.X <= b.max.X &&
		other.min.Y >= b.min.Y && other.max.Y <= b.max.Y
}

// Intersects reports whether b and other share at least one point.
// Bounds that only touch along an edge intersect.
func (b Bounds) Intersects(other Bounds) bool {
	if !b.valid || !other.valid {
		return false
	}

	xIntersects := other.max.X >= b.min.X && other.min.X <= b.max.X
	yIntersects := other.max.Y >= b.min.Y && other.min.Y <= b.max.Y

	return xIntersects && yIntersects
}

// Overlaps reports whether b and other share an area. Unlike Intersects,
// touching edges do not count.
func (b Bounds) Overlaps(other Bounds) bool {
	if !b.valid || !other.valid {
		return false
	}

	xOverlaps := other.max.X > b.min.X && other.min.X < b.max.X
	yOverlaps := other.max.Y > b.min.Y && other.min.Y < b.max.Y

	return xOverlaps && yOverlaps
}

// Pad grows b on every side by ratio times its width and height.
// A negative ratio shrinks it.
func (b Bounds) Pad(ratio float64) Bounds {
	if !b.valid {
		return b
	}

	dx := math.Abs(b.max.X-b.min.X) * ratio
	dy := math.Abs(b.max.Y-b.min.Y) * ratio

	return NewBounds(
		Point{X: b.min.X - dx, Y: b.min.Y - dy},
		Point{X: b.max.X + dx, Y: b.max.Y + dy},
	)
}

// Equals reports whether both corners of b and other match within
// DefaultEpsilon. Two empty Bounds are equal.
func (b Bounds) Equals(other Bounds) bool {
	if !b.valid || !other.valid {
		return b.valid == other.valid
	}

	return b.min.Equals(other.min) && b.max.Equals(other.max)
}

func (b Bounds) String() string {
	if !b.valid {
		return "Bounds(empty)"
	}

	return "Bounds(" + b.min.String() + ", " + b.max.String() + ")"
}
