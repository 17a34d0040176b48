package geometry

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultEpsilon is the tolerance used by Point.Equals. It absorbs the
// floating-point noise accumulated by repeated project/transform round trips.
const DefaultEpsilon = 1e-9

// Point represents a position in a planar coordinate space: projected units
// or pixels, depending on the caller.
type Point struct {
	X float64 // X is the horizontal coordinate.
	Y float64 // Y is the vertical coordinate, growing downwards in pixel space.
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of p and other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Subtract returns p minus other.
func (p Point) Subtract(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// MultiplyBy returns p with both coordinates multiplied by k.
func (p Point) MultiplyBy(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// DivideBy returns p with both coordinates divided by k.
// Dividing by zero yields Inf or NaN coordinates.
func (p Point) DivideBy(k float64) Point {
	return Point{X: p.X / k, Y: p.Y / k}
}

// ScaleBy multiplies each coordinate of p by the matching coordinate of scale.
func (p Point) ScaleBy(scale Point) Point {
	return Point{X: p.X * scale.X, Y: p.Y * scale.Y}
}

// UnscaleBy is the inverse of ScaleBy.
func (p Point) UnscaleBy(scale Point) Point {
	return Point{X: p.X / scale.X, Y: p.Y / scale.Y}
}

// Round rounds both coordinates to the nearest integer. Halves round up,
// towards positive infinity, so -0.5 becomes 0 and 2.5 becomes 3.
func (p Point) Round() Point {
	return Point{X: roundHalfUp(p.X), Y: roundHalfUp(p.Y)}
}

// roundHalfUp avoids math.Floor(v+0.5), which is wrong for the float just
// below 0.5.
func roundHalfUp(v float64) float64 {
	r := math.Round(v)
	if r-v == -0.5 {
		r++
	}

	return r
}

// Floor rounds both coordinates down.
func (p Point) Floor() Point {
	return Point{X: math.Floor(p.X), Y: math.Floor(p.Y)}
}

// Ceil rounds both coordinates up.
func (p Point) Ceil() Point {
	return Point{X: math.Ceil(p.X), Y: math.Ceil(p.Y)}
}

// Trunc rounds both coordinates towards zero.
func (p Point) Trunc() Point {
	return Point{X: math.Trunc(p.X), Y: math.Trunc(p.Y)}
}

// DistanceTo returns the Euclidean distance between p and other.
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Equals reports whether p and other match within DefaultEpsilon, absolute
// or relative to their magnitude.
func (p Point) Equals(other Point) bool {
	return scalar.EqualWithinAbsOrRel(p.X, other.X, DefaultEpsilon, DefaultEpsilon) &&
		scalar.EqualWithinAbsOrRel(p.Y, other.Y, DefaultEpsilon, DefaultEpsilon)
}

// EqualsWithin reports whether both coordinates differ by at most eps.
func (p Point) EqualsWithin(other Point, eps float64) bool {
	return scalar.EqualWithinAbs(p.X, other.X, eps) && scalar.EqualWithinAbs(p.Y, other.Y, eps)
}

// Contains reports whether other fits inside the rectangle spanned by the
// origin and p, comparing absolute coordinates.
func (p Point) Contains(other Point) bool {
	return math.Abs(other.X) <= math.Abs(p.X) && math.Abs(other.Y) <= math.Abs(p.Y)
}

// IsNaN reports whether either coordinate is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return "Point(" + formatNum(p.X) + ", " + formatNum(p.Y) + ")"
}

func formatNum(v float64) string {
	const precision = 6
	return strconv.FormatFloat(scalar.Round(v, precision), 'f', -1, 64)
}
