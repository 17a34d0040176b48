package geometry

import (
	"errors"
	"fmt"
)

// ErrDegenerateTransformation is returned by Validate when an axis factor is
// zero, which makes the transformation impossible to invert.
var ErrDegenerateTransformation = errors.New("transformation axis factor must be non-zero")

// Transformation is an affine map (x, y) -> (a*x + b, c*y + d) followed by a
// uniform scale supplied on each call. One Transformation serves every zoom.
type Transformation struct {
	a, b, c, d float64
}

// NewTransformation returns the transformation with the given coefficients.
func NewTransformation(a, b, c, d float64) Transformation {
	return Transformation{a: a, b: b, c: c, d: d}
}

// Coefficients returns a, b, c and d.
func (t Transformation) Coefficients() (a, b, c, d float64) {
	return t.a, t.b, t.c, t.d
}

// Validate checks that the transformation can be inverted.
func (t Transformation) Validate() error {
	if t.a == 0 || t.c == 0 {
		return fmt.Errorf("%w: a=%v c=%v", ErrDegenerateTransformation, t.a, t.c)
	}

	return nil
}

// Transform maps p and multiplies the result by scale.
func (t Transformation) Transform(p Point, scale float64) Point {
	return Point{
		X: scale * (t.a*p.X + t.b),
		Y: scale * (t.c*p.Y + t.d),
	}
}

// Untransform is the inverse of Transform for the same scale.
func (t Transformation) Untransform(p Point, scale float64) Point {
	return Point{
		X: (p.X/scale - t.b) / t.a,
		Y: (p.Y/scale - t.d) / t.c,
	}
}
