package geo

import "math"

// Range is a closed numeric interval used to wrap coordinates.
// The zero Range disables wrapping.
type Range struct {
	Min float64
	Max float64
}

// LngRange is the canonical longitude range.
var LngRange = Range{Min: -180, Max: 180}

// IsZero reports whether r is empty and therefore wraps nothing.
func (r Range) IsZero() bool {
	return r.Max <= r.Min
}

// Wrap maps x into (Min, Max]: Max is kept as-is and Min is reported as Max,
// so that -180 and 180 both map to 180 for longitudes.
// NaN and infinities are returned unchanged.
func (r Range) Wrap(x float64) float64 {
	if r.IsZero() || math.IsNaN(x) || math.IsInf(x, 0) || x == r.Max {
		return x
	}

	d := r.Max - r.Min
	wrapped := mod(x-r.Min, d) + r.Min
	if wrapped == r.Min {
		return r.Max
	}

	return wrapped
}

// WrapLow maps x into [Min, Max).
func (r Range) WrapLow(x float64) float64 {
	if r.IsZero() || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	return mod(x-r.Min, r.Max-r.Min) + r.Min
}

// mod returns x modulo d in [0, d).
func mod(x, d float64) float64 {
	m := math.Mod(x, d)
	if m < 0 {
		m += d
	}
	if m >= d {
		m -= d
	}

	return m
}
