package geo

import (
	"math"
	"strconv"
)

const fullTurn = 360.0

// LatLngBounds is a rectangular geographical area. Longitudes are kept in
// canonical form: West in [-180, 180), East in (-180, 180]. A box that
// crosses the antimeridian has West greater than East; a box spanning the
// whole globe has West -180 and East 180.
//
// The zero value is an empty box that contains nothing.
type LatLngBounds struct {
	south, west float64
	north, east float64
	valid       bool
}

// NewLatLngBounds returns the box with the given south-west and north-east
// corners. A southWest longitude greater than the northEast longitude
// describes a box crossing the antimeridian. Latitudes are ordered
// automatically; a longitude span of 360 degrees or more covers the globe.
func NewLatLngBounds(southWest, northEast LatLng) LatLngBounds {
	span := northEast.Lng - southWest.Lng
	if span < 0 {
		span = mod(span, fullTurn)
	}

	return newBox(
		math.Min(southWest.Lat, northEast.Lat),
		math.Max(southWest.Lat, northEast.Lat),
		southWest.Lng, northEast.Lng, span,
	)
}

// LatLngBoundsOf returns the box obtained by extending an empty box with
// every point in order.
func LatLngBoundsOf(points ...LatLng) LatLngBounds {
	var b LatLngBounds
	for _, p := range points {
		b = b.Extend(p)
	}

	return b
}

func newBox(south, north, west, east, span float64) LatLngBounds {
	switch {
	case math.IsNaN(span):
	case span >= fullTurn:
		west, east = LngRange.Min, LngRange.Max
	case span == 0:
		west = LngRange.Wrap(west)
		east = west
	default:
		west = LngRange.WrapLow(west)
		east = LngRange.Wrap(east)
	}

	return LatLngBounds{south: south, west: west, north: north, east: east, valid: true}
}

// lngSpan returns the eastward longitude extent of b in degrees.
func (b LatLngBounds) lngSpan() float64 {
	if b.east >= b.west {
		return b.east - b.west
	}

	return b.east - b.west + fullTurn
}

// lngOffset returns how far east of b's west edge lng lies, in [0, 360).
func (b LatLngBounds) lngOffset(lng float64) float64 {
	return mod(lng-b.west, fullTurn)
}

// IsValid reports whether b has corners and none of them is NaN.
func (b LatLngBounds) IsValid() bool {
	return b.valid && !math.IsNaN(b.south) && !math.IsNaN(b.north) &&
		!math.IsNaN(b.west) && !math.IsNaN(b.east)
}

// CrossesAntimeridian reports whether b straddles the 180th meridian.
func (b LatLngBounds) CrossesAntimeridian() bool {
	return b.valid && b.west > b.east
}

// SouthWest returns the south-west corner.
func (b LatLngBounds) SouthWest() LatLng { return NewLatLng(b.south, b.west) }

// NorthEast returns the north-east corner.
func (b LatLngBounds) NorthEast() LatLng { return NewLatLng(b.north, b.east) }

// NorthWest returns the north-west corner.
func (b LatLngBounds) NorthWest() LatLng { return NewLatLng(b.north, b.west) }

// SouthEast returns the south-east corner.
func (b LatLngBounds) SouthEast() LatLng { return NewLatLng(b.south, b.east) }

// West returns the west longitude.
func (b LatLngBounds) West() float64 { return b.west }

// East returns the east longitude.
func (b LatLngBounds) East() float64 { return b.east }

// South returns the south latitude.
func (b LatLngBounds) South() float64 { return b.south }

// North returns the north latitude.
func (b LatLngBounds) North() float64 { return b.north }

// Center returns the middle of b. For boxes crossing the antimeridian the
// center lies on the short arc between West and East.
func (b LatLngBounds) Center() LatLng {
	return NewLatLng((b.south+b.north)/2, LngRange.Wrap(b.west+b.lngSpan()/2))
}

// Extend returns the smallest box containing b and ll. When ll lies outside
// the longitude range, the box grows in the direction that yields the
// smaller span; on a tie the result that does not cross the antimeridian wins.
// NaN points are ignored.
func (b LatLngBounds) Extend(ll LatLng) LatLngBounds {
	if ll.IsNaN() {
		return b
	}

	return b.ExtendBounds(NewLatLngBounds(ll, ll))
}

// ExtendBounds returns the smallest box containing both b and other, with
// the same direction rules as Extend.
func (b LatLngBounds) ExtendBounds(other LatLngBounds) LatLngBounds {
	switch {
	case !other.valid:
		return b
	case !b.valid:
		return other
	}

	south := math.Min(b.south, other.south)
	north := math.Max(b.north, other.north)

	spanB, spanO := b.lngSpan(), other.lngSpan()
	if spanB >= fullTurn || spanO >= fullTurn {
		return newBox(south, north, LngRange.Min, LngRange.Max, fullTurn)
	}

	// The smallest arc covering both starts at one of the two west edges.
	fromB, endB := b.west, b.east
	spanFromB := spanB
	if reach := b.lngOffset(other.west) + spanO; reach > spanB {
		spanFromB, endB = reach, other.east
	}

	fromO, endO := other.west, other.east
	spanFromO := spanO
	if reach := other.lngOffset(b.west) + spanB; reach > spanO {
		spanFromO, endO = reach, b.east
	}

	candB := newBox(south, north, fromB, endB, spanFromB)
	candO := newBox(south, north, fromO, endO, spanFromO)

	switch {
	case spanFromB < spanFromO:
		return candB
	case spanFromO < spanFromB:
		return candO
	case candB.CrossesAntimeridian() && !candO.CrossesAntimeridian():
		return candO
	default:
		return candB
	}
}

// Contains reports whether ll lies inside b, edges included. Longitudes are
// compared modulo 360 degrees.
func (b LatLngBounds) Contains(ll LatLng) bool {
	if !b.IsValid() || ll.IsNaN() {
		return false
	}

	return ll.Lat >= b.south && ll.Lat <= b.north && b.lngOffset(ll.Lng) <= b.lngSpan()
}

// ContainsBounds reports whether other lies entirely inside b. Longitude
// edges are compared within DefaultEpsilon.
func (b LatLngBounds) ContainsBounds(other LatLngBounds) bool {
	if !b.IsValid() || !other.IsValid() {
		return false
	}

	if other.south < b.south || other.north > b.north {
		return false
	}

	span := b.lngSpan()
	if span >= fullTurn {
		return true
	}

	// Edges produced by Extend are differences of rounded longitudes, so the
	// far edge of other may land an ulp past b's east edge.
	offset := b.lngOffset(other.west)
	if offset > fullTurn-DefaultEpsilon {
		offset -= fullTurn
	}

	return offset+other.lngSpan() <= span+DefaultEpsilon
}

// Intersects reports whether b and other share at least one point.
// Boxes touching along an edge intersect.
func (b LatLngBounds) Intersects(other LatLngBounds) bool {
	if !b.IsValid() || !other.IsValid() {
		return false
	}

	latIntersects := other.north >= b.south && other.south <= b.north
	lngIntersects := b.lngOffset(other.west) <= b.lngSpan() || other.lngOffset(b.west) <= other.lngSpan()

	return latIntersects && lngIntersects
}

// Overlaps reports whether b and other share an area. Touching edges do not count.
func (b LatLngBounds) Overlaps(other LatLngBounds) bool {
	if !b.IsValid() || !other.IsValid() {
		return false
	}

	latOverlaps := other.north > b.south && other.south < b.north
	lngOverlaps := b.lngOffset(other.west) < b.lngSpan() || other.lngOffset(b.west) < other.lngSpan()

	return latOverlaps && lngOverlaps
}

// Pad grows b on every side by ratio times its height and longitude span.
// A negative ratio shrinks it, down to its center.
func (b LatLngBounds) Pad(ratio float64) LatLngBounds {
	if !b.valid {
		return b
	}

	span := b.lngSpan()
	dLat := (b.north - b.south) * ratio
	dLng := span * ratio

	south, north := b.south-dLat, b.north+dLat
	if south > north {
		south, north = (b.south+b.north)/2, (b.south+b.north)/2
	}

	newSpan := span + 2*dLng
	if newSpan <= 0 {
		center := b.Center().Lng
		return newBox(south, north, center, center, 0)
	}

	return newBox(south, north, b.west-dLng, b.east+dLng, newSpan)
}

// Equals reports whether the corners of b and other match within
// DefaultEpsilon. Two empty boxes are equal.
func (b LatLngBounds) Equals(other LatLngBounds) bool {
	if !b.valid || !other.valid {
		return b.valid == other.valid
	}

	return b.SouthWest().Equals(other.SouthWest()) && b.NorthEast().Equals(other.NorthEast())
}

// BBoxString returns "west,south,east,north", the order used by WMS and
// most tile services.
func (b LatLngBounds) BBoxString() string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	return format(b.west) + "," + format(b.south) + "," + format(b.east) + "," + format(b.north)
}

func (b LatLngBounds) String() string {
	if !b.valid {
		return "LatLngBounds(empty)"
	}

	return "LatLngBounds(" + b.SouthWest().String() + ", " + b.NorthEast().String() + ")"
}
