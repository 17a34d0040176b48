package geo

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// DefaultEpsilon is the tolerance in degrees used by LatLng.Equals.
	DefaultEpsilon = 1e-9
	// EarthRadius is the mean Earth radius in meters used for great-circle distances.
	EarthRadius = 6371000.0
	// earthCircumference is the equatorial circumference used by ToBounds.
	earthCircumference = 40075017.0

	degToRad = math.Pi / 180.0
)

// LatLng represents a geographical point with a latitude and longitude in
// degrees and an optional altitude in meters. Latitude is not clamped.
type LatLng struct {
	Lat float64 // Lat is the latitude in degrees.
	Lng float64 // Lng is the longitude in degrees.

	alt    float64
	hasAlt bool
}

// NewLatLng returns a point without altitude.
func NewLatLng(lat, lng float64) LatLng {
	return LatLng{Lat: lat, Lng: lng}
}

// NewLatLngAlt returns a point with an altitude.
func NewLatLngAlt(lat, lng, alt float64) LatLng {
	return LatLng{Lat: lat, Lng: lng, alt: alt, hasAlt: true}
}

// Alt returns the altitude and whether one was set.
func (ll LatLng) Alt() (float64, bool) {
	return ll.alt, ll.hasAlt
}

// IsNaN reports whether either coordinate is NaN.
func (ll LatLng) IsNaN() bool {
	return math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng)
}

// Equals reports whether ll and other match within DefaultEpsilon degrees.
// Altitude is ignored.
func (ll LatLng) Equals(other LatLng) bool {
	return ll.EqualsWithin(other, DefaultEpsilon)
}

// EqualsWithin reports whether latitude and longitude each differ by at most eps.
func (ll LatLng) EqualsWithin(other LatLng, eps float64) bool {
	return scalar.EqualWithinAbs(ll.Lat, other.Lat, eps) && scalar.EqualWithinAbs(ll.Lng, other.Lng, eps)
}

// Wrap returns ll with its longitude normalized into (-180, 180].
func (ll LatLng) Wrap() LatLng {
	return ll.WrapWithin(LngRange)
}

// WrapWithin returns ll with its longitude wrapped into r. Latitude and
// altitude are kept.
func (ll LatLng) WrapWithin(r Range) LatLng {
	ll.Lng = r.Wrap(ll.Lng)
	return ll
}

// DistanceTo returns the great-circle distance in meters between ll and other.
func (ll LatLng) DistanceTo(other LatLng) float64 {
	return Haversine(ll, other, EarthRadius)
}

// ToBounds returns the box of sizeInMeters on each side, centered on ll.
func (ll LatLng) ToBounds(sizeInMeters float64) LatLngBounds {
	latAccuracy := 180 * sizeInMeters / earthCircumference
	lngAccuracy := latAccuracy / math.Cos(degToRad*ll.Lat)

	return NewLatLngBounds(
		NewLatLng(ll.Lat-latAccuracy, ll.Lng-lngAccuracy),
		NewLatLng(ll.Lat+latAccuracy, ll.Lng+lngAccuracy),
	)
}

func (ll LatLng) String() string {
	return "LatLng(" + formatDegrees(ll.Lat) + ", " + formatDegrees(ll.Lng) + ")"
}

// Haversine calculates the great-circle distance between two points on a
// sphere of the given radius. The result uses the radius' unit.
func Haversine(a, b LatLng, radius float64) float64 {
	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	sinDLat := math.Sin((b.Lat - a.Lat) * degToRad / 2)
	sinDLng := math.Sin((b.Lng - a.Lng) * degToRad / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLng*sinDLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return radius * c
}

func formatDegrees(v float64) string {
	const precision = 6
	return strconv.FormatFloat(scalar.Round(v, precision), 'f', -1, 64)
}
