package crs

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
	"github.com/UnknownOlympus/meridian/internal/projection"
)

// Distance function names accepted by a Definition.
const (
	DistanceGreatCircle = "great_circle"
	DistanceEuclidean   = "euclidean"
)

var (
	ErrUnknownDistance = errors.New("unknown distance function")
	ErrInvalidRange    = errors.New("wrap range needs exactly two increasing values")
	ErrInvalidTileSize = errors.New("tile size must be positive")
)

// Definition is the declarative form of a CRS, as read from configuration.
// A TileSize of 0 means DefaultTileSize; a TileSize of 1 gives the plain
// 2^zoom scale of planar maps.
type Definition struct {
	Code           string          `mapstructure:"code"`
	Projection     projection.Type `mapstructure:"projection"`
	Transformation [4]float64      `mapstructure:"transformation"`
	TileSize       float64         `mapstructure:"tile_size"`
	WrapLng        []float64       `mapstructure:"wrap_lng"`
	WrapLat        []float64       `mapstructure:"wrap_lat"`
	Distance       string          `mapstructure:"distance"`
	Infinite       bool            `mapstructure:"infinite"`
}

// FromDefinition resolves def into a CRS.
func FromDefinition(def Definition) (*CRS, error) {
	proj, err := projection.New(def.Projection)
	if err != nil {
		return nil, fmt.Errorf("crs %s: %w", def.Code, err)
	}

	tileSize := def.TileSize
	if tileSize == 0 {
		tileSize = DefaultTileSize
	}
	if tileSize < 0 {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTileSize, def.Code, def.TileSize)
	}

	wrapLng, err := rangeOf(def.WrapLng)
	if err != nil {
		return nil, fmt.Errorf("crs %s: wrap_lng: %w", def.Code, err)
	}
	wrapLat, err := rangeOf(def.WrapLat)
	if err != nil {
		return nil, fmt.Errorf("crs %s: wrap_lat: %w", def.Code, err)
	}

	var distance DistanceFunc
	switch def.Distance {
	case "", DistanceGreatCircle:
		distance = GreatCircleDistance
	case DistanceEuclidean:
		distance = EuclideanDistance
	default:
		return nil, fmt.Errorf("%w: %s: %q", ErrUnknownDistance, def.Code, def.Distance)
	}

	t := def.Transformation

	return New(Config{
		Code:           def.Code,
		Projection:     proj,
		Transformation: geometry.NewTransformation(t[0], t[1], t[2], t[3]),
		Scale:          TileScale(tileSize),
		Zoom:           TileZoom(tileSize),
		Distance:       distance,
		WrapLng:        wrapLng,
		WrapLat:        wrapLat,
		Infinite:       def.Infinite,
	})
}

func rangeOf(values []float64) (geo.Range, error) {
	switch {
	case len(values) == 0:
		return geo.Range{}, nil
	case len(values) != 2 || values[1] <= values[0]:
		return geo.Range{}, fmt.Errorf("%w: %v", ErrInvalidRange, values)
	}

	return geo.Range{Min: values[0], Max: values[1]}, nil
}
