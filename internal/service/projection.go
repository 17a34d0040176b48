package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/UnknownOlympus/meridian/internal/crs"
	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
	"github.com/UnknownOlympus/meridian/internal/metrics"
)

// chunkSize is the number of points a worker projects per job.
const chunkSize = 256

var (
	ErrEmptyBatch        = errors.New("batch has no points")
	ErrInvalidCoordinate = errors.New("coordinate is not a number")
	ErrNonFiniteResult   = errors.New("projected point is not finite")
)

// BatchResult holds the pixel coordinates of a projected batch, in input
// order, along with the extent of the batch in both spaces.
type BatchResult struct {
	CRS          string
	Zoom         float64
	Points       []geometry.Point
	PixelBounds  geometry.Bounds
	LatLngBounds geo.LatLngBounds
}

// ProjectionService resolves CRS codes and projects batches of coordinates
// over a pool of workers.
type ProjectionService struct {
	log        *slog.Logger     // Logger for logging service activities
	registry   *crs.Registry    // Registry of the CRSs the service can use
	metrics    *metrics.Metrics // Metrics for tracking service performance
	numWorkers int              // Number of concurrent workers per batch
}

// NewProjectionService creates a new instance of ProjectionService.
// numWorkers below one is treated as one.
func NewProjectionService(
	log *slog.Logger,
	registry *crs.Registry,
	metrics *metrics.Metrics,
	numWorkers int,
) *ProjectionService {
	if numWorkers < 1 {
		numWorkers = 1
	}

	return &ProjectionService{
		log:        log,
		registry:   registry,
		metrics:    metrics,
		numWorkers: numWorkers,
	}
}

// Registry returns the registry the service resolves codes against.
func (ps *ProjectionService) Registry() *crs.Registry {
	return ps.registry
}

// Resolve returns the CRS registered under code, or the default CRS when
// code is empty.
func (ps *ProjectionService) Resolve(code string) (*crs.CRS, error) {
	if code == "" {
		if def := ps.registry.Default(); def != nil {
			return def, nil
		}
	}

	c, err := ps.registry.Lookup(code)
	if err != nil {
		ps.metrics.LookupErrors.Inc()
		return nil, err
	}

	return c, nil
}

// Record counts n conversions of the given operation on c.
func (ps *ProjectionService) Record(c *crs.CRS, operation string, n int) {
	ps.metrics.Conversions.WithLabelValues(c.Code(), operation).Add(float64(n))
}

type chunk struct {
	from, to int
}

// ProjectBatch converts latlngs to pixel coordinates at zoom using the CRS
// registered under code. The work is split into chunks shared by the
// service's workers; the result keeps the input order. Cancelling ctx stops
// the batch and returns the context error.
func (ps *ProjectionService) ProjectBatch(
	ctx context.Context,
	code string,
	zoom float64,
	latlngs []geo.LatLng,
) (*BatchResult, error) {
	c, err := ps.Resolve(code)
	if err != nil {
		return nil, err
	}
	if len(latlngs) == 0 {
		return nil, ErrEmptyBatch
	}
	for i, ll := range latlngs {
		if ll.IsNaN() {
			return nil, fmt.Errorf("%w: point %d", ErrInvalidCoordinate, i)
		}
	}

	ps.metrics.BatchPoints.Observe(float64(len(latlngs)))
	ps.log.DebugContext(ctx, "Projecting batch", "crs", c.Code(), "zoom", zoom, "points", len(latlngs))

	points := make([]geometry.Point, len(latlngs))
	jobs := make(chan chunk, len(latlngs)/chunkSize+1)
	for from := 0; from < len(latlngs); from += chunkSize {
		jobs <- chunk{from: from, to: min(from+chunkSize, len(latlngs))}
	}
	close(jobs)

	workers := min(ps.numWorkers, cap(jobs))
	var wgr sync.WaitGroup
	for i := 1; i <= workers; i++ {
		wgr.Add(1)
		go ps.worker(ctx, i, &wgr, c, zoom, latlngs, points, jobs)
	}
	wgr.Wait()

	if err := ctx.Err(); err != nil {
		ps.log.WarnContext(ctx, "Batch cancelled", "crs", c.Code(), "error", err)
		return nil, err
	}

	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: point %d at zoom %g", ErrNonFiniteResult, i, zoom)
		}
	}

	ps.Record(c, "project", len(latlngs))

	return &BatchResult{
		CRS:          c.Code(),
		Zoom:         zoom,
		Points:       points,
		PixelBounds:  geometry.BoundsOf(points...),
		LatLngBounds: geo.LatLngBoundsOf(latlngs...),
	}, nil
}

// worker projects the chunks it takes from jobs into points. Each chunk owns
// a disjoint range of points, so workers never write the same index.
func (ps *ProjectionService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	c *crs.CRS,
	zoom float64,
	latlngs []geo.LatLng,
	points []geometry.Point,
	jobs <-chan chunk,
) {
	defer wg.Done()
	for job := range jobs {
		if ctx.Err() != nil {
			return
		}

		ps.metrics.ActiveWorkers.Inc()
		ps.log.DebugContext(ctx, "Projecting chunk", "worker", idx, "from", job.from, "to", job.to)

		for i := job.from; i < job.to; i++ {
			points[i] = c.LatLngToPoint(latlngs[i], zoom)
		}

		ps.metrics.ActiveWorkers.Dec()
	}
}
