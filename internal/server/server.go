package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/meridian/internal/crs"
	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"googlemaps.github.io/maps"
)

// maxBatchBody caps the size of a batch request body.
const maxBatchBody = 8 << 20

var (
	ErrMissingParam = errors.New("missing query parameter")
	ErrInvalidParam = errors.New("invalid query parameter")
	ErrUnencodable  = errors.New("result cannot be encoded")
)

// Server exposes the projection service over HTTP along with health and
// metrics endpoints.
type Server struct {
	log      *slog.Logger
	service  *service.ProjectionService
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// New creates a Server. gatherer backs the /metrics endpoint.
func New(
	log *slog.Logger,
	svc *service.ProjectionService,
	metrics *metrics.Metrics,
	gatherer prometheus.Gatherer,
) *Server {
	return &Server{log: log, service: svc, metrics: metrics, gatherer: gatherer}
}

// Handler returns the routes of the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			s.log.Error("failed to write reply", "error", err)
		}
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.route(mux, "GET /v1/crs", s.listCRS)
	s.route(mux, "GET /v1/crs/{code}/point", s.latLngToPoint)
	s.route(mux, "GET /v1/crs/{code}/latlng", s.pointToLatLng)
	s.route(mux, "GET /v1/crs/{code}/project", s.project)
	s.route(mux, "GET /v1/crs/{code}/unproject", s.unproject)
	s.route(mux, "GET /v1/crs/{code}/bounds", s.projectedBounds)
	s.route(mux, "GET /v1/crs/{code}/pixel-bounds", s.pixelBounds)
	s.route(mux, "GET /v1/crs/{code}/distance", s.distance)
	s.route(mux, "GET /v1/crs/{code}/wrap", s.wrap)
	s.route(mux, "POST /v1/crs/{code}/batch", s.batch)

	return mux
}

// Run serves the API on port until ctx is cancelled, then shuts down within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, port int, shutdownTimeout time.Duration) error {
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "Starting API server", "port", port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}

	return nil
}

// handlerFunc is an API handler. A returned error is written as a JSON error
// reply with a status derived from it.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) route(mux *http.ServeMux, pattern string, h handlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		if err := h(rec, r); err != nil {
			status := statusOf(err)
			if status >= http.StatusInternalServerError {
				s.log.ErrorContext(r.Context(), "Request failed", "route", pattern, "error", err)
			} else {
				s.log.DebugContext(r.Context(), "Request rejected", "route", pattern, "error", err)
			}
			s.writeError(rec, status, err)
		}

		s.metrics.RequestSeconds.
			WithLabelValues(pattern, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, crs.ErrUnknownCRS):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingParam),
		errors.Is(err, ErrInvalidParam),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnencodable), errors.Is(err, service.ErrNonFiniteResult):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// reply writes body as a 200 JSON reply. Nothing is written when body cannot
// be encoded, which happens for results that overflow to an infinity or NaN;
// the returned error is then reported by route instead.
func (s *Server) reply(w http.ResponseWriter, body any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("%w: %w", ErrUnencodable, err)
	}

	s.write(w, http.StatusOK, buf.Bytes())

	return nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	payload, mErr := json.Marshal(errorResponse{Error: err.Error()})
	if mErr != nil {
		s.log.Error("failed to encode error reply", "error", mErr)
		payload = []byte(`{"error":"internal error"}`)
	}

	s.write(w, status, append(payload, '\n'))
}

func (s *Server) write(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		s.log.Error("failed to write reply", "error", err)
	}
}

// queryFloat parses a finite float from the query parameter name. When
// fallback is non-nil a missing parameter yields *fallback.
func queryFloat(r *http.Request, name string, fallback *float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if fallback != nil {
			return *fallback, nil
		}
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}

	return v, nil
}

// queryLatLng parses a "lat,lng" query parameter.
func queryLatLng(r *http.Request, name string) (geo.LatLng, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return geo.LatLng{}, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	ll, err := maps.ParseLatLng(raw)
	if err != nil {
		return geo.LatLng{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidParam, name, raw, err)
	}

	latlng := geo.NewLatLng(ll.Lat, ll.Lng)
	if latlng.IsNaN() || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return geo.LatLng{}, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}

	return latlng, nil
}
