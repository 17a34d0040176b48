package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/crs"
	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geometry"
	"googlemaps.github.io/maps"
)

type errorResponse struct {
	Error string `json:"error"`
}

type pointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type latLngResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type boundsResponse struct {
	Min pointResponse `json:"min"`
	Max pointResponse `json:"max"`
}

type latLngBoundsResponse struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

type crsResponse struct {
	Code     string      `json:"code"`
	Infinite bool        `json:"infinite"`
	WrapLng  *[2]float64 `json:"wrap_lng,omitempty"`
	WrapLat  *[2]float64 `json:"wrap_lat,omitempty"`
}

type crsListResponse struct {
	Default string        `json:"default"`
	CRS     []crsResponse `json:"crs"`
}

type projectedBoundsResponse struct {
	Infinite bool            `json:"infinite"`
	Bounds   *boundsResponse `json:"bounds,omitempty"`
}

type distanceResponse struct {
	Distance float64 `json:"distance"`
}

type batchRequest struct {
	Zoom     float64      `json:"zoom"`
	Points   [][2]float64 `json:"points"`
	Polyline string       `json:"polyline"`
}

type batchResponse struct {
	CRS          string               `json:"crs"`
	Zoom         float64              `json:"zoom"`
	Points       []pointResponse      `json:"points"`
	PixelBounds  boundsResponse       `json:"pixel_bounds"`
	LatLngBounds latLngBoundsResponse `json:"latlng_bounds"`
}

func toPoint(p geometry.Point) pointResponse {
	return pointResponse{X: p.X, Y: p.Y}
}

func toLatLng(ll geo.LatLng) latLngResponse {
	return latLngResponse{Lat: ll.Lat, Lng: ll.Lng}
}

func toBounds(b geometry.Bounds) boundsResponse {
	return boundsResponse{Min: toPoint(b.Min()), Max: toPoint(b.Max())}
}

func toRange(r geo.Range) *[2]float64 {
	if r.IsZero() {
		return nil
	}

	return &[2]float64{r.Min, r.Max}
}

var zeroZoom = 0.0

func (s *Server) resolve(r *http.Request) (*crs.CRS, error) {
	return s.service.Resolve(r.PathValue("code"))
}

func (s *Server) listCRS(w http.ResponseWriter, _ *http.Request) error {
	registry := s.service.Registry()
	resp := crsListResponse{CRS: []crsResponse{}}
	if def := registry.Default(); def != nil {
		resp.Default = def.Code()
	}

	for _, code := range registry.Codes() {
		c, err := registry.Lookup(code)
		if err != nil {
			return err
		}
		resp.CRS = append(resp.CRS, crsResponse{
			Code:     c.Code(),
			Infinite: c.Infinite(),
			WrapLng:  toRange(c.WrapLng()),
			WrapLat:  toRange(c.WrapLat()),
		})
	}

	return s.reply(w, resp)
}

func (s *Server) latLngToPoint(w http.ResponseWriter, r *http.Request) error {
	c, err := s.resolve(r)
	if err != nil {
		return err
	}
	latlng, err := queryLatLng(r, "latlng")
	if err != nil {
		return err
	}
	zoom, err := queryFloat(r, "zoom", &zeroZoom)
	if err != nil {
		return err
	}

	s.service.Record(c, "latlng_to_point", 1)
	return s.reply(w, toPoint(c.LatLngToPoint(latlng, zoom)))
}

func (s *Server) pointToLatLng(w http.ResponseWriter, r *http.Request) error {
	c, err := s.resolve(r)
	if err != nil {
		return err
	}
	point, err := queryPoint(r)
	if err != nil {
		return err
	}
	zoom, err := queryFloat(r, "zoom", &zeroZoom)
	if err != nil {
		return err
	}

	s.service.Record(c, "point_to_latlng", 1)
	return s.reply(w, toLatLng(c.PointToLatLng(point, zoom)))
}

func (s *Server) project(w http.ResponseWriter, r *http.Request) error {
	c, err := s.resolve(r)
	if err != nil {
		return err
	}
	latlng, err := queryLatLng(r, "latlng")
	if err != nil {
		return err
	}

	s.service.Record(c, "project", 1)
	return s.reply(w, toPoint(c.Project(latlng)))
}

func (s *Server) unproject(w http.ResponseWriter, r *http.Request) error {
	c, err := s.resolve(r)
	if err != nil {
		return err
	}
	point, err := queryPoint(r)
	if err != nil {
		return err
	}

	s.service.Record(c, "unproject", 1)
	return s.reply(w, toLatLng(c.Unproject(point)))
}

func (s *Server) projectedBounds(w http.ResponseWriter, r *http.Request) error {
	c, err := s.resolve(r)
	if err != nil {
		return err
	}
	zoom, err := queryFloat(r, "zoom", &zeroZoom)
	if err != nil {
		return err
	}

	resp := projectedBoundsResponse{Infinite: c.Infinite()}
	if b, ok := c.ProjectedBounds(zoom); ok {
		bounds := toBounds(b)
		resp.Bounds = &bounds
	}

	return s.reply(w, resp)
}

func (s *Server) pixelBounds(w http.ResponseWriter, r *http.Request) error {
	c, err := s.resolve(r)
	if err != nil {
		return err
	}
	box, err := queryBBox(r, "bbox")
	if err != nil {
		return err
	}
	zoom, err := queryFloat(r, "zoom", &zeroZoom)
	if err != nil {
		return err
	}

	s.service.Record(c, "latlng_bounds_to_pixel_bounds", 1)
	return s.reply(w, toBounds(c.LatLngBoundsToPixelBounds(box, zoom)))
}

func (s *Server) distance(w http.ResponseWriter, r *http.Request) error {
	c, err := s.resolve(r)
	if err != nil {
		return err
	}
	from, err := queryLatLng(r, "from")
	if err != nil {
		return err
	}
	to, err := queryLatLng(r, "to")
	if err != nil {
		return err
	}

	s.service.Record(c, "distance", 1)
	return s.reply(w, distanceResponse{Distance: c.Distance(from, to)})
}

func (s *Server) wrap(w http.ResponseWriter, r *http.Request) error {
	c, err := s.resolve(r)
	if err != nil {
		return err
	}
	latlng, err := queryLatLng(r, "latlng")
	if err != nil {
		return err
	}

	s.service.Record(c, "wrap", 1)
	return s.reply(w, toLatLng(c.WrapLatLng(latlng)))
}

func (s *Server) batch(w http.ResponseWriter, r *http.Request) error {
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBody)).Decode(&req); err != nil {
		return fmt.Errorf("%w: body: %w", ErrInvalidParam, err)
	}

	latlngs, err := req.latLngs()
	if err != nil {
		return err
	}

	res, err := s.service.ProjectBatch(r.Context(), r.PathValue("code"), req.Zoom, latlngs)
	if err != nil {
		return err
	}

	points := make([]pointResponse, len(res.Points))
	for i, p := range res.Points {
		points[i] = toPoint(p)
	}
	box := res.LatLngBounds

	return s.reply(w, batchResponse{
		CRS:         res.CRS,
		Zoom:        res.Zoom,
		Points:      points,
		PixelBounds: toBounds(res.PixelBounds),
		LatLngBounds: latLngBoundsResponse{
			South: box.South(),
			West:  box.West(),
			North: box.North(),
			East:  box.East(),
		},
	})
}

// latLngs returns the points of the request, given either as [lat, lng]
// pairs or as an encoded polyline.
func (req batchRequest) latLngs() ([]geo.LatLng, error) {
	if req.Polyline != "" {
		if len(req.Points) > 0 {
			return nil, fmt.Errorf("%w: points and polyline are exclusive", ErrInvalidParam)
		}

		decoded, err := maps.DecodePolyline(req.Polyline)
		if err != nil {
			return nil, fmt.Errorf("%w: polyline: %w", ErrInvalidParam, err)
		}

		latlngs := make([]geo.LatLng, len(decoded))
		for i, ll := range decoded {
			latlngs[i] = geo.NewLatLng(ll.Lat, ll.Lng)
		}

		return latlngs, nil
	}

	latlngs := make([]geo.LatLng, len(req.Points))
	for i, p := range req.Points {
		latlngs[i] = geo.NewLatLng(p[0], p[1])
	}

	return latlngs, nil
}

func queryPoint(r *http.Request) (geometry.Point, error) {
	x, err := queryFloat(r, "x", nil)
	if err != nil {
		return geometry.Point{}, err
	}
	y, err := queryFloat(r, "y", nil)
	if err != nil {
		return geometry.Point{}, err
	}

	return geometry.Pt(x, y), nil
}

// queryBBox parses a "west,south,east,north" query parameter. A west edge
// greater than the east edge describes a box crossing the antimeridian.
func queryBBox(r *http.Request, name string) (geo.LatLngBounds, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return geo.LatLngBounds{}, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return geo.LatLngBounds{}, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}

	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return geo.LatLngBounds{}, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
		}
		v[i] = f
	}

	return geo.NewLatLngBounds(geo.NewLatLng(v[1], v[0]), geo.NewLatLng(v[3], v[2])), nil
}
