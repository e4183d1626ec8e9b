package api

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/metrics"
	"github.com/litescript/ls-starmap/internal/octant"
	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/stellar"
	"github.com/litescript/ls-starmap/internal/territory"
	"github.com/litescript/ls-starmap/internal/validation"
)

// maxEvents caps the events endpoint.
const maxEvents = 500

// HealthResponse reports server and catalog status.
type HealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Stars       int       `json:"stars"`
	Territories int       `json:"territories"`
	LastUpdate  time.Time `json:"last_update,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	resp := HealthResponse{
		Status:      "ok",
		Version:     s.version,
		Territories: len(snap.Territories),
		LastUpdate:  snap.LastUpdate,
	}
	if snap.Catalog != nil {
		resp.Stars = len(snap.Catalog.Points)
	} else {
		resp.Status = "empty"
	}
	if snap.LastError != nil {
		resp.Status = "degraded"
		resp.LastError = snap.LastError.Error()
	}
	s.respondData(w, resp)
}

// --- transforms ---

// CartesianRequest converts an angular position plus distance to Cartesian.
type CartesianRequest struct {
	Frame    string   `json:"frame" validate:"omitempty,oneof=equatorial galactic"`
	Lon      *float64 `json:"lon" validate:"required"` // RA or l, degrees
	Lat      *float64 `json:"lat" validate:"required"` // Dec or b, degrees
	Distance *float64 `json:"distance_pc" validate:"required"`
}

// CartesianResponse is a Cartesian position in both frames.
type CartesianResponse struct {
	Equatorial astro.Vec3 `json:"equatorial"`
	Galactic   astro.Vec3 `json:"galactic"`
	Octant     int        `json:"octant"`
}

func (s *Server) handleGalacticToEquatorial(w http.ResponseWriter, r *http.Request) {
	l, b, ok := s.queryPair(w, r, "l", "b")
	if !ok {
		return
	}
	start := time.Now()
	eq, err := astro.GalacticToEquatorial(l, b)
	metrics.RecordOperation("galactic_to_equatorial", time.Since(start), err)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondData(w, eq)
}

func (s *Server) handleEquatorialToGalactic(w http.ResponseWriter, r *http.Request) {
	ra, dec, ok := s.queryPair(w, r, "ra", "dec")
	if !ok {
		return
	}
	start := time.Now()
	gal, err := astro.EquatorialToGalactic(ra, dec)
	metrics.RecordOperation("equatorial_to_galactic", time.Since(start), err)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondData(w, gal)
}

func (s *Server) handleCartesian(w http.ResponseWriter, r *http.Request) {
	var req CartesianRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondErr(w, err)
		return
	}

	start := time.Now()
	var (
		gal astro.Vec3
		err error
	)
	if req.Frame == "galactic" {
		gal, err = astro.GalacticToCartesian(*req.Lon, *req.Lat, *req.Distance)
	} else {
		gal, err = astro.EquatorialToGalacticCartesian(*req.Lon, *req.Lat, *req.Distance)
	}
	metrics.RecordOperation("to_cartesian", time.Since(start), err)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	id, err := octant.ClassifyID(gal)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondData(w, CartesianResponse{
		Equatorial: astro.GalacticCartesianToEquatorialCartesian(gal),
		Galactic:   gal,
		Octant:     id,
	})
}

// --- octants ---

// ClassifyRequest classifies a galactic Cartesian point.
type ClassifyRequest struct {
	X      *float64 `json:"x" validate:"required"`
	Y      *float64 `json:"y" validate:"required"`
	Z      *float64 `json:"z" validate:"required"`
	Radius float64  `json:"radius" validate:"omitempty,gt=0"`
}

// ClassifyResponse is the octant holding a point.
type ClassifyResponse struct {
	Octant   octant.Octant `json:"octant"`
	InRegion bool          `json:"in_region"`
}

// OctantResponse is one octant with the catalog stars it holds.
type OctantResponse struct {
	octant.Octant
	Stars []catalog.Point `json:"stars"`
}

func (s *Server) handleOctants(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.layoutFromQuery(w, r)
	if !ok {
		return
	}
	all := layout.All()
	s.respondList(w, all, len(all))
}

func (s *Server) handleOctant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.badRequest(w, "octant id must be an integer")
		return
	}
	snap := s.state.Snapshot()
	o, ok := snap.Layout.ByID(id)
	if !ok {
		s.notFound(w, "unknown octant %d", id)
		return
	}

	stars := snap.ByOctant[id]
	if stars == nil {
		stars = []catalog.Point{}
	}
	s.respondData(w, OctantResponse{Octant: o, Stars: stars})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondErr(w, err)
		return
	}

	layout := s.state.Layout()
	if req.Radius > 0 && req.Radius != layout.Radius() {
		var err error
		if layout, err = octant.NewLayout(req.Radius); err != nil {
			s.respondErr(w, err)
			return
		}
	}

	p := astro.Vec3{X: *req.X, Y: *req.Y, Z: *req.Z}
	start := time.Now()
	o, err := layout.Classify(p)
	metrics.RecordOperation("octant_classify", time.Since(start), err)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondData(w, ClassifyResponse{Octant: o, InRegion: layout.Contains(p)})
}

// --- territories ---

// TerritoryResponse is a territory with its renderable geometry. Geometry
// lists use null entries as segment breaks.
type TerritoryResponse struct {
	state.Territory
	Wireframe   [][]float64 `json:"wireframe,omitempty"`
	Connections [][]float64 `json:"connections,omitempty"`
}

// SynthesizeRequest asks for an ad hoc territory.
type SynthesizeRequest struct {
	Name    string       `json:"name" validate:"max=120"`
	Members []astro.Vec3 `json:"members" validate:"required,min=1,max=10000"`
	Compact bool         `json:"compact"`
}

func withGeometry(t state.Territory) TerritoryResponse {
	return TerritoryResponse{
		Territory:   t,
		Wireframe:   t.Lines(),
		Connections: t.ConnectionLines(),
	}
}

func (s *Server) handleTerritories(w http.ResponseWriter, r *http.Request) {
	geometry := r.URL.Query().Get("geometry") == "true"
	snap := s.state.Snapshot()

	out := make([]TerritoryResponse, len(snap.Territories))
	for i, t := range snap.Territories {
		if geometry {
			out[i] = withGeometry(t)
		} else {
			out[i] = TerritoryResponse{Territory: t}
		}
	}
	s.respondList(w, out, len(out))
}

func (s *Server) handleTerritory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	t, ok := s.state.Territory(name)
	if !ok {
		s.notFound(w, "unknown territory %q", name)
		return
	}
	s.respondData(w, withGeometry(t))
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondErr(w, err)
		return
	}

	start := time.Now()
	t, err := s.state.Synthesizer().Synthesize(territory.Request{
		Name:    req.Name,
		Members: req.Members,
		Compact: req.Compact,
	})
	metrics.RecordOperation("territory_synthesize", time.Since(start), err)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	id, err := octant.ClassifyID(t.Centroid)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondData(w, withGeometry(state.Territory{Territory: t, CentroidOctant: id}))
}

// --- stars ---

// StarSummary is a catalog star in list responses.
type StarSummary struct {
	catalog.Point
	Octant int `json:"octant"`
}

func (s *Server) handleStars(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	if snap.Catalog == nil {
		s.respondList(w, []StarSummary{}, 0)
		return
	}

	var filter int
	if v := r.URL.Query().Get("octant"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 1 || id > octant.Count {
			s.badRequest(w, "octant must be an integer in 1..%d", octant.Count)
			return
		}
		filter = id
	}

	out := make([]StarSummary, 0, len(snap.Catalog.Points))
	for id, pts := range snap.ByOctant {
		if filter != 0 && id != filter {
			continue
		}
		for _, p := range pts {
			out = append(out, StarSummary{Point: p, Octant: id})
		}
	}
	// Nearest first, matching catalog order
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistancePc != out[j].DistancePc {
			return out[i].DistancePc < out[j].DistancePc
		}
		return out[i].Name < out[j].Name
	})
	s.respondList(w, out, len(out))
}

func (s *Server) handleStar(w http.ResponseWriter, r *http.Request) {
	d, err := s.state.Snapshot().Star(chi.URLParam(r, "name"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondData(w, d)
}

// --- stellar ---

// BinaryRequest resolves a combined spectral string.
type BinaryRequest struct {
	Spectral   string   `json:"spectral" validate:"max=200"`
	DistancePc *float64 `json:"distance_pc" validate:"required"`
}

func (s *Server) handleHabitableZone(w http.ResponseWriter, r *http.Request) {
	// Missing luminosity means solar, like a sparse catalog record
	var lum float64
	if v := r.URL.Query().Get("luminosity"); v != "" {
		var err error
		if lum, err = strconv.ParseFloat(v, 64); err != nil {
			s.badRequest(w, "luminosity must be a number")
			return
		}
	}

	start := time.Now()
	zone, err := stellar.ComputeZone(lum)
	metrics.RecordOperation("habitable_zone", time.Since(start), err)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondData(w, zone)
}

func (s *Server) handleBinary(w http.ResponseWriter, r *http.Request) {
	var req BinaryRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondErr(w, err)
		return
	}

	start := time.Now()
	desc, err := stellar.Resolve(req.Spectral, *req.DistancePc)
	metrics.RecordOperation("binary_resolve", time.Since(start), err)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondData(w, desc)
}

// --- events ---

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxEvents {
			s.badRequest(w, "limit must be an integer in 1..%d", maxEvents)
			return
		}
		limit = n
	}
	events := s.state.RecentEvents(limit)
	if events == nil {
		events = []state.Event{}
	}
	s.respondList(w, events, len(events))
}

// --- helpers ---

// queryPair parses two required float query parameters.
func (s *Server) queryPair(w http.ResponseWriter, r *http.Request, a, b string) (float64, float64, bool) {
	q := r.URL.Query()
	var fields []validation.FieldError
	parse := func(name string) float64 {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			fields = append(fields, validation.FieldError{Field: name, Tag: "required", Message: name + " is required"})
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields = append(fields, validation.FieldError{Field: name, Tag: "number", Message: name + " must be a number"})
		}
		return v
	}
	va, vb := parse(a), parse(b)
	if len(fields) > 0 {
		s.respondErr(w, &validation.Error{Fields: fields})
		return 0, 0, false
	}
	return va, vb, true
}

// layoutFromQuery returns the manager's layout, or one for ?radius=.
func (s *Server) layoutFromQuery(w http.ResponseWriter, r *http.Request) (octant.Layout, bool) {
	layout := s.state.Layout()
	v := r.URL.Query().Get("radius")
	if v == "" {
		return layout, true
	}
	radius, err := strconv.ParseFloat(v, 64)
	if err != nil {
		s.badRequest(w, "radius must be a number")
		return octant.Layout{}, false
	}
	if layout, err = octant.NewLayout(radius); err != nil {
		s.respondErr(w, err)
		return octant.Layout{}, false
	}
	return layout, true
}
