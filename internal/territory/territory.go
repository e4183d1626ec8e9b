package territory

import (
	"math"
	"strconv"

	"github.com/litescript/ls-starmap/internal/astro"
)

// Request describes one territory to synthesize.
type Request struct {
	Name    string       `json:"name,omitempty"`
	Members []astro.Vec3 `json:"members"`

	// Compact shrinks the boundary by Config.CompactFactor. It is an explicit
	// per-territory choice made by the caller.
	Compact bool `json:"compact,omitempty"`
}

// Territory is the immutable result of a synthesis. Slices are owned by the
// value and must be treated as read-only; sharing across goroutines is safe.
type Territory struct {
	Name            string       `json:"name,omitempty"`
	Members         []astro.Vec3 `json:"members"`
	Compact         bool         `json:"compact"`
	Centroid        astro.Vec3   `json:"centroid"`
	BoundingRadius  float64      `json:"bounding_radius"`
	ScaleMultiplier float64      `json:"scale_multiplier"`
	BoundaryRadius  float64      `json:"boundary_radius"`
	Wireframe       Mesh         `json:"-"`
	Connections     []Segment    `json:"-"`
}

// Segment is a straight line between two points.
type Segment struct {
	From astro.Vec3
	To   astro.Vec3
}

// Synthesizer builds territories with a fixed configuration. It holds no
// mutable state and may be shared by any number of goroutines.
type Synthesizer struct {
	cfg Config
}

// NewSynthesizer validates cfg and returns a Synthesizer.
func NewSynthesizer(cfg Config) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Synthesizer{cfg: cfg}, nil
}

// Config returns the synthesizer configuration.
func (s *Synthesizer) Config() Config {
	return s.cfg
}

// Synthesize computes the territory for req.
func (s *Synthesizer) Synthesize(req Request) (Territory, error) {
	const op = "territory.Synthesize"

	n := len(req.Members)
	if n == 0 {
		return Territory{}, astro.NewInvalidInput(op, "members", 0, "at least one member is required")
	}

	members := make([]astro.Vec3, n)
	copy(members, req.Members)

	var sum astro.Vec3
	for i, m := range members {
		if !m.IsFinite() {
			return Territory{}, astro.NewInvalidInput(op, "members["+strconv.Itoa(i)+"]", math.NaN(), "coordinates must be finite")
		}
		sum = sum.Add(m)
	}
	centroid := sum.Scale(1 / float64(n))

	radius := 0.0
	for _, m := range members {
		if d := centroid.Dist(m); d > radius {
			radius = d
		}
	}
	// A lone member (or coincident members) has no natural extent
	if n == 1 || radius == 0 {
		radius = math.Max(radius, s.cfg.MinRadius)
	}

	multiplier := s.ScaleMultiplier(n, req.Compact)
	boundary := radius * multiplier

	return Territory{
		Name:            req.Name,
		Members:         members,
		Compact:         req.Compact,
		Centroid:        centroid,
		BoundingRadius:  radius,
		ScaleMultiplier: multiplier,
		BoundaryRadius:  boundary,
		Wireframe:       s.sphere(centroid, boundary),
		Connections:     connections(centroid, members),
	}, nil
}

// ScaleMultiplier returns the boundary scale for a territory of n members.
// Growth is logarithmic in n.
func (s *Synthesizer) ScaleMultiplier(n int, compact bool) float64 {
	m := s.cfg.BaseMultiplier + math.Log10(float64(n)+1)*s.cfg.LogWeight
	if compact {
		m *= s.cfg.CompactFactor
	}
	return m
}

func connections(centroid astro.Vec3, members []astro.Vec3) []Segment {
	segs := make([]Segment, len(members))
	for i, m := range members {
		segs[i] = Segment{From: centroid, To: m}
	}
	return segs
}

// Contains reports whether p lies inside the boundary sphere.
func (t Territory) Contains(p astro.Vec3) bool {
	return t.Centroid.Dist(p) <= t.BoundaryRadius
}

// Lines flattens the wireframe into point triples separated by nil breaks.
func (t Territory) Lines() [][]float64 {
	return t.Wireframe.Lines()
}

// ConnectionLines flattens the connection graph the same way as Lines.
func (t Territory) ConnectionLines() [][]float64 {
	out := make([][]float64, 0, len(t.Connections)*3)
	for _, s := range t.Connections {
		out = append(out, point(s.From), point(s.To), nil)
	}
	return out
}

func point(v astro.Vec3) []float64 {
	a := v.Array()
	return a[:]
}
