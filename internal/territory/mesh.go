package territory

import (
	"math"

	"github.com/litescript/ls-starmap/internal/astro"
)

// Edge joins two vertex indices of a Mesh.
type Edge [2]int

// Mesh is a line wireframe with shared vertices.
type Mesh struct {
	Vertices []astro.Vec3
	Edges    []Edge
}

// Segments expands the edges into explicit segments.
func (m Mesh) Segments() []Segment {
	out := make([]Segment, len(m.Edges))
	for i, e := range m.Edges {
		out[i] = Segment{From: m.Vertices[e[0]], To: m.Vertices[e[1]]}
	}
	return out
}

// Lines flattens the mesh into point triples with a nil entry after every
// segment.
func (m Mesh) Lines() [][]float64 {
	out := make([][]float64, 0, len(m.Edges)*3)
	for _, e := range m.Edges {
		out = append(out, point(m.Vertices[e[0]]), point(m.Vertices[e[1]]), nil)
	}
	return out
}

// sphere builds a UV-sphere wireframe around center.
//
// Vertices use one parametrization: ring i (1..LatSteps-1) at polar angle
// π·i/LatSteps, column j (0..LonSteps-1) at azimuth 2π·j/LonSteps. Column
// LonSteps wraps to column 0, so the seam shares vertices. The poles are not
// emitted, which keeps every segment well away from zero length.
func (s *Synthesizer) sphere(center astro.Vec3, radius float64) Mesh {
	lat, lon := s.cfg.LatSteps, s.cfg.LonSteps
	rings := lat - 1

	m := Mesh{
		Vertices: make([]astro.Vec3, 0, rings*lon),
	}
	for i := 1; i <= rings; i++ {
		theta := math.Pi * float64(i) / float64(lat)
		sinT, cosT := math.Sincos(theta)
		for j := 0; j < lon; j++ {
			phi := 2 * math.Pi * float64(j) / float64(lon)
			sinP, cosP := math.Sincos(phi)
			m.Vertices = append(m.Vertices, center.Add(astro.Vec3{
				X: radius * sinT * cosP,
				Y: radius * sinT * sinP,
				Z: radius * cosT,
			}))
		}
	}

	idx := func(ring, col int) int {
		return (ring-1)*lon + col%lon
	}

	seen := make(map[Edge]bool)
	add := func(a, b int) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		e := Edge{a, b}
		if seen[e] || m.Vertices[a] == m.Vertices[b] {
			return
		}
		seen[e] = true
		m.Edges = append(m.Edges, e)
	}

	// Latitude rings
	for i := 1; i <= rings; i++ {
		for j := 0; j < lon; j++ {
			add(idx(i, j), idx(i, j+1))
		}
	}

	// Meridians, pole to pole minus the pole caps
	for j := 0; j < lon; j += s.cfg.MeridianStride {
		for i := 1; i < rings; i++ {
			add(idx(i, j), idx(i+1, j))
		}
	}

	return m
}
