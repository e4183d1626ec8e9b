// Package octant classifies positions into the eight static octants around Sol.
//
// Octants are fixed configuration: the table for a given half-extent is built
// once and looked up by id. Classification only inspects coordinate signs, with
// a zero coordinate treated as positive, so the eight octants partition space
// exhaustively and disjointly.
package octant

import (
	"fmt"
	"math"

	"github.com/litescript/ls-starmap/internal/astro"
)

// DefaultRadius is the default octant half-extent in parsecs.
const DefaultRadius = 130.0

// Count is the number of octants.
const Count = 8

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// Octant is the static descriptor for one of the eight octants.
type Octant struct {
	ID     int        `json:"id"`
	Label  string     `json:"label"`
	Signs  [3]int     `json:"signs"` // +1 or -1 per axis
	X      Range      `json:"x"`
	Y      Range      `json:"y"`
	Z      Range      `json:"z"`
	Center astro.Vec3 `json:"center"`
}

// Axis direction names. Positive X points coreward, positive Y spinward and
// positive Z driftward.
var axisNames = [3][2]string{
	{"Coreward", "Rimward"},
	{"Spinward", "Anti-Spinward"},
	{"Driftward", "Anti-Driftward"},
}

// Layout is the octant table for one half-extent.
type Layout struct {
	radius  float64
	octants [Count]Octant
}

// Default is the layout for DefaultRadius.
var Default = mustLayout(DefaultRadius)

// NewLayout builds the octant table for a half-extent in parsecs.
func NewLayout(radius float64) (Layout, error) {
	if err := astro.RequirePositive("octant.NewLayout", "radius", radius); err != nil {
		return Layout{}, err
	}

	l := Layout{radius: radius}
	for i := 0; i < Count; i++ {
		signs := signsForID(i + 1)
		o := Octant{ID: i + 1, Signs: signs}

		ranges := [3]*Range{&o.X, &o.Y, &o.Z}
		center := [3]float64{}
		label := ""
		for axis, s := range signs {
			if s > 0 {
				*ranges[axis] = Range{Min: 0, Max: radius}
				label += axisNames[axis][0]
			} else {
				*ranges[axis] = Range{Min: -radius, Max: 0}
				label += axisNames[axis][1]
			}
			if axis < 2 {
				label += " "
			}
			center[axis] = float64(s) * radius / 2
		}
		o.Center = astro.Vec3{X: center[0], Y: center[1], Z: center[2]}
		o.Label = label
		l.octants[i] = o
	}
	return l, nil
}

func mustLayout(radius float64) Layout {
	l, err := NewLayout(radius)
	if err != nil {
		panic(err)
	}
	return l
}

// signsForID decodes an id (1-8) into per-axis signs. Bit 0 of id-1 flips X,
// bit 1 flips Y and bit 2 flips Z, so id 1 is the all-positive octant.
func signsForID(id int) [3]int {
	bits := id - 1
	var s [3]int
	for axis := 0; axis < 3; axis++ {
		if bits&(1<<axis) != 0 {
			s[axis] = -1
		} else {
			s[axis] = 1
		}
	}
	return s
}

// Radius returns the half-extent of the layout.
func (l Layout) Radius() float64 {
	return l.radius
}

// All returns the eight octants ordered by id.
func (l Layout) All() []Octant {
	out := make([]Octant, Count)
	copy(out, l.octants[:])
	return out
}

// ByID looks up an octant by id (1-8).
func (l Layout) ByID(id int) (Octant, bool) {
	if id < 1 || id > Count {
		return Octant{}, false
	}
	return l.octants[id-1], true
}

// Classify returns the octant whose sign pattern matches p.
// Points beyond the half-extent are still classified by sign; use Contains to
// test the extent.
func (l Layout) Classify(p astro.Vec3) (Octant, error) {
	id, err := ClassifyID(p)
	if err != nil {
		return Octant{}, err
	}
	return l.octants[id-1], nil
}

// Contains reports whether p lies inside the layout's ±radius cube.
func (l Layout) Contains(p astro.Vec3) bool {
	o, err := l.Classify(p)
	if err != nil {
		return false
	}
	return o.X.Contains(p.X) && o.Y.Contains(p.Y) && o.Z.Contains(p.Z)
}

// ClassifyID returns the octant id (1-8) for p. A zero coordinate counts as
// positive.
func ClassifyID(p astro.Vec3) (int, error) {
	coords := [3]float64{p.X, p.Y, p.Z}
	names := [3]string{"x", "y", "z"}

	id := 1
	for axis, v := range coords {
		if math.IsNaN(v) {
			return 0, astro.NewInvalidInput("octant.Classify", names[axis], v, "coordinate is NaN")
		}
		if v < 0 {
			id += 1 << axis
		}
	}
	return id, nil
}

// Classify classifies p against the layout for radius.
func Classify(p astro.Vec3, radius float64) (Octant, error) {
	l := Default
	if radius != DefaultRadius {
		var err error
		if l, err = NewLayout(radius); err != nil {
			return Octant{}, err
		}
	}
	return l.Classify(p)
}

// Partition groups items by octant id using pos to locate each item. Every
// octant id is present in the result, possibly with an empty slice.
func Partition[T any](items []T, pos func(T) astro.Vec3) (map[int][]T, error) {
	out := make(map[int][]T, Count)
	for id := 1; id <= Count; id++ {
		out[id] = nil
	}
	for i, item := range items {
		id, err := ClassifyID(pos(item))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[id] = append(out[id], item)
	}
	return out, nil
}
