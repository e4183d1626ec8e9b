// Package catalog ingests raw star records into CelestialPoints placed in
// galactic Cartesian space, and holds the polities that claim them.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/litescript/ls-starmap/internal/astro"
)

// ErrUnknownStar is returned when a name does not resolve to a catalog point.
var ErrUnknownStar = errors.New("unknown star")

// Entry is a raw catalog record as it would arrive from an import.
// Luminosity <= 0 means the value is missing.
type Entry struct {
	Name       string  `json:"name" koanf:"name"`
	RAdeg      float64 `json:"ra" koanf:"ra"`             // J2000, degrees
	DecDeg     float64 `json:"dec" koanf:"dec"`           // J2000, degrees
	DistancePc float64 `json:"distance_pc" koanf:"dist"`  // parsecs from Sol
	Mag        float64 `json:"magnitude" koanf:"mag"`     // apparent visual magnitude
	Spectral   string  `json:"spectral" koanf:"spectral"` // may combine components, e.g. "G2V+K1V"
	Luminosity float64 `json:"luminosity" koanf:"lum"`    // solar units
}

// Point is an ingested CelestialPoint. It is an immutable value.
type Point struct {
	Name       string           `json:"name"`
	Position   astro.Vec3       `json:"position"` // galactic Cartesian, parsecs
	Galactic   astro.Galactic   `json:"galactic"`
	Equatorial astro.Equatorial `json:"equatorial"`
	DistancePc float64          `json:"distance_pc"`
	Magnitude  float64          `json:"magnitude"`
	Spectral   string           `json:"spectral"`
	Luminosity float64          `json:"luminosity"`

	// LuminosityDefaulted is set when the record had no usable luminosity.
	LuminosityDefaulted bool `json:"luminosity_defaulted,omitempty"`
}

// NewPoint places e in galactic Cartesian space. A missing luminosity is
// replaced by defaultLum.
func NewPoint(e Entry, defaultLum float64) (Point, error) {
	if strings.TrimSpace(e.Name) == "" {
		return Point{}, fmt.Errorf("catalog entry: empty name")
	}

	pos, err := astro.EquatorialToGalacticCartesian(e.RAdeg, e.DecDeg, e.DistancePc)
	if err != nil {
		return Point{}, fmt.Errorf("catalog entry %q: %w", e.Name, err)
	}
	gal, err := astro.EquatorialToGalactic(e.RAdeg, e.DecDeg)
	if err != nil {
		return Point{}, fmt.Errorf("catalog entry %q: %w", e.Name, err)
	}

	p := Point{
		Name:       e.Name,
		Position:   pos,
		Galactic:   gal,
		Equatorial: astro.Equatorial{RAdeg: e.RAdeg, DecDeg: e.DecDeg},
		DistancePc: e.DistancePc,
		Magnitude:  e.Mag,
		Spectral:   e.Spectral,
		Luminosity: e.Luminosity,
	}
	if p.Luminosity <= 0 {
		p.Luminosity = defaultLum
		p.LuminosityDefaulted = true
	}
	return p, nil
}

// Polity is a political entity claiming a set of stars by name.
type Polity struct {
	Name    string   `json:"name" koanf:"name"`
	Members []string `json:"members" koanf:"members"`

	// Compact draws a tighter boundary for this polity.
	Compact bool `json:"compact,omitempty" koanf:"compact"`
}

// Catalog is an ordered, name-indexed set of points plus the polities that
// reference them. It is not modified after Load.
type Catalog struct {
	Points   []Point
	Polities []Polity

	byName map[string]int
}

// Load ingests entries and checks that every polity member resolves. Points
// are ordered nearest first; ties keep input order.
func Load(entries []Entry, polities []Polity, defaultLum float64) (*Catalog, error) {
	if err := astro.RequirePositive("catalog.Load", "default_luminosity", defaultLum); err != nil {
		return nil, err
	}

	c := &Catalog{
		Points:   make([]Point, 0, len(entries)),
		Polities: append([]Polity(nil), polities...),
		byName:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		p, err := NewPoint(e, defaultLum)
		if err != nil {
			return nil, err
		}
		c.Points = append(c.Points, p)
	}
	sort.SliceStable(c.Points, func(i, j int) bool {
		return c.Points[i].DistancePc < c.Points[j].DistancePc
	})

	for i, p := range c.Points {
		key := normalizeName(p.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("catalog: duplicate star %q", p.Name)
		}
		c.byName[key] = i
	}

	for _, pol := range c.Polities {
		if len(pol.Members) == 0 {
			return nil, fmt.Errorf("catalog: polity %q has no members", pol.Name)
		}
		for _, m := range pol.Members {
			if _, ok := c.byName[normalizeName(m)]; !ok {
				return nil, fmt.Errorf("catalog: polity %q: %w: %q", pol.Name, ErrUnknownStar, m)
			}
		}
	}
	return c, nil
}

// Default loads the built-in nearby-star catalog and sample polities.
func Default(defaultLum float64) (*Catalog, error) {
	return Load(DefaultEntries(), DefaultPolities(), defaultLum)
}

// Lookup finds a point by name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (Point, bool) {
	i, ok := c.byName[normalizeName(name)]
	if !ok {
		return Point{}, false
	}
	return c.Points[i], true
}

// Polity finds a polity by name, ignoring case.
func (c *Catalog) Polity(name string) (Polity, bool) {
	key := normalizeName(name)
	for _, p := range c.Polities {
		if normalizeName(p.Name) == key {
			return p, true
		}
	}
	return Polity{}, false
}

// Members resolves a polity's member names to points in declaration order.
func (c *Catalog) Members(p Polity) ([]Point, error) {
	out := make([]Point, 0, len(p.Members))
	for _, name := range p.Members {
		pt, ok := c.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("polity %q: %w: %q", p.Name, ErrUnknownStar, name)
		}
		out = append(out, pt)
	}
	return out, nil
}

// Claimants returns the names of polities that list the named star.
func (c *Catalog) Claimants(star string) []string {
	key := normalizeName(star)
	var out []string
	for _, p := range c.Polities {
		for _, m := range p.Members {
			if normalizeName(m) == key {
				out = append(out, p.Name)
				break
			}
		}
	}
	return out
}

// Positions extracts the galactic Cartesian position of each point.
func Positions(points []Point) []astro.Vec3 {
	out := make([]astro.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Position
	}
	return out
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
