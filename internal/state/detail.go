package state

import (
	"fmt"
	"time"

	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/metrics"
	"github.com/litescript/ls-starmap/internal/octant"
	"github.com/litescript/ls-starmap/internal/stellar"
)

// StarDetail gathers everything the engine derives for one catalog star.
type StarDetail struct {
	catalog.Point
	Octant    octant.Octant            `json:"octant"`
	InRegion  bool                     `json:"in_region"` // inside the ±radius octant cube
	Primary   stellar.SpectralType     `json:"primary"`
	Zone      stellar.HabitableZone    `json:"habitable_zone"`
	Binary    stellar.BinaryDescriptor `json:"binary"`
	Claimants []string                 `json:"claimants,omitempty"`
}

// Describe derives the detail record for p. Each derived part fails
// independently of the star itself: p is already validated by ingestion.
func Describe(p catalog.Point, layout octant.Layout, claimants []string) (StarDetail, error) {
	o, err := layout.Classify(p.Position)
	if err != nil {
		return StarDetail{}, fmt.Errorf("star %q: %w", p.Name, err)
	}

	start := time.Now()
	zone, err := stellar.ComputeZone(p.Luminosity)
	metrics.RecordOperation("habitable_zone", time.Since(start), err)
	if err != nil {
		return StarDetail{}, fmt.Errorf("star %q: %w", p.Name, err)
	}

	start = time.Now()
	bin, err := stellar.Resolve(p.Spectral, p.DistancePc)
	metrics.RecordOperation("binary_resolve", time.Since(start), err)
	if err != nil {
		return StarDetail{}, fmt.Errorf("star %q: %w", p.Name, err)
	}

	return StarDetail{
		Point:     p,
		Octant:    o,
		InRegion:  layout.Contains(p.Position),
		Primary:   bin.Components[0].Parsed,
		Zone:      zone,
		Binary:    bin,
		Claimants: claimants,
	}, nil
}

// Star looks up a star by name in the snapshot and describes it.
func (s Snapshot) Star(name string) (StarDetail, error) {
	if s.Catalog == nil {
		return StarDetail{}, fmt.Errorf("no catalog loaded: %w", catalog.ErrUnknownStar)
	}
	p, ok := s.Catalog.Lookup(name)
	if !ok {
		return StarDetail{}, fmt.Errorf("%w: %q", catalog.ErrUnknownStar, name)
	}
	return Describe(p, s.Layout, s.Catalog.Claimants(p.Name))
}
