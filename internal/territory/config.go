// Package territory synthesizes boundary geometry for a set of member stars.
//
// A territory is built wholesale from its member list: centroid, bounding
// radius, a log-scaled boundary sphere rendered as a UV wireframe, and a star
// topology connecting the centroid to every member. Nothing is mutated after
// construction; a membership change means a new Synthesize call.
package territory

import (
	"fmt"

	"github.com/litescript/ls-starmap/internal/astro"
)

// Config holds the synthesizer tuning parameters.
type Config struct {
	// MinRadius is the bounding radius floor in parsecs for territories with
	// no natural extent (a single member).
	MinRadius float64 `koanf:"min_radius" validate:"gt=0"`

	// BaseMultiplier and LogWeight define the boundary scale:
	// BaseMultiplier + log10(N+1)*LogWeight.
	BaseMultiplier float64 `koanf:"base_multiplier" validate:"gt=0"`
	LogWeight      float64 `koanf:"log_weight" validate:"gte=0"`

	// CompactFactor is applied to the multiplier when a request asks for a
	// compact territory.
	CompactFactor float64 `koanf:"compact_factor" validate:"gt=0,lte=1"`

	// LatSteps and LonSteps size the UV sphere grid.
	LatSteps int `koanf:"lat_steps" validate:"gte=2"`
	LonSteps int `koanf:"lon_steps" validate:"gte=3"`

	// MeridianStride draws every Nth longitude line.
	MeridianStride int `koanf:"meridian_stride" validate:"gte=1"`
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MinRadius:      5,
		BaseMultiplier: 1.2,
		LogWeight:      0.5,
		CompactFactor:  0.5,
		LatSteps:       8,
		LonSteps:       12,
		MeridianStride: 2,
	}
}

// Validate checks the configuration without depending on struct tags, so a
// Synthesizer can be built from hand-assembled values.
func (c Config) Validate() error {
	const op = "territory.Config"
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"min_radius", c.MinRadius},
		{"base_multiplier", c.BaseMultiplier},
		{"compact_factor", c.CompactFactor},
	} {
		if err := astro.RequirePositive(op, f.name, f.v); err != nil {
			return err
		}
	}
	if err := astro.RequireFinite(op, "log_weight", c.LogWeight); err != nil {
		return err
	}
	if c.LogWeight < 0 {
		return astro.NewInvalidInput(op, "log_weight", c.LogWeight, "must be >= 0")
	}
	if c.CompactFactor > 1 {
		return astro.NewInvalidInput(op, "compact_factor", c.CompactFactor, "must be <= 1")
	}
	if c.LatSteps < 2 {
		return fmt.Errorf("%s: lat_steps %d: %w", op, c.LatSteps, astro.ErrInvalidInput)
	}
	if c.LonSteps < 3 {
		return fmt.Errorf("%s: lon_steps %d: %w", op, c.LonSteps, astro.ErrInvalidInput)
	}
	if c.MeridianStride < 1 {
		return fmt.Errorf("%s: meridian_stride %d: %w", op, c.MeridianStride, astro.ErrInvalidInput)
	}
	return nil
}
