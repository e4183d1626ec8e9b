// Package stellar derives per-star display aids from catalog fields: the
// habitable zone band and multi-star (binary) decomposition of spectral
// classification strings.
package stellar

import (
	"math"

	"github.com/litescript/ls-starmap/internal/astro"
)

// Habitable zone coefficients in AU per sqrt(L/Lsun).
const (
	HabitableInnerCoeff = 0.95
	HabitableOuterCoeff = 1.37

	// SolarLuminosity is substituted when the catalog value is missing,
	// zero or negative.
	SolarLuminosity = 1.0
)

// HabitableZone is the orbital band, in AU, where liquid water could
// plausibly exist. Inner < Outer always.
type HabitableZone struct {
	Inner      float64 `json:"inner_au"`
	Outer      float64 `json:"outer_au"`
	Luminosity float64 `json:"luminosity"`          // Luminosity actually used
	Defaulted  bool    `json:"defaulted,omitempty"` // Solar default was substituted
}

// ComputeZone returns the habitable zone for a luminosity in solar units.
//
// Zero and negative values are treated as missing and replaced by the solar
// value; this is a display aid, not a scientific instrument. NaN and ±Inf are
// structurally invalid and rejected.
func ComputeZone(luminosity float64) (HabitableZone, error) {
	if math.IsNaN(luminosity) || math.IsInf(luminosity, 0) {
		return HabitableZone{}, astro.NewInvalidInput("stellar.ComputeZone", "luminosity", luminosity, "must be finite")
	}

	z := HabitableZone{Luminosity: luminosity}
	if luminosity <= 0 {
		z.Luminosity = SolarLuminosity
		z.Defaulted = true
	}

	root := math.Sqrt(z.Luminosity)
	z.Inner = HabitableInnerCoeff * root
	z.Outer = HabitableOuterCoeff * root
	return z, nil
}

// Contains reports whether an orbital distance in AU lies inside the zone.
func (z HabitableZone) Contains(au float64) bool {
	return au >= z.Inner && au <= z.Outer
}

// Width returns the zone width in AU.
func (z HabitableZone) Width() float64 {
	return z.Outer - z.Inner
}
