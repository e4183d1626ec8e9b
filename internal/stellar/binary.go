package stellar

import (
	"math"
	"strings"

	"github.com/litescript/ls-starmap/internal/astro"
)

// componentSeparators split a combined spectral string into components.
const componentSeparators = "+/&"

// MinSeparationAU is the floor applied to every separation estimate.
const MinSeparationAU = 0.1

// SeparationNote accompanies every separation estimate shown to a user.
const SeparationNote = "approximate: bucketed by spectral letter, not a measured orbit"

// Angular separation buckets in arcseconds, checked in this order.
const (
	sepArcsecM       = 0.5
	sepArcsecGK      = 1.0
	sepArcsecAF      = 2.0
	sepArcsecDefault = 1.0
)

// Component is one star of a (possibly multiple) system.
type Component struct {
	Label        string       `json:"label"`
	SpectralType string       `json:"spectral_type"`
	Parsed       SpectralType `json:"parsed"`

	// Present on secondary components only.
	AngularSeparationArcsec *float64 `json:"angular_separation_arcsec,omitempty"`
	SeparationAU            *float64 `json:"separation_au,omitempty"`
}

// BinaryDescriptor is the result of resolving a spectral string.
//
// SeparationAU is a heuristic estimate for the first secondary component. It
// is present only for multi-star systems and is always flagged Approximate.
type BinaryDescriptor struct {
	IsBinary     bool        `json:"is_binary"`
	Components   []Component `json:"components"`
	SeparationAU *float64    `json:"separation_au,omitempty"`
	Approximate  bool        `json:"approximate,omitempty"`
	Note         string      `json:"note,omitempty"`
}

// Resolve splits a combined spectral string into ordered components labelled
// A, B, C, … and estimates the physical separation of each secondary from a
// coarse per-letter angular separation and the distance in parsecs.
//
// Unparseable components are kept verbatim. Only an invalid distance fails.
func Resolve(spectral string, distancePc float64) (BinaryDescriptor, error) {
	if err := astro.RequirePositive("stellar.Resolve", "distance", distancePc); err != nil {
		return BinaryDescriptor{}, err
	}

	parts := splitComponents(spectral)
	if len(parts) < 2 {
		// A stray separator ("G2V+") leaves one piece; parse that piece but
		// keep the raw string.
		primary := spectral
		if len(parts) == 1 {
			primary = parts[0]
		}
		return BinaryDescriptor{
			Components: []Component{{
				Label:        componentLabel(0),
				SpectralType: spectral,
				Parsed:       ParseSpectralType(primary),
			}},
		}, nil
	}

	d := BinaryDescriptor{
		IsBinary:    true,
		Components:  make([]Component, len(parts)),
		Approximate: true,
		Note:        SeparationNote,
	}
	for i, p := range parts {
		c := Component{
			Label:        componentLabel(i),
			SpectralType: p,
			Parsed:       ParseSpectralType(p),
		}
		if i > 0 {
			arcsec := AngularSeparationArcsec(p)
			au := SeparationAU(arcsec, distancePc)
			c.AngularSeparationArcsec = &arcsec
			c.SeparationAU = &au
		}
		d.Components[i] = c
	}
	sep := *d.Components[1].SeparationAU
	d.SeparationAU = &sep
	return d, nil
}

// splitComponents returns the non-empty, trimmed pieces of s between
// separators. A string without separators yields at most one piece.
func splitComponents(s string) []string {
	if !strings.ContainsAny(s, componentSeparators) {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return []string{s}
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(componentSeparators, r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// AngularSeparationArcsec returns the bucketed angular separation guess for a
// secondary component's spectral string.
func AngularSeparationArcsec(spectral string) float64 {
	switch {
	case strings.Contains(spectral, "M"):
		return sepArcsecM
	case strings.ContainsAny(spectral, "GK"):
		return sepArcsecGK
	case strings.ContainsAny(spectral, "AF"):
		return sepArcsecAF
	default:
		return sepArcsecDefault
	}
}

// SeparationAU converts an angular separation at a distance into a projected
// separation, floored at MinSeparationAU. One arcsecond at one parsec is one AU.
func SeparationAU(arcsec, distancePc float64) float64 {
	return math.Max(arcsec*distancePc, MinSeparationAU)
}

// componentLabel returns A..Z, then AA, AB, … for index i.
func componentLabel(i int) string {
	var b []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}
