package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/stellar"
)

// WriteStarCard writes a plain-text detail card for one star.
func WriteStarCard(w io.Writer, d state.StarDetail) {
	fmt.Fprintln(w, d.Name)
	fmt.Fprintln(w, strings.Repeat("─", 48))

	fmt.Fprintf(w, "%-14s RA %.4f°  Dec %+.4f°\n", "Equatorial", d.Equatorial.RAdeg, d.Equatorial.DecDeg)
	fmt.Fprintf(w, "%-14s l %.4f°  b %+.4f°\n", "Galactic", d.Galactic.LDeg, d.Galactic.BDeg)
	fmt.Fprintf(w, "%-14s %s\n", "Position", FormatVec(d.Position))
	fmt.Fprintf(w, "%-14s %s\n", "Distance", FormatParsecs(d.DistancePc))
	fmt.Fprintf(w, "%-14s %.2f\n", "Magnitude", d.Magnitude)

	region := ""
	if !d.InRegion {
		region = " (outside region)"
	}
	fmt.Fprintf(w, "%-14s %d %s%s\n", "Octant", d.Octant.ID, d.Octant.Label, region)

	fmt.Fprintf(w, "%-14s %s\n", "Spectral", describeSpectral(d.Spectral, d.Primary))

	lum := fmt.Sprintf("%.4g L☉", d.Luminosity)
	if d.LuminosityDefaulted || d.Zone.Defaulted {
		lum += " (default)"
	}
	fmt.Fprintf(w, "%-14s %s\n", "Luminosity", lum)
	fmt.Fprintf(w, "%-14s %s – %s (%s wide)\n", "Habitable zone",
		FormatAU(d.Zone.Inner), FormatAU(d.Zone.Outer), FormatAU(d.Zone.Width()))

	if d.Binary.IsBinary {
		fmt.Fprintf(w, "%-14s %d components\n", "System", len(d.Binary.Components))
		for _, c := range d.Binary.Components {
			sep := "primary"
			if c.SeparationAU != nil {
				sep = "~" + FormatAU(*c.SeparationAU)
			}
			fmt.Fprintf(w, "  %-3s %-12s %s\n", c.Label, c.SpectralType, sep)
		}
		if d.Binary.Note != "" {
			fmt.Fprintf(w, "  %s\n", d.Binary.Note)
		}
	} else {
		fmt.Fprintf(w, "%-14s single\n", "System")
	}

	if len(d.Claimants) > 0 {
		fmt.Fprintf(w, "%-14s %s\n", "Claimed by", strings.Join(d.Claimants, ", "))
	}
}

func describeSpectral(raw string, st stellar.SpectralType) string {
	if raw == "" {
		return "unknown"
	}
	if !st.Valid {
		return raw + " (unparsed)"
	}
	var kind string
	switch {
	case st.IsGiant():
		kind = "giant"
	case st.IsDwarf():
		kind = "dwarf"
	}
	if kind == "" {
		return raw
	}
	return fmt.Sprintf("%s (%s %s)", raw, st.Class, kind)
}
