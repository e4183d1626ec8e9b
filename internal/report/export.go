// Package report renders headless views of the catalog state: a JSON
// snapshot export, a territory table and a per-star card.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/state"
)

// SnapshotExport is the JSON-serializable representation of catalog state.
type SnapshotExport struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	OctantRadius float64           `json:"octant_radius"`
	Octants      []OctantExport    `json:"octants"`
	Stars        []StarExport      `json:"stars"`
	Territories  []TerritoryExport `json:"territories"`
	Events       []state.Event     `json:"events,omitempty"`
}

// OctantExport is one octant with its star count.
type OctantExport struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Stars int    `json:"stars"`
}

// StarExport is a flattened star detail.
type StarExport struct {
	Name         string     `json:"name"`
	Position     astro.Vec3 `json:"position"`
	DistancePc   float64    `json:"distance_pc"`
	Spectral     string     `json:"spectral"`
	Luminosity   float64    `json:"luminosity"`
	Octant       int        `json:"octant"`
	InnerHZ      float64    `json:"hz_inner_au"`
	OuterHZ      float64    `json:"hz_outer_au"`
	IsBinary     bool       `json:"is_binary"`
	Components   int        `json:"components"`
	SeparationAU *float64   `json:"separation_au,omitempty"`
	Claimants    []string   `json:"claimants,omitempty"`
}

// TerritoryExport is a JSON-friendly territory. Geometry is included only
// when requested.
type TerritoryExport struct {
	Name            string      `json:"name"`
	Members         []string    `json:"members"`
	Compact         bool        `json:"compact"`
	Centroid        astro.Vec3  `json:"centroid"`
	CentroidOctant  int         `json:"centroid_octant"`
	BoundingRadius  float64     `json:"bounding_radius"`
	ScaleMultiplier float64     `json:"scale_multiplier"`
	BoundaryRadius  float64     `json:"boundary_radius"`
	Wireframe       [][]float64 `json:"wireframe,omitempty"`
	Connections     [][]float64 `json:"connections,omitempty"`
}

// ExportSnapshot converts a state snapshot to an exportable format.
func ExportSnapshot(snap state.Snapshot, generatedAt time.Time, geometry bool) (*SnapshotExport, error) {
	export := &SnapshotExport{
		GeneratedAt:  generatedAt,
		UpdatedAt:    snap.LastUpdate,
		OctantRadius: snap.Layout.Radius(),
		Events:       snap.Events,
	}

	for _, o := range snap.Layout.All() {
		export.Octants = append(export.Octants, OctantExport{
			ID:    o.ID,
			Label: o.Label,
			Stars: len(snap.ByOctant[o.ID]),
		})
	}

	if snap.Catalog != nil {
		for _, p := range snap.Catalog.Points {
			d, err := state.Describe(p, snap.Layout, snap.Catalog.Claimants(p.Name))
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			export.Stars = append(export.Stars, StarExport{
				Name:         d.Name,
				Position:     d.Position,
				DistancePc:   d.DistancePc,
				Spectral:     d.Spectral,
				Luminosity:   d.Luminosity,
				Octant:       d.Octant.ID,
				InnerHZ:      d.Zone.Inner,
				OuterHZ:      d.Zone.Outer,
				IsBinary:     d.Binary.IsBinary,
				Components:   len(d.Binary.Components),
				SeparationAU: d.Binary.SeparationAU,
				Claimants:    d.Claimants,
			})
		}
	}

	for _, t := range snap.Territories {
		te := TerritoryExport{
			Name:            t.Name,
			Members:         t.MemberNames,
			Compact:         t.Compact,
			Centroid:        t.Centroid,
			CentroidOctant:  t.CentroidOctant,
			BoundingRadius:  t.BoundingRadius,
			ScaleMultiplier: t.ScaleMultiplier,
			BoundaryRadius:  t.BoundaryRadius,
		}
		if geometry {
			te.Wireframe = t.Lines()
			te.Connections = t.ConnectionLines()
		}
		export.Territories = append(export.Territories, te)
	}

	return export, nil
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// TerritoryRow represents one row in the territory table.
type TerritoryRow struct {
	Name     string
	Members  int
	Octant   int
	Centroid string
	Bounding string
	Scale    float64
	Boundary string
	Compact  bool
}

// GenerateTerritoryRows creates table rows from a snapshot.
func GenerateTerritoryRows(snap state.Snapshot) []TerritoryRow {
	var rows []TerritoryRow
	for _, t := range snap.Territories {
		rows = append(rows, TerritoryRow{
			Name:     t.Name,
			Members:  len(t.Members),
			Octant:   t.CentroidOctant,
			Centroid: FormatVec(t.Centroid),
			Bounding: FormatParsecs(t.BoundingRadius),
			Scale:    t.ScaleMultiplier,
			Boundary: FormatParsecs(t.BoundaryRadius),
			Compact:  t.Compact,
		})
	}
	return rows
}

// WriteTerritoryTable writes a text table to the given writer.
func WriteTerritoryTable(w io.Writer, snap state.Snapshot, timestamp time.Time) {
	rows := GenerateTerritoryRows(snap)

	fmt.Fprintf(w, "Territories @ %s\n", timestamp.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 92))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No territories")
		return
	}

	// Header
	fmt.Fprintf(w, "%-20s %-4s %-3s %-24s %-10s %-6s %-10s %-7s\n",
		"Territory", "Mbr", "Oct", "Centroid", "Bounding", "Scale", "Boundary", "Compact")
	fmt.Fprintln(w, strings.Repeat("─", 92))

	// Rows
	for _, r := range rows {
		compact := ""
		if r.Compact {
			compact = "yes"
		}
		fmt.Fprintf(w, "%-20s %4d %3d %-24s %-10s %6.3f %-10s %-7s\n",
			truncateStr(r.Name, 20),
			r.Members,
			r.Octant,
			r.Centroid,
			r.Bounding,
			r.Scale,
			r.Boundary,
			compact,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d territories\n", len(rows))
}

// FormatParsecs formats a distance in parsecs.
func FormatParsecs(pc float64) string {
	if pc >= 100 {
		return fmt.Sprintf("%.0f pc", pc)
	}
	return fmt.Sprintf("%.2f pc", pc)
}

// FormatAU formats a distance in astronomical units.
func FormatAU(au float64) string {
	if au >= 100 {
		return fmt.Sprintf("%.0f AU", au)
	}
	return fmt.Sprintf("%.2f AU", au)
}

// FormatVec formats a position in parsecs.
func FormatVec(v astro.Vec3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
