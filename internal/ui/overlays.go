package ui

import "strings"

// Overlays selects which map layers are drawn. It is a plain value owned by
// whoever renders, so independent views never share toggles.
type Overlays struct {
	OctantGrid  bool // region square, axes and direction labels
	Boundaries  bool // territory wireframes
	Connections bool // centroid-to-member lines
	Zones       bool // habitable zone readout in the focus panel
}

// DefaultOverlays shows the grid and territory boundaries.
func DefaultOverlays() Overlays {
	return Overlays{OctantGrid: true, Boundaries: true, Zones: true}
}

// Toggle flips the layer bound to key and reports whether key was one.
func (o Overlays) Toggle(key string) (Overlays, bool) {
	switch key {
	case "g":
		o.OctantGrid = !o.OctantGrid
	case "b":
		o.Boundaries = !o.Boundaries
	case "n":
		o.Connections = !o.Connections
	case "h":
		o.Zones = !o.Zones
	default:
		return o, false
	}
	return o, true
}

// String lists the active layers.
func (o Overlays) String() string {
	var on []string
	if o.OctantGrid {
		on = append(on, "grid")
	}
	if o.Boundaries {
		on = append(on, "bounds")
	}
	if o.Connections {
		on = append(on, "links")
	}
	if o.Zones {
		on = append(on, "hz")
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ",")
}
