package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/octant"
	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/stellar"
)

const (
	// Rotation animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond
	yawStep       = 15.0

	// Glyphs
	glyphSol     = '☉'
	glyphStar    = '•'
	glyphMulti   = '✶'
	glyphFocused = '◆'
	glyphGrid    = '·'
	glyphWire    = '∙'
	glyphLink    = '⋅'

	// Colors
	colorGrid      = "238"
	colorAxisLabel = "60"
	colorLabel     = "249"
	colorFocus     = "229" // bright gold
	colorSol       = "220"
)

// faintGlyphs may be overwritten by labels.
var faintGlyphs = map[rune]bool{glyphGrid: true, glyphWire: true, glyphLink: true}

// Territory colors, assigned by position in the snapshot.
var territoryPalette = []lipgloss.Color{
	"#7B2CBF", "#3B82F6", "#D946EF", "#14B8A6", "#F59E0B", "#EC4899", "#84CC16",
}

// LabelMode controls how star labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the focused star
	LabelAll                      // All stars and territories
)

// String returns the label mode name.
func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

// defaultZoom is the index of 1.0 in zoomLevels.
const defaultZoom = 3

// starMeta caches per-star render attributes derived on data updates.
type starMeta struct {
	color lipgloss.Color
	multi bool
}

// MapModel renders a top-down view of the catalog in galactic Cartesian
// coordinates: +X coreward to the right, +Y spinward up, Sol at the origin.
type MapModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	stars    []catalog.Point
	meta     []starMeta

	// View state
	focusIdx   int    // Index in stars (-1 = Sol)
	highlight  string // Highlighted territory name
	zoomLevel  int
	panX       float64 // Pan offset in display units
	panY       float64
	scaleMode  astro.ScaleMode
	labelMode  LabelMode
	overlays   Overlays
	userPanned bool // True if user has manually panned (disables auto-center on zoom)

	// Rotation about the driftward axis, degrees
	yaw       float64
	animating bool
	animFrom  float64
	animTo    float64
	animStart time.Time
}

// NewMapModel creates a new map view model.
func NewMapModel() MapModel {
	return MapModel{
		focusIdx:  -1, // Start focused on Sol
		zoomLevel: defaultZoom,
		scaleMode: astro.ScaleLinear,
		labelMode: LabelFocused,
		overlays:  DefaultOverlays(),
	}
}

// scale returns the current zoom scale.
func (m MapModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// SetSize updates the viewport size.
func (m MapModel) SetSize(width, height int) MapModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot, keeping focus on the
// same star when it still exists.
func (m MapModel) UpdateData(snapshot state.Snapshot) MapModel {
	var focused string
	if m.focusIdx >= 0 && m.focusIdx < len(m.stars) {
		focused = m.stars[m.focusIdx].Name
	}

	m.snapshot = snapshot
	m.stars = nil
	if snapshot.Catalog != nil {
		m.stars = snapshot.Catalog.Points
	}
	m.meta = make([]starMeta, len(m.stars))
	for i, p := range m.stars {
		m.meta[i] = metaFor(p)
	}

	m.focusIdx = -1
	for i, p := range m.stars {
		if p.Name == focused {
			m.focusIdx = i
			break
		}
	}
	return m
}

func metaFor(p catalog.Point) starMeta {
	desc, err := stellar.Resolve(p.Spectral, p.DistancePc)
	if err != nil {
		return starMeta{color: "250"}
	}
	return starMeta{
		color: spectralColor(desc.Components[0].Parsed),
		multi: desc.IsBinary,
	}
}

// spectralColor approximates the perceived color of a spectral class.
func spectralColor(st stellar.SpectralType) lipgloss.Color {
	switch st.Letter() {
	case 'O', 'B':
		return "#9BB0FF"
	case 'A':
		return "#CAD7FF"
	case 'F':
		return "#F8F7FF"
	case 'G':
		return "#FFF4A8"
	case 'K':
		return "#FFD2A1"
	case 'M':
		return "#FF9C6C"
	case 'L', 'T', 'Y':
		return "#B5563D"
	case 'D':
		return "#E0E0FF"
	default:
		return "250"
	}
}

// mapAnimMsg is sent during a rotation animation.
type mapAnimMsg time.Time

func mapAnimTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return mapAnimMsg(t)
	})
}

// Update handles input messages.
func (m MapModel) Update(msg tea.Msg) (MapModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if ov, ok := m.overlays.Toggle(key); ok {
			m.overlays = ov
			return m, nil
		}

		switch key {
		// Focus navigation
		case "j", "[":
			m.focusPrev()
		case "k", "]":
			m.focusNext()

		// Viewport panning
		case "up":
			m.panY -= m.panStep()
			m.userPanned = true
		case "down":
			m.panY += m.panStep()
			m.userPanned = true
		case "left":
			m.panX -= m.panStep()
			m.userPanned = true
		case "right":
			m.panX += m.panStep()
			m.userPanned = true
		case "c":
			m.panX, m.panY = 0, 0 // Center on Sol
			m.userPanned = false
		case "f":
			m.centerOnFocused()
			m.userPanned = false

		// Zoom
		case "+", "=":
			if m.zoomLevel < len(zoomLevels)-1 {
				m.zoomLevel++
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "-":
			if m.zoomLevel > 0 {
				m.zoomLevel--
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "0":
			m.zoomLevel = defaultZoom
			if !m.userPanned {
				m.centerOnFocused()
			}

		// Rotation
		case "<", ",":
			return m.rotate(-yawStep)
		case ">", ".":
			return m.rotate(yawStep)

		case "z":
			m.scaleMode = (m.scaleMode + 1) % 2
			m.panX, m.panY = 0, 0
			if !m.userPanned {
				m.centerOnFocused()
			}
		case "l":
			m.labelMode = (m.labelMode + 1) % 3

		// Reset everything except data
		case "r":
			m.panX, m.panY = 0, 0
			m.zoomLevel = defaultZoom
			m.yaw = 0
			m.animating = false
			m.userPanned = false
			m.highlight = ""
		}

	case mapAnimMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}
	return m, nil
}

// extent returns the display radius of the octant region before zoom.
func (m MapModel) extent() float64 {
	r := m.snapshot.Layout.Radius()
	if r <= 0 {
		r = octant.DefaultRadius
	}
	if m.scaleMode == astro.ScaleLogR {
		return math.Log10(r + 1)
	}
	return r
}

func (m MapModel) panStep() float64 {
	return 0.1 * m.extent() / m.scale()
}

func (m *MapModel) focusNext() {
	if len(m.stars) == 0 {
		return
	}
	m.focusIdx++
	if m.focusIdx >= len(m.stars) {
		m.focusIdx = -1 // Wrap to Sol
	}
	m.centerOnFocused()
	m.userPanned = false
}

func (m *MapModel) focusPrev() {
	if len(m.stars) == 0 {
		return
	}
	m.focusIdx--
	if m.focusIdx < -1 {
		m.focusIdx = len(m.stars) - 1
	}
	m.centerOnFocused()
	m.userPanned = false
}

// FocusStar focuses the named star and reports whether it was found.
func (m *MapModel) FocusStar(name string) bool {
	for i, p := range m.stars {
		if strings.EqualFold(p.Name, name) {
			m.focusIdx = i
			m.centerOnFocused()
			m.userPanned = false
			return true
		}
	}
	return false
}

// HighlightTerritory highlights the named territory and centers on it.
func (m *MapModel) HighlightTerritory(name string) bool {
	for _, t := range m.snapshot.Territories {
		if strings.EqualFold(t.Name, name) {
			m.highlight = t.Name
			m.centerOn(t.Centroid)
			m.userPanned = true
			return true
		}
	}
	return false
}

// FocusedStar returns the focused star, or nil for Sol.
func (m MapModel) FocusedStar() *catalog.Point {
	if m.focusIdx >= 0 && m.focusIdx < len(m.stars) {
		return &m.stars[m.focusIdx]
	}
	return nil
}

// Overlays returns the active layers.
func (m MapModel) Overlays() Overlays {
	return m.overlays
}

// SetOverlays replaces the active layers.
func (m MapModel) SetOverlays(ov Overlays) MapModel {
	m.overlays = ov
	return m
}

func (m MapModel) projection() astro.ProjectionConfig {
	cfg := astro.DefaultProjectionConfig()
	cfg.Mode = m.scaleMode
	cfg.YawDeg = m.yaw
	return cfg
}

// centerOnFocused pans the view to center on the focused star.
func (m *MapModel) centerOnFocused() {
	if p := m.FocusedStar(); p != nil {
		m.centerOn(p.Position)
		return
	}
	m.panX, m.panY = 0, 0
}

func (m *MapModel) centerOn(v astro.Vec3) {
	proj := astro.ProjectTopDown(v, m.projection())
	m.panX = -proj.X
	m.panY = -proj.Y
}

func (m MapModel) rotate(delta float64) (MapModel, tea.Cmd) {
	target := m.yaw + delta
	if m.animating {
		target = m.animTo + delta
	}
	m.animating = true
	m.animFrom = m.yaw
	m.animTo = target
	m.animStart = time.Now()
	return m, mapAnimTick()
}

func (m MapModel) updateAnimation() (MapModel, tea.Cmd) {
	elapsed := time.Since(m.animStart)
	t := float64(elapsed) / float64(animDuration)

	if t >= 1 {
		m.animating = false
		m.yaw = normalizeAngle(m.animTo)
	} else {
		// Smoothstep easing
		t = t * t * (3 - 2*t)
		m.yaw = lerpAngle(m.animFrom, m.animTo, t)
	}

	if !m.userPanned {
		m.centerOnFocused()
	}
	if !m.animating {
		return m, nil
	}
	return m, mapAnimTick()
}

// View renders the map view.
func (m MapModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for map view"
	}
	c := m.buildCanvas(m.overlays)
	return lipgloss.JoinVertical(lipgloss.Left, c.String(), m.renderHUD(m.overlays))
}

// screen maps projected points onto canvas cells.
type screen struct {
	originX, originY int
	ds               float64
	cfg              astro.ProjectionConfig
}

func (s screen) point(v astro.Vec3) (int, int) {
	p := astro.ProjectTopDown(v, s.cfg)
	x := s.originX + int(math.Round(p.X*s.ds))
	y := s.originY - int(math.Round(p.Y*s.ds*0.5)) // Aspect ratio correction
	return x, y
}

func (m MapModel) screenFor(c *canvas) screen {
	cx, cy := c.w/2, c.h/2
	maxDisplayR := float64(min(cx, cy*2)) * 0.9
	ds := maxDisplayR / m.extent() * m.scale()
	return screen{
		originX: cx + int(math.Round(m.panX*ds)),
		originY: cy - int(math.Round(m.panY*ds*0.5)),
		ds:      ds,
		cfg:     m.projection(),
	}
}

// segment draws a 3D segment. Log scaling bends straight lines, so those
// are sampled.
func (m MapModel) segment(c *canvas, s screen, a, b astro.Vec3, glyph rune, color lipgloss.Color) {
	steps := 1
	if m.scaleMode == astro.ScaleLogR {
		steps = 12
	}
	px, py := s.point(a)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := s.point(a.Add(b.Sub(a).Scale(t)))
		c.line(px, py, x, y, glyph, color)
		px, py = x, y
	}
}

// mapLabel is text placed after all geometry is drawn.
type mapLabel struct {
	x, y  int
	text  string
	color lipgloss.Color
}

// buildCanvas renders the map layers selected by ov.
func (m MapModel) buildCanvas(ov Overlays) *canvas {
	// Reserve space for the HUD
	h := m.height - 5
	if h < 5 {
		h = 5
	}
	c := newCanvas(m.width, h)
	s := m.screenFor(c)

	var labels []mapLabel

	if ov.OctantGrid {
		labels = append(labels, m.drawGrid(c, s)...)
	}

	for i, t := range m.snapshot.Territories {
		color := territoryPalette[i%len(territoryPalette)]
		if t.Name == m.highlight {
			color = colorFocus
		}
		if ov.Boundaries {
			for _, seg := range t.Wireframe.Segments() {
				m.segment(c, s, seg.From, seg.To, glyphWire, color)
			}
		}
		if ov.Connections {
			for _, seg := range t.Connections {
				m.segment(c, s, seg.From, seg.To, glyphLink, color)
			}
		}
		if (ov.Boundaries || ov.Connections) && (m.labelMode == LabelAll || t.Name == m.highlight) {
			x, y := s.point(t.Centroid)
			labels = append(labels, mapLabel{x: x - len(t.Name)/2, y: y + 1, text: t.Name, color: color})
		}
	}

	// Stars overwrite geometry
	for i, p := range m.stars {
		x, y := s.point(p.Position)
		glyph := glyphStar
		if m.meta[i].multi {
			glyph = glyphMulti
		}
		c.set(x, y, glyph, m.meta[i].color)
		if m.labelMode == LabelAll && i != m.focusIdx {
			labels = append(labels, mapLabel{x: x + 2, y: y, text: p.Name, color: colorLabel})
		}
	}

	// Sol at the origin
	ox, oy := s.point(astro.Vec3{})
	c.set(ox, oy, glyphSol, colorSol)
	if m.labelMode == LabelAll || (m.labelMode == LabelFocused && m.focusIdx < 0) {
		labels = append(labels, mapLabel{x: ox + 2, y: oy, text: "Sol", color: colorSol})
	}

	// Focused star last so it is always visible
	if p := m.FocusedStar(); p != nil {
		x, y := s.point(p.Position)
		c.set(x, y, glyphFocused, colorFocus)
		if m.labelMode != LabelNone {
			labels = append([]mapLabel{{x: x + 2, y: y, text: "◄ " + p.Name, color: colorFocus}}, labels...)
		}
	}

	for _, l := range labels {
		c.text(l.x, l.y, l.text, l.color, faintGlyphs)
	}
	return c
}

// drawGrid draws the octant region square, the X and Y axes and returns the
// direction and quadrant labels.
func (m MapModel) drawGrid(c *canvas, s screen) []mapLabel {
	r := m.snapshot.Layout.Radius()
	if r <= 0 {
		r = octant.DefaultRadius
	}

	corners := []astro.Vec3{{X: r, Y: r}, {X: -r, Y: r}, {X: -r, Y: -r}, {X: r, Y: -r}}
	for i := range corners {
		m.segment(c, s, corners[i], corners[(i+1)%4], glyphGrid, colorGrid)
	}
	m.segment(c, s, astro.Vec3{X: -r}, astro.Vec3{X: r}, glyphGrid, colorGrid)
	m.segment(c, s, astro.Vec3{Y: -r}, astro.Vec3{Y: r}, glyphGrid, colorGrid)

	var labels []mapLabel
	add := func(v astro.Vec3, text string) {
		x, y := s.point(v)
		labels = append(labels, mapLabel{x: x - len(text)/2, y: y, text: text, color: colorAxisLabel})
	}

	edge := r * 1.06
	add(astro.Vec3{X: edge}, "Coreward")
	add(astro.Vec3{X: -edge}, "Rimward")
	add(astro.Vec3{Y: edge}, "Spinward")
	add(astro.Vec3{Y: -edge}, "Anti-Spinward")

	// Each quadrant stacks a driftward and an anti-driftward octant
	for _, q := range [][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}} {
		up, _ := octant.ClassifyID(astro.Vec3{X: q[0], Y: q[1], Z: 1})
		down, _ := octant.ClassifyID(astro.Vec3{X: q[0], Y: q[1], Z: -1})
		add(astro.Vec3{X: q[0] * r * 0.8, Y: q[1] * r * 0.8}, fmt.Sprintf("%d/%d", up, down))
	}
	return labels
}

func (m MapModel) renderHUD(ov Overlays) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	p := m.FocusedStar()
	if p == nil {
		b.WriteString(headerStyle.Render("☉ Sol"))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(origin of galactic Cartesian frame)"))
		b.WriteString("\n\n")
	} else {
		var claimants []string
		if m.snapshot.Catalog != nil {
			claimants = m.snapshot.Catalog.Claimants(p.Name)
		}
		d, err := state.Describe(*p, m.snapshot.Layout, claimants)

		b.WriteString(headerStyle.Render("◆ " + p.Name))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Dist: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f pc", p.DistancePc)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Type: "))
		b.WriteString(valueStyle.Render(p.Spectral))
		if err == nil {
			b.WriteString("  ")
			b.WriteString(labelStyle.Render("Octant: "))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%d %s", d.Octant.ID, d.Octant.Label)))
		}
		b.WriteString("\n")

		if err != nil {
			b.WriteString(dimStyle.Render(err.Error()))
		} else {
			if ov.Zones {
				b.WriteString(labelStyle.Render("HZ: "))
				b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f–%.2f AU", d.Zone.Inner, d.Zone.Outer)))
				b.WriteString("  ")
			}
			b.WriteString(labelStyle.Render("System: "))
			b.WriteString(valueStyle.Render(systemSummary(d.Binary)))
			if len(d.Claimants) > 0 {
				b.WriteString("  ")
				b.WriteString(labelStyle.Render("Claimed: "))
				b.WriteString(valueStyle.Render(strings.Join(d.Claimants, ", ")))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("Scale:"))
	b.WriteString(valueStyle.Render(m.scaleMode.String()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", m.scale())))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Yaw:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f°", normalizeAngle(m.yaw))))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(m.labelMode.String()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Layers:"))
	b.WriteString(valueStyle.Render(ov.String()))

	return b.String()
}

// systemSummary describes a binary descriptor in one short phrase.
func systemSummary(d stellar.BinaryDescriptor) string {
	if !d.IsBinary {
		return "single"
	}
	s := fmt.Sprintf("%d components", len(d.Components))
	if d.SeparationAU != nil {
		s += fmt.Sprintf(", ~%.1f AU (est.)", *d.SeparationAU)
	}
	return s
}

// normalizeAngle wraps to [0, 360).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	diff := math.Mod(b-a+540, 360) - 180
	return lerp(a, a+diff, t)
}

// lerp linear interpolation
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
