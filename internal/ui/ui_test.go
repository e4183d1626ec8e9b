package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/state"
)

func testSnapshot(t *testing.T) state.Snapshot {
	t.Helper()
	mgr, err := state.NewManager(state.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.Default(1.0)
	if err != nil {
		t.Fatal(err)
	}
	if err := mgr.Update(cat); err != nil {
		t.Fatal(err)
	}
	return mgr.Snapshot()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCanvas_Line(t *testing.T) {
	c := newCanvas(10, 5)
	c.line(0, 0, 9, 0, '-', "")
	for x := 0; x < 10; x++ {
		if c.at(x, 0) != '-' {
			t.Fatalf("cell (%d,0) = %q, want '-'", x, c.at(x, 0))
		}
	}

	// Diagonal endpoints are both plotted
	c.line(0, 4, 4, 0, '/', "")
	if c.at(0, 4) != '/' || c.at(4, 0) != '-' {
		t.Error("line should not overwrite occupied cells")
	}
	if c.at(1, 3) != '/' {
		t.Errorf("diagonal midpoint = %q", c.at(1, 3))
	}
}

func TestCanvas_LineOffscreen(t *testing.T) {
	c := newCanvas(10, 5)
	c.line(-100, -3, -5, 20, '#', "")
	c.line(0, 0, 1_000_000, 2, '#', "")
	if strings.ContainsRune(c.plain(), '#') {
		t.Error("offscreen or oversized segments should be skipped")
	}
}

func TestCanvas_TextOverwritesFaint(t *testing.T) {
	c := newCanvas(10, 1)
	c.set(1, 0, glyphGrid, colorGrid)
	c.set(2, 0, glyphStar, "")
	c.text(0, 0, "abc", colorLabel, faintGlyphs)
	if got := c.plain(); got != "ab•       " {
		t.Errorf("plain() = %q", got)
	}
}

func TestCanvas_String(t *testing.T) {
	c := newCanvas(3, 2)
	c.set(0, 0, 'x', "")
	if got := c.String(); got != "x  \n   " {
		t.Errorf("unstyled String() = %q", got)
	}
}

func TestOverlays_Toggle(t *testing.T) {
	ov := DefaultOverlays()
	if ov.String() != "grid,bounds,hz" {
		t.Errorf("default overlays = %q", ov.String())
	}

	ov, ok := ov.Toggle("n")
	if !ok || !ov.Connections {
		t.Error("n should enable connections")
	}
	ov, _ = ov.Toggle("g")
	ov, _ = ov.Toggle("b")
	ov, _ = ov.Toggle("h")
	if ov.String() != "links" {
		t.Errorf("overlays = %q, want links", ov.String())
	}
	ov, _ = ov.Toggle("n")
	if ov.String() != "none" {
		t.Errorf("overlays = %q, want none", ov.String())
	}

	if _, ok := ov.Toggle("x"); ok {
		t.Error("x is not an overlay key")
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{180, 180},
		{360, 0},
		{-90, 270},
		{370, 10},
		{-370, 350},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.input); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLerpAngle_ShortestPath(t *testing.T) {
	tests := []struct {
		from, to, t, expected float64
	}{
		{0, 90, 0.5, 45},
		{350, 10, 0.5, 0},
		{10, 350, 0.5, 0},
		{10, 350, 1.0, 350},
	}
	for _, tt := range tests {
		got := normalizeAngle(lerpAngle(tt.from, tt.to, tt.t))
		diff := math.Abs(got - tt.expected)
		if diff > 180 {
			diff = 360 - diff
		}
		if diff > 1e-9 {
			t.Errorf("lerpAngle(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.t, got, tt.expected)
		}
	}
}

func loadedMap(t *testing.T) MapModel {
	t.Helper()
	return NewMapModel().SetSize(100, 40).UpdateData(testSnapshot(t))
}

func TestMapModel_FocusCycle(t *testing.T) {
	m := loadedMap(t)
	if m.FocusedStar() != nil {
		t.Fatal("initial focus should be Sol")
	}

	m, _ = m.Update(key("k"))
	first := m.FocusedStar()
	if first == nil || first.Name != m.stars[0].Name {
		t.Fatalf("k should focus the first star, got %v", first)
	}

	m, _ = m.Update(key("j"))
	if m.FocusedStar() != nil {
		t.Error("j from the first star should return to Sol")
	}
	m, _ = m.Update(key("j"))
	if p := m.FocusedStar(); p == nil || p.Name != m.stars[len(m.stars)-1].Name {
		t.Error("j from Sol should wrap to the last star")
	}
}

func TestMapModel_FocusStarCenters(t *testing.T) {
	m := loadedMap(t)
	if !m.FocusStar("vega") {
		t.Fatal("FocusStar(vega) = false")
	}
	p := m.FocusedStar()
	proj := astro.ProjectTopDown(p.Position, m.projection())
	if math.Abs(m.panX+proj.X) > 1e-9 || math.Abs(m.panY+proj.Y) > 1e-9 {
		t.Errorf("pan = (%v,%v), want centered on (%v,%v)", m.panX, m.panY, proj.X, proj.Y)
	}
	if m.FocusStar("No Such Star") {
		t.Error("unknown star should not be focused")
	}
}

func TestMapModel_FocusSurvivesUpdate(t *testing.T) {
	m := loadedMap(t)
	m.FocusStar("Altair")
	m = m.UpdateData(testSnapshot(t))
	if p := m.FocusedStar(); p == nil || p.Name != "Altair" {
		t.Errorf("focus after update = %v, want Altair", p)
	}
}

func TestMapModel_ZoomAndPan(t *testing.T) {
	m := loadedMap(t)

	m, _ = m.Update(key("+"))
	if m.scale() != 1.5 {
		t.Errorf("scale after + = %v, want 1.5", m.scale())
	}
	for i := 0; i < 20; i++ {
		m, _ = m.Update(key("+"))
	}
	if m.scale() != zoomLevels[len(zoomLevels)-1] {
		t.Error("zoom should clamp at the highest level")
	}
	m, _ = m.Update(key("0"))
	if m.scale() != 1.0 {
		t.Errorf("scale after 0 = %v, want 1", m.scale())
	}

	step := m.panStep()
	m, _ = m.Update(key("right"))
	m, _ = m.Update(key("up"))
	if m.panX != step || m.panY != -step || !m.userPanned {
		t.Errorf("pan = (%v,%v), want (%v,%v)", m.panX, m.panY, step, -step)
	}
	m, _ = m.Update(key("c"))
	if m.panX != 0 || m.panY != 0 || m.userPanned {
		t.Error("c should recenter on Sol")
	}
}

func TestMapModel_ScaleModeToggle(t *testing.T) {
	m := loadedMap(t)
	linear := m.extent()
	m, _ = m.Update(key("z"))
	if m.scaleMode != astro.ScaleLogR {
		t.Fatal("z should switch to log scale")
	}
	if m.extent() >= linear {
		t.Errorf("log extent %v should be smaller than linear %v", m.extent(), linear)
	}
}

func TestMapModel_RotateAnimation(t *testing.T) {
	m := loadedMap(t)

	m, cmd := m.Update(key(">"))
	if cmd == nil || !m.animating {
		t.Fatal("rotation should start an animation")
	}
	if m.animTo != yawStep {
		t.Errorf("animTo = %v, want %v", m.animTo, yawStep)
	}

	// Pretend the animation started long ago so the next frame completes it
	m.animStart = time.Now().Add(-2 * animDuration)
	m, cmd = m.Update(mapAnimMsg(time.Now()))
	if m.animating || cmd != nil {
		t.Error("animation should finish after its duration")
	}
	if m.yaw != yawStep {
		t.Errorf("yaw = %v, want %v", m.yaw, yawStep)
	}

	m, _ = m.Update(key("r"))
	if m.yaw != 0 {
		t.Error("r should reset yaw")
	}
}

func TestMapModel_OverlayKeys(t *testing.T) {
	m := loadedMap(t)
	m, _ = m.Update(key("g"))
	if m.Overlays().OctantGrid {
		t.Error("g should hide the grid")
	}
	m, _ = m.Update(key("n"))
	if !m.Overlays().Connections {
		t.Error("n should show connections")
	}

	// Overlay keys never fall through to navigation
	before := m.labelMode
	m, _ = m.Update(key("h"))
	if m.labelMode != before || m.Overlays().Zones {
		t.Error("h should only toggle the zone readout")
	}
}

func TestMapModel_BuildCanvasLayers(t *testing.T) {
	m := loadedMap(t)

	gridOnly := m.buildCanvas(Overlays{OctantGrid: true}).plain()
	if !strings.Contains(gridOnly, "Coreward") || !strings.Contains(gridOnly, "Spinward") {
		t.Error("grid layer should label the axes")
	}
	if !strings.ContainsRune(gridOnly, glyphSol) {
		t.Error("Sol should always be drawn")
	}
	if strings.ContainsRune(gridOnly, glyphWire) {
		t.Error("boundaries drawn without being selected")
	}

	bare := m.buildCanvas(Overlays{}).plain()
	if strings.Contains(bare, "Coreward") {
		t.Error("grid labels drawn without the grid layer")
	}

	withBounds := m.buildCanvas(Overlays{Boundaries: true}).plain()
	if !strings.ContainsRune(withBounds, glyphWire) {
		t.Error("boundary layer should draw wireframes")
	}
}

func TestMapModel_OverlaysIndependent(t *testing.T) {
	a := loadedMap(t)
	b := a.SetOverlays(Overlays{Connections: true})
	if a.Overlays() == b.Overlays() {
		t.Error("SetOverlays should not affect the original model")
	}
}

func TestMapModel_HighlightTerritory(t *testing.T) {
	m := loadedMap(t)
	if !m.HighlightTerritory("centauri accord") {
		t.Fatal("HighlightTerritory should match case-insensitively")
	}
	if m.highlight != "Centauri Accord" {
		t.Errorf("highlight = %q", m.highlight)
	}

	m.zoomLevel = len(zoomLevels) - 1
	c := m.buildCanvas(Overlays{Boundaries: true})
	found := false
	for y := range c.cells {
		for x := range c.cells[y] {
			if c.cells[y][x] == glyphWire && c.colors[y][x] == colorFocus {
				found = true
			}
		}
	}
	if !found {
		t.Error("highlighted wireframe should use the focus color")
	}
}

func TestMapModel_View(t *testing.T) {
	small := NewMapModel().SetSize(20, 5)
	if small.View() != "Terminal too small for map view" {
		t.Error("expected too-small message")
	}

	m := loadedMap(t)
	m.FocusStar("Alpha Centauri")
	hud := m.renderHUD(DefaultOverlays())
	for _, want := range []string{"Alpha Centauri", "HZ:", "2 components", "Layers:"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
	if strings.Contains(m.renderHUD(Overlays{}), "HZ:") {
		t.Error("HZ readout shown with the zone layer off")
	}
}

func TestCatalogModel_Navigation(t *testing.T) {
	m := NewCatalogModel().SetSize(140, 40).UpdateData(testSnapshot(t))
	first := m.Selected()
	if first == nil {
		t.Fatal("no selection")
	}

	m, _ = m.Update(key("up"))
	if m.cursor != 0 {
		t.Error("cursor should not move above the first row")
	}
	m, _ = m.Update(key("down"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	m, _ = m.Update(key("end"))
	if m.cursor != len(m.points())-1 {
		t.Error("end should select the last row")
	}

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}
	msg, ok := cmd().(OpenStarMsg)
	if !ok || msg.Name != m.Selected().Name {
		t.Errorf("enter produced %#v", cmd())
	}
}

func TestCatalogModel_View(t *testing.T) {
	if out := NewCatalogModel().View(); !strings.Contains(out, "Waiting for catalog") {
		t.Errorf("empty view = %q", out)
	}

	m := NewCatalogModel().SetSize(140, 60).UpdateData(testSnapshot(t))
	out := m.View()
	if !strings.Contains(out, "Catalog") || !strings.Contains(out, m.Selected().Name) {
		t.Error("view should list the catalog and the selected star")
	}
}

func TestTerritoryModel(t *testing.T) {
	snap := testSnapshot(t)
	m := NewTerritoryModel().SetSize(100, 40).UpdateData(snap)

	out := m.View()
	for _, want := range []string{"Territories · 5", "Eridani Compact", "Recent events", "formed"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = m.Update(key("down"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}
	if msg, ok := cmd().(OpenTerritoryMsg); !ok || msg.Name != snap.Territories[1].Name {
		t.Errorf("enter produced %#v", cmd())
	}
}

func TestFormatEvent(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := formatEvent(state.Event{
		Type:      state.EventMembershipChanged,
		Timestamp: ts,
		Territory: "Cygnus Reach",
		Added:     []string{"Vega"},
		Removed:   []string{"Altair"},
	})
	if got != "03:04:05 Cygnus Reach +Vega -Altair" {
		t.Errorf("formatEvent = %q", got)
	}
}

func TestModel_ViewSwitching(t *testing.T) {
	m := New(nil)
	if m.View() != "Initializing..." {
		t.Error("expected initializing view before sizing")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = next.(Model)

	next, _ = m.Update(key("2"))
	m = next.(Model)
	if m.viewMode != ViewMap {
		t.Errorf("viewMode = %v, want map", m.viewMode)
	}
	next, _ = m.Update(key("tab"))
	m = next.(Model)
	if m.viewMode != ViewTerritories {
		t.Errorf("viewMode = %v, want territories", m.viewMode)
	}
	next, _ = m.Update(key("tab"))
	m = next.(Model)
	if m.viewMode != ViewCatalog {
		t.Error("tab should wrap to the catalog view")
	}
}

func TestModel_OpenMessages(t *testing.T) {
	next, _ := New(nil).Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	next, _ = next.Update(DataUpdateMsg{Snapshot: testSnapshot(t)})

	next, _ = next.Update(OpenStarMsg{Name: "Sirius"})
	m := next.(Model)
	if m.viewMode != ViewMap {
		t.Error("OpenStarMsg should switch to the map")
	}
	if p := m.starMap.FocusedStar(); p == nil || p.Name != "Sirius" {
		t.Errorf("focused = %v, want Sirius", p)
	}

	next, _ = m.Update(OpenTerritoryMsg{Name: "Nowhere"})
	m = next.(Model)
	if !strings.Contains(m.statusMsg, "Unknown territory") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}

	if !strings.Contains(m.View(), "Stellar cartography") {
		t.Error("frame should carry the title")
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 0, 10, 1); got != "#3B82F6" {
		t.Errorf("gradientColor start = %s", got)
	}
	if got := gradientColor(0, 1, 10, 2); got != "#2C61B8" {
		t.Errorf("gradientColor dimmed = %s", got)
	}
}
