// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewCatalog ViewMode = iota
	ViewMap
	ViewTerritories
)

const viewCount = 3

// Msg types for Bubble Tea
type (
	// TickMsg triggers a state poll.
	TickMsg time.Time

	// DataUpdateMsg signals a new snapshot is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}
)

// headerLines is the height of the logo, tagline and tab row.
const headerLines = 6

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string

	catalog     CatalogModel
	starMap     MapModel
	territories TerritoryModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:       stateMgr,
		viewMode:    ViewCatalog,
		catalog:     NewCatalogModel(),
		starMap:     NewMapModel(),
		territories: NewTerritoryModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.pollCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1":
			m.viewMode = ViewCatalog
		case "2":
			m.viewMode = ViewMap
		case "3":
			m.viewMode = ViewTerritories
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - headerLines - 2
		m.catalog = m.catalog.SetSize(msg.Width, contentHeight)
		m.starMap = m.starMap.SetSize(msg.Width, contentHeight)
		m.territories = m.territories.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd(), m.pollCmd())

	case DataUpdateMsg:
		if !msg.Snapshot.LastUpdate.Equal(m.snapshot.LastUpdate) || m.snapshot.Catalog == nil {
			m = m.applySnapshot(msg.Snapshot)
		}

	case OpenStarMsg:
		m.viewMode = ViewMap
		if m.starMap.FocusStar(msg.Name) {
			m.statusMsg = "Focused " + msg.Name
		} else {
			m.statusMsg = "Unknown star: " + msg.Name
		}

	case OpenTerritoryMsg:
		m.viewMode = ViewMap
		if m.starMap.HighlightTerritory(msg.Name) {
			m.statusMsg = "Highlighted " + msg.Name
		} else {
			m.statusMsg = "Unknown territory: " + msg.Name
		}

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) applySnapshot(snap state.Snapshot) Model {
	m.snapshot = snap
	m.catalog = m.catalog.UpdateData(snap)
	m.starMap = m.starMap.UpdateData(snap)
	m.territories = m.territories.UpdateData(snap)
	return m
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewCatalog:
		m.catalog, cmd = m.catalog.Update(msg)
	case ViewMap:
		m.starMap, cmd = m.starMap.Update(msg)
	case ViewTerritories:
		m.territories, cmd = m.territories.Update(msg)
	}
	return cmd
}

// pollCmd reads the current snapshot from the state manager.
func (m Model) pollCmd() tea.Cmd {
	if m.state == nil {
		return nil
	}
	mgr := m.state
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewCatalog:
		content = m.catalog.View()
	case ViewMap:
		content = m.starMap.View()
	case ViewTerritories:
		content = m.territories.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n")

	title := "  ✶ LS-STARMAP ✶"
	runes := []rune(title)
	for col, r := range runes {
		color := gradientColor(col, 0, len(runes), 1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Stellar cartography · octants, territories, habitable zones | v%s", version.Version)))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient,
// running blue to purple to magenta to pink and dimming downward.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	switch {
	case xRatio < 0.33:
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	case xRatio < 0.66:
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	default:
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X",
		clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	return int(max(0, min(255, v)))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Catalog", "[2] Map", "[3] Territories"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.Catalog != nil:
		status = accentStyle.Render("●") + dimStyle.Render(fmt.Sprintf(" %d stars, %d territories (%s)",
			len(m.snapshot.Catalog.Points), len(m.snapshot.Territories),
			m.snapshot.ComputeDuration.Round(time.Microsecond)))
	default:
		status = accentStyle.Render("○") + dimStyle.Render(" Waiting for catalog...")
	}

	var help string
	switch m.viewMode {
	case ViewMap:
		help = "j/k: focus | +/-: zoom | arrows: pan | </>: rotate | z: scale | l: labels | g/b/n/h: layers"
	case ViewTerritories:
		help = "↑↓: select | enter: show on map | tab: switch view"
	default:
		help = "↑↓: navigate | enter: show on map | tab: switch view"
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}
