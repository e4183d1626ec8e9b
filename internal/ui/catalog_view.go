package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/report"
	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/stellar"
)

// Styles for the table views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// OpenStarMsg requests the map view focused on a star.
type OpenStarMsg struct {
	Name string
}

// CatalogModel lists catalog stars with a detail card for the selection.
type CatalogModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewCatalogModel creates a new catalog view model.
func NewCatalogModel() CatalogModel {
	return CatalogModel{}
}

// SetSize updates the viewport size.
func (m CatalogModel) SetSize(width, height int) CatalogModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m CatalogModel) UpdateData(snapshot state.Snapshot) CatalogModel {
	m.snapshot = snapshot
	if n := len(m.points()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

func (m CatalogModel) points() []catalog.Point {
	if m.snapshot.Catalog == nil {
		return nil
	}
	return m.snapshot.Catalog.Points
}

// Update handles messages.
func (m CatalogModel) Update(msg tea.Msg) (CatalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.points())

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if n > 0 {
				m.cursor = n - 1
			}
		case "enter":
			if p := m.Selected(); p != nil {
				name := p.Name
				return m, func() tea.Msg { return OpenStarMsg{Name: name} }
			}
		}
	}
	return m, nil
}

// Selected returns the star under the cursor, if any.
func (m CatalogModel) Selected() *catalog.Point {
	pts := m.points()
	if m.cursor < 0 || m.cursor >= len(pts) {
		return nil
	}
	p := pts[m.cursor]
	return &p
}

// View renders the catalog table and the selected star's card.
func (m CatalogModel) View() string {
	if m.snapshot.Catalog == nil {
		if m.snapshot.LastError != nil {
			return errorStyle.Render("Error: " + m.snapshot.LastError.Error())
		}
		return "Waiting for catalog...\n"
	}

	table := m.renderTable()
	card := m.renderCard()
	if m.width >= 130 {
		return lipgloss.JoinHorizontal(lipgloss.Top, table, "  ", card)
	}
	return lipgloss.JoinVertical(lipgloss.Left, table, card)
}

func (m CatalogModel) renderTable() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Catalog · %d stars", len(m.points()))))
	b.WriteString("\n")

	header := fmt.Sprintf("%-20s %8s %-12s %3s %9s %-13s",
		"Star", "Dist", "Spectral", "Oct", "Lum", "HZ (AU)")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	pts := m.points()
	if len(pts) == 0 {
		b.WriteString("  Catalog is empty\n")
		return b.String()
	}

	// Calculate visible rows based on height
	maxRows := m.height - 4
	if m.width < 130 {
		maxRows -= 14 // card below the table
	}
	if maxRows < 5 {
		maxRows = 5
	}

	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := min(startIdx+maxRows, len(pts))

	for i := startIdx; i < endIdx; i++ {
		p := pts[i]
		row := fmt.Sprintf("%-20s %8s %-12s %3d %9s %-13s",
			truncate(p.Name, 20),
			report.FormatParsecs(p.DistancePc),
			truncate(p.Spectral, 12),
			m.octantOf(p),
			formatLuminosity(p),
			zoneRange(p),
		)
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(pts) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d stars", startIdx+1, endIdx, len(pts)))
	}
	return b.String()
}

func (m CatalogModel) renderCard() string {
	p := m.Selected()
	if p == nil {
		return ""
	}
	d, err := state.Describe(*p, m.snapshot.Layout, m.snapshot.Catalog.Claimants(p.Name))
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	var b strings.Builder
	report.WriteStarCard(&b, d)
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m CatalogModel) octantOf(p catalog.Point) int {
	o, err := m.snapshot.Layout.Classify(p.Position)
	if err != nil {
		return 0
	}
	return o.ID
}

func formatLuminosity(p catalog.Point) string {
	s := fmt.Sprintf("%.3g", p.Luminosity)
	if p.LuminosityDefaulted {
		s += "*"
	}
	return s
}

func zoneRange(p catalog.Point) string {
	z, err := stellar.ComputeZone(p.Luminosity)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.2f-%.2f", z.Inner, z.Outer)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
