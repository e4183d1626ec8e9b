package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starmap/internal/report"
	"github.com/litescript/ls-starmap/internal/state"
)

// OpenTerritoryMsg requests the map view with a territory highlighted.
type OpenTerritoryMsg struct {
	Name string
}

var (
	memberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// maxEventLines caps the event log shown under the table.
const maxEventLines = 8

// TerritoryModel lists territories, the selected one's members and the
// recent change events.
type TerritoryModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewTerritoryModel creates a new territory view model.
func NewTerritoryModel() TerritoryModel {
	return TerritoryModel{}
}

// SetSize updates the viewport size.
func (m TerritoryModel) SetSize(width, height int) TerritoryModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m TerritoryModel) UpdateData(snapshot state.Snapshot) TerritoryModel {
	m.snapshot = snapshot
	if n := len(snapshot.Territories); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

// Update handles messages.
func (m TerritoryModel) Update(msg tea.Msg) (TerritoryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(m.snapshot.Territories)
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "enter":
			if t := m.Selected(); t != nil {
				name := t.Name
				return m, func() tea.Msg { return OpenTerritoryMsg{Name: name} }
			}
		}
	}
	return m, nil
}

// Selected returns the territory under the cursor, if any.
func (m TerritoryModel) Selected() *state.Territory {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Territories) {
		return nil
	}
	t := m.snapshot.Territories[m.cursor]
	return &t
}

// View renders the territory table, members and event log.
func (m TerritoryModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Territories · %d", len(m.snapshot.Territories))))
	b.WriteString("\n")

	header := fmt.Sprintf("%-22s %7s %10s %6s %9s %-7s",
		"Territory", "Members", "Boundary", "Scale", "Centroid", "Compact")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(m.snapshot.Territories) == 0 {
		b.WriteString("  No territories\n")
		return b.String()
	}

	for i, t := range m.snapshot.Territories {
		compact := ""
		if t.Compact {
			compact = "yes"
		}
		row := fmt.Sprintf("%-22s %7d %10s %6.2f %9s %-7s",
			truncate(t.Name, 22),
			len(t.Members),
			report.FormatParsecs(t.BoundaryRadius),
			t.ScaleMultiplier,
			fmt.Sprintf("oct %d", t.CentroidOctant),
			compact,
		)
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if t := m.Selected(); t != nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(t.Name))
		b.WriteString("  ")
		b.WriteString(memberStyle.Render(report.FormatVec(t.Centroid)))
		b.WriteString("\n")
		for _, name := range t.MemberNames {
			b.WriteString(memberStyle.Render("  • " + name))
			b.WriteString("\n")
		}
	}

	if events := m.snapshot.Events; len(events) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recent events"))
		b.WriteString("\n")
		start := max(len(events)-maxEventLines, 0)
		for i := len(events) - 1; i >= start; i-- {
			b.WriteString(eventStyle.Render("  " + formatEvent(events[i])))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatEvent(e state.Event) string {
	ts := e.Timestamp.Format("15:04:05")
	switch e.Type {
	case state.EventBoundaryResized:
		return fmt.Sprintf("%s %s %s → %s", ts, e.Territory,
			report.FormatParsecs(e.OldRadius), report.FormatParsecs(e.NewRadius))
	case state.EventMembershipChanged:
		var parts []string
		if len(e.Added) > 0 {
			parts = append(parts, "+"+strings.Join(e.Added, ", +"))
		}
		if len(e.Removed) > 0 {
			parts = append(parts, "-"+strings.Join(e.Removed, ", -"))
		}
		return fmt.Sprintf("%s %s %s", ts, e.Territory, strings.Join(parts, " "))
	case state.EventTerritoryFormed:
		return fmt.Sprintf("%s %s formed", ts, e.Territory)
	case state.EventTerritoryDissolved:
		return fmt.Sprintf("%s %s dissolved", ts, e.Territory)
	}
	return fmt.Sprintf("%s %s %s", ts, e.Territory, e.Type)
}
