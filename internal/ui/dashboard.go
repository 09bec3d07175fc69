package ui

import (
	"fmt"
	"strings"

	"github.com/skywatch/skywatch/internal/geo"
)

// renderDashboard draws the flight table with a detail pane for the
// selected flight, ordered nearest first.
func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if len(m.flights) == 0 {
		b.WriteString(m.theme.Muted.Render("No flights in range."))
		b.WriteString("\n\n")
		b.WriteString(m.renderFooter())
		return b.String()
	}

	header := fmt.Sprintf("  %-10s %9s %10s %10s %6s  %s",
		"CALLSIGN", "DIST", "ALT", "SPD", "HDG", "OPERATOR")
	b.WriteString(m.theme.Header.Render(header))
	b.WriteString("\n")

	visible := m.visibleRows()
	for i, f := range m.flights {
		if i >= visible {
			b.WriteString(m.theme.Muted.Render(fmt.Sprintf("  … %d more", len(m.flights)-visible)))
			b.WriteString("\n")
			break
		}

		dist := geo.Distance(m.obsLat, m.obsLon, f.Latitude, f.Longitude)
		row := fmt.Sprintf("%-10s %9s %10s %10s %6s  %s",
			f.Callsign,
			fmt.Sprintf("%.1f km", dist),
			formatAltitude(f.Altitude),
			formatSpeed(f.Velocity),
			fmt.Sprintf("%.0f°", f.TrueTrack),
			orPlaceholder(f.Operator),
		)
		if i == m.selected {
			b.WriteString(m.theme.Selected.Render("▸ " + row))
		} else {
			b.WriteString(m.theme.Text.Render("  " + row))
		}
		b.WriteString("\n")
	}

	if f := m.selectedFlight(); f != nil {
		b.WriteString("\n")
		detail := fmt.Sprintf("%s · %s · %s %s · reg %s · %s",
			f.Callsign,
			f.OriginCountry,
			orPlaceholder(f.Manufacturer),
			orPlaceholder(f.Model),
			orPlaceholder(f.Registration),
			formatVerticalRate(f.VerticalRate),
		)
		b.WriteString(m.theme.Border.Render(detail))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// visibleRows bounds the table to the terminal height, leaving room for
// the header, detail pane and footer.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return 20
	}
	rows := m.height - 10
	if rows < 3 {
		rows = 3
	}
	return rows
}
