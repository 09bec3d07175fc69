package ui

import (
	"fmt"
	"strings"

	"github.com/skywatch/skywatch/internal/geo"
)

// renderSpotter draws the full card for the selected flight, including
// every registry field the lookup could provide.
func (m Model) renderSpotter() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	f := m.selectedFlight()
	if f == nil {
		b.WriteString(m.theme.Muted.Render("No flights in range."))
		b.WriteString("\n")
		return b.String()
	}

	var card strings.Builder
	card.WriteString(m.theme.Title.Render(f.Callsign))
	card.WriteString(m.theme.Muted.Render("  " + f.ICAO24))
	card.WriteString("\n\n")

	dist := geo.Distance(m.obsLat, m.obsLon, f.Latitude, f.Longitude)
	rows := []struct{ label, value string }{
		{"Country", f.OriginCountry},
		{"Distance", fmt.Sprintf("%.1f km", dist)},
		{"Position", formatCoords(f.Latitude, f.Longitude)},
		{"Altitude", formatAltitude(f.Altitude)},
		{"Speed", formatSpeed(f.Velocity)},
		{"Heading", formatHeading(f.TrueTrack)},
		{"Vertical", formatVerticalRate(f.VerticalRate)},
		{"", ""},
		{"Manufacturer", orPlaceholder(f.Manufacturer)},
		{"Model", orPlaceholder(f.Model)},
		{"Type code", orPlaceholder(f.TypeCode)},
		{"Operator", orPlaceholder(f.Operator)},
		{"Op. callsign", orPlaceholder(f.OperatorCallsign)},
		{"Registration", orPlaceholder(f.Registration)},
	}
	for _, row := range rows {
		if row.label == "" {
			card.WriteString("\n")
			continue
		}
		card.WriteString(m.theme.Muted.Render(fmt.Sprintf("%-14s", row.label)))
		card.WriteString(m.theme.Text.Render(row.value))
		card.WriteString("\n")
	}

	b.WriteString(m.theme.Border.Render(card.String()))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("flight %d of %d · j/k to browse", m.selected+1, len(m.flights))))
	b.WriteString("\n")
	return b.String()
}
