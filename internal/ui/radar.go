package ui

import (
	"fmt"
	"math"
	"strings"
)

// Radar plot dimensions in cells. Terminal cells are roughly twice as
// tall as wide, so the grid is wider than it is high.
const (
	radarWidth  = 61
	radarHeight = 25
)

// renderRadar draws a plan-position view of the flights around the
// observer, scaled so the detection radius reaches the plot edge.
func (m Model) renderRadar() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	grid := make([][]rune, radarHeight)
	for y := range grid {
		grid[y] = make([]rune, radarWidth)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	cx, cy := radarWidth/2, radarHeight/2
	grid[cy][cx] = '+'

	// Degrees of latitude spanned by the detection radius; longitude is
	// corrected for the observer's latitude.
	radiusDeg := m.cfg.Location.DetectionRadiusKM / 111.0
	lonScale := math.Cos(m.obsLat * math.Pi / 180)

	selectedX, selectedY := -1, -1
	for i, f := range m.flights {
		dx := (f.Longitude - m.obsLon) * lonScale / radiusDeg
		dy := (f.Latitude - m.obsLat) / radiusDeg
		x := cx + int(dx*float64(cx))
		y := cy - int(dy*float64(cy))
		if x < 0 || x >= radarWidth || y < 0 || y >= radarHeight {
			continue
		}
		if i == m.selected {
			selectedX, selectedY = x, y
			continue
		}
		grid[y][x] = '✈'
	}

	for y, row := range grid {
		line := string(row)
		if y == selectedY && selectedX >= 0 {
			// Re-render the selected flight over the plain row.
			line = string(row[:selectedX]) + m.theme.Selected.Render("◉") + string(row[selectedX+1:])
		}
		b.WriteString(m.theme.Accent.Render("│"))
		b.WriteString(line)
		b.WriteString(m.theme.Accent.Render("│"))
		b.WriteString("\n")
	}

	caption := fmt.Sprintf("range %.0f km · %d tracked", m.cfg.Location.DetectionRadiusKM, len(m.flights))
	if f := m.selectedFlight(); f != nil {
		caption += " · ◉ " + f.Callsign
	}
	b.WriteString(m.theme.Muted.Render(caption))
	b.WriteString("\n")
	return b.String()
}
