package ui

import (
	"fmt"
	"strings"
)

// renderHeader draws the top bar shared by every screen after loading:
// the app name, the active screen, and poll telemetry.
func (m Model) renderHeader() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("SKYWATCH"))
	b.WriteString("  ")
	b.WriteString(m.theme.Header.Render(m.screen.String()))
	b.WriteString("  ")
	b.WriteString(m.theme.Muted.Render("[1]Dashboard [2]Radar [3]Spotter [4]Settings [q]Quit"))
	b.WriteString("\n")

	status := m.theme.Success.Render("OK")
	if !m.lastOK {
		status = m.theme.Danger.Render("FAIL")
	}
	telemetry := fmt.Sprintf("update %s · %s · %d flights · %d enriched",
		formatAge(m.lastUpdate), status, len(m.flights), m.hits)
	b.WriteString(m.theme.Muted.Render(telemetry))
	b.WriteString("\n")

	return b.String()
}

// renderFooter draws the observer line at the bottom of the dashboard.
func (m Model) renderFooter() string {
	parts := []string{"observer " + formatCoords(m.obsLat, m.obsLon)}
	parts = append(parts, fmt.Sprintf("radius %.0f km", m.cfg.Location.DetectionRadiusKM))
	if m.initMessage != "" {
		parts = append(parts, m.initMessage)
	}
	if m.logPath != "" {
		parts = append(parts, "log "+m.logPath)
	}
	return m.theme.Muted.Render(strings.Join(parts, "  ·  "))
}
