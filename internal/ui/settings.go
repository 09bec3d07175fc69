package ui

import (
	"fmt"
	"strings"
)

// renderSettings draws the configuration editor. Row order must match
// the field indices in handleSettingsKey.
func (m Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	autoLocate := "off"
	if m.cfg.Location.AutoLocate {
		autoLocate = "on"
	}

	rows := []struct{ label, value, hint string }{
		{"Auto-locate", autoLocate, "enter toggles"},
		{"Latitude", fmt.Sprintf("%.4f", m.cfg.Location.Latitude), "±0.1, manual mode only"},
		{"Longitude", fmt.Sprintf("%.4f", m.cfg.Location.Longitude), "±0.1, manual mode only"},
		{"Detection radius", fmt.Sprintf("%.0f km", m.cfg.Location.DetectionRadiusKM), "±5, 1–500"},
		{"Poll interval", fmt.Sprintf("%d s", m.cfg.API.PollIntervalSeconds), "±5, 5–600"},
		{"Default screen", m.cfg.UI.DefaultScreen, "enter cycles"},
	}

	for i, row := range rows {
		line := fmt.Sprintf("%-18s %-14s %s", row.label, row.value, m.theme.Muted.Render(row.hint))
		if i == m.settingsIndex {
			b.WriteString(m.theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(m.theme.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.settingsMessage != "" {
		style := m.theme.Success
		if strings.HasPrefix(m.settingsMessage, "Save failed") {
			style = m.theme.Danger
		}
		b.WriteString(style.Render(m.settingsMessage))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render("j/k move · +/- adjust · enter toggle · s save"))
	b.WriteString("\n")
	return b.String()
}
