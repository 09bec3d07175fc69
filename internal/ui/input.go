package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skywatch/skywatch/internal/config"
)

// handleKey processes one key press. While the registry build is running
// only quit is honored; everything else would act on a flight list that
// is about to change.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.initializing {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Screen switches never touch selection or flight data.
	case key.Matches(msg, m.keys.Dashboard):
		m.screen = ScreenDashboard
		return m, nil
	case key.Matches(msg, m.keys.Radar):
		m.screen = ScreenRadar
		return m, nil
	case key.Matches(msg, m.keys.Spotter):
		m.screen = ScreenSpotter
		return m, nil
	case key.Matches(msg, m.keys.Settings):
		m.screen = ScreenSettings
		return m, nil
	}

	if m.screen == ScreenSettings {
		m.handleSettingsKey(msg)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectNext()
	case key.Matches(msg, m.keys.Up):
		m.selectPrev()
	}
	return m, nil
}

// selectNext advances the selection with wrap-around; no-op when the
// flight set is empty.
func (m *Model) selectNext() {
	if len(m.flights) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.flights)
}

// selectPrev moves the selection back with wrap-around; no-op when the
// flight set is empty.
func (m *Model) selectPrev() {
	if len(m.flights) == 0 {
		return
	}
	if m.selected == 0 {
		m.selected = len(m.flights) - 1
		return
	}
	m.selected--
}

// settingsFieldCount is the number of editable rows on the Settings
// screen: auto-locate, latitude, longitude, radius, poll interval,
// default screen.
const settingsFieldCount = 6

// handleSettingsKey edits configuration fields in place. Changes take
// effect for location-dependent behavior on save; poll and radius changes
// need a restart.
func (m *Model) handleSettingsKey(msg tea.KeyMsg) {
	m.settingsMessage = ""

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.settingsIndex == 0 {
			m.settingsIndex = settingsFieldCount - 1
		} else {
			m.settingsIndex--
		}

	case key.Matches(msg, m.keys.Down):
		m.settingsIndex = (m.settingsIndex + 1) % settingsFieldCount

	case key.Matches(msg, m.keys.Increment):
		m.adjustSetting(1)

	case key.Matches(msg, m.keys.Decrement):
		m.adjustSetting(-1)

	case key.Matches(msg, m.keys.Toggle):
		switch m.settingsIndex {
		case 0:
			m.cfg.Location.AutoLocate = !m.cfg.Location.AutoLocate
		case 5:
			m.cfg.UI.DefaultScreen = nextScreenName(m.cfg.UI.DefaultScreen)
		}

	case key.Matches(msg, m.keys.Save):
		if err := config.Save(m.configPath, m.cfg); err != nil {
			m.settingsMessage = "Save failed: " + err.Error()
			return
		}
		m.settingsMessage = "Config saved. Restart for poll/radius changes."
		if !m.cfg.Location.AutoLocate {
			m.obsLat = m.cfg.Location.Latitude
			m.obsLon = m.cfg.Location.Longitude
		}
	}
}

// adjustSetting applies one bounded increment or decrement to the
// selected field. Direction is +1 or -1.
func (m *Model) adjustSetting(direction float64) {
	loc := &m.cfg.Location
	switch m.settingsIndex {
	case 1:
		loc.Latitude = clamp(loc.Latitude+direction*config.CoordStep, config.MinLatitude, config.MaxLatitude)
	case 2:
		loc.Longitude = clamp(loc.Longitude+direction*config.CoordStep, config.MinLongitude, config.MaxLongitude)
	case 3:
		loc.DetectionRadiusKM = clamp(loc.DetectionRadiusKM+direction*config.RadiusStepKM, config.MinRadiusKM, config.MaxRadiusKM)
	case 4:
		next := m.cfg.API.PollIntervalSeconds + int(direction)*config.PollStepSeconds
		m.cfg.API.PollIntervalSeconds = int(clamp(float64(next), config.MinPollSeconds, config.MaxPollSeconds))
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// nextScreenName cycles the default-screen setting.
func nextScreenName(name string) string {
	switch name {
	case "dashboard":
		return "radar"
	case "radar":
		return "spotter"
	case "spotter":
		return "settings"
	default:
		return "dashboard"
	}
}
