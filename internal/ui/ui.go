// Package ui implements the skywatch terminal interface as a Bubble Tea
// program. The tea update loop is the single owner of all UI state:
// background workers publish events (see internal/events) and never touch
// the model, so no two inputs are ever applied concurrently.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skywatch/skywatch/internal/config"
	"github.com/skywatch/skywatch/internal/events"
	"github.com/skywatch/skywatch/internal/geo"
	"github.com/skywatch/skywatch/internal/opensky"
)

// tickRate drives UI refresh and the batched draining of low-frequency
// registry build events.
const tickRate = 150 * time.Millisecond

// Screen selects what the main area renders.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenDashboard
	ScreenRadar
	ScreenSpotter
	ScreenSettings
)

// String names the screen for the header.
func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "Loading"
	case ScreenDashboard:
		return "Dashboard"
	case ScreenRadar:
		return "Radar"
	case ScreenSpotter:
		return "Spotter"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// screenFromName maps a config default_screen value to a Screen.
func screenFromName(name string) Screen {
	switch name {
	case "radar":
		return ScreenRadar
	case "spotter":
		return ScreenSpotter
	case "settings":
		return ScreenSettings
	default:
		return ScreenDashboard
	}
}

// Options configures the UI.
type Options struct {
	Config     config.Config
	ConfigPath string

	// Bus carries poller events; InitEvents carries registry build
	// events and is nil when the registry already existed at startup.
	Bus        *events.Bus
	InitEvents <-chan any

	ObserverLat float64
	ObserverLon float64

	// LogPath is shown on the dashboard footer; may be empty.
	LogPath string
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	keys       keyMap
	theme      Theme

	screen    Screen
	flights   []opensky.Flight
	selected  int
	tickCount int

	// Registry build overlay state. initEvents is nil once the build
	// finished or failed; it never re-attaches.
	initializing bool
	initProgress float64
	initMessage  string
	initEvents   <-chan any
	initBar      progress.Model

	lastUpdate time.Time
	lastOK     bool
	hits       int

	obsLat, obsLon float64

	settingsIndex   int
	settingsMessage string

	bus     *events.Bus
	logPath string

	width, height int
}

// New builds the initial model from options.
func New(opts Options) Model {
	m := Model{
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		keys:       defaultKeyMap(),
		theme:      defaultTheme(),
		screen:     screenFromName(opts.Config.UI.DefaultScreen),
		initEvents: opts.InitEvents,
		initBar:    progress.New(progress.WithDefaultGradient()),
		obsLat:     opts.ObserverLat,
		obsLon:     opts.ObserverLon,
		bus:        opts.Bus,
		logPath:    opts.LogPath,
	}
	if m.initEvents != nil {
		m.initializing = true
		m.initMessage = "Building aircraft registry..."
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.bus != nil {
		cmds = append(cmds, waitForEvent(m.bus))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. Exactly one message is applied at a time,
// in arrival order per producer.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.initBar.Width = min(msg.Width-8, 60)
		return m, nil

	case tickMsg:
		m.handleTick()
		return m, tickCmd()

	case events.FlightUpdate:
		m.applyFlightUpdate(msg)
		return m, waitForEvent(m.bus)

	case events.InitProgress, events.InitDone, events.InitError:
		// Build events normally arrive via the tick drain; delivered
		// eagerly they must have identical effects.
		m.applyInitEvent(msg)
		return m, waitForEvent(m.bus)
	}

	return m, nil
}

// handleTick advances the clock and drains any queued registry build
// events without suspending. The drain runs every tick: build events are
// low-frequency and would otherwise sit behind tick traffic.
func (m *Model) handleTick() {
	m.tickCount++

	for m.initEvents != nil {
		select {
		case ev, ok := <-m.initEvents:
			if !ok {
				m.initEvents = nil
				return
			}
			m.applyInitEvent(ev)
		default:
			return
		}
	}
}

// applyInitEvent applies one registry build event. After InitDone or
// InitError the event source is detached for good.
func (m *Model) applyInitEvent(ev any) {
	switch ev := ev.(type) {
	case events.InitProgress:
		m.initProgress = float64(ev)
	case events.InitDone:
		m.initializing = false
		m.initProgress = 1
		m.initMessage = "Aircraft registry ready"
		m.initEvents = nil
	case events.InitError:
		// Fatal to enrichment only; flights still display undecorated.
		m.initializing = false
		m.initMessage = ev.Message
		m.initEvents = nil
	}
}

// applyFlightUpdate merges one poll result into the model. Updates are
// dropped wholesale while the registry build is running, and a failed
// poll never clobbers the last good flight set.
func (m *Model) applyFlightUpdate(u events.FlightUpdate) {
	if m.initializing {
		return
	}

	m.lastOK = u.OK
	if !u.OK {
		return
	}

	flights := u.Flights
	geo.SortByDistance(flights, m.obsLat, m.obsLon)

	m.flights = flights
	m.hits = u.Hits
	m.lastUpdate = u.At
	if m.selected >= len(m.flights) {
		m.selected = 0
	}
}

// View implements tea.Model. The loading screen overrides whatever the
// user selected while the registry build is running.
func (m Model) View() string {
	if m.initializing {
		return m.renderLoading()
	}
	switch m.screen {
	case ScreenLoading:
		return m.renderLoading()
	case ScreenDashboard:
		return m.renderDashboard()
	case ScreenRadar:
		return m.renderRadar()
	case ScreenSpotter:
		return m.renderSpotter()
	case ScreenSettings:
		return m.renderSettings()
	default:
		return ""
	}
}

// selectedFlight returns the current selection, or nil with no flights.
func (m Model) selectedFlight() *opensky.Flight {
	if len(m.flights) == 0 || m.selected >= len(m.flights) {
		return nil
	}
	return &m.flights[m.selected]
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent re-arms the single-consumer receive on the worker bus.
// Each delivery schedules the next receive, so bus events are applied
// strictly one at a time in publish order.
func waitForEvent(bus *events.Bus) tea.Cmd {
	if bus == nil {
		return nil
	}
	return func() tea.Msg {
		return <-bus.C()
	}
}

// Run starts the Bubble Tea program in the alternate screen and blocks
// until the user quits. Bubble Tea restores the terminal on exit and on
// panic.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
