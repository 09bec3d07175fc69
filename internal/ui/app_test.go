package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skywatch/skywatch/internal/config"
	"github.com/skywatch/skywatch/internal/events"
	"github.com/skywatch/skywatch/internal/opensky"
)

func newTestModel() Model {
	return New(Options{
		Config:      config.Default(),
		ObserverLat: 0,
		ObserverLon: 0,
		Bus:         events.NewBus(),
	})
}

// apply runs one message through Update and returns the new model.
func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// flightsAtKM builds flights due north of the origin at the given
// distances; one degree of latitude is about 111 km.
func flightsAtKM(distances ...float64) []opensky.Flight {
	flights := make([]opensky.Flight, len(distances))
	for i, d := range distances {
		flights[i] = opensky.Flight{
			ICAO24:   string(rune('a' + i)),
			Callsign: string(rune('A' + i)),
			Latitude: d / 111.0,
		}
	}
	return flights
}

func TestNavigation_WrapAround(t *testing.T) {
	m := newTestModel()
	m = apply(t, m, events.FlightUpdate{Flights: flightsAtKM(5, 20, 50), OK: true, At: time.Now()})

	if len(m.flights) != 3 {
		t.Fatalf("got %d flights, want 3", len(m.flights))
	}

	m.selected = 2
	m = apply(t, m, keyMsg("j"))
	if m.selected != 0 {
		t.Errorf("next at last index: selected = %d, want 0 (wrap)", m.selected)
	}

	m = apply(t, m, keyMsg("k"))
	if m.selected != 2 {
		t.Errorf("prev at 0: selected = %d, want 2 (wrap)", m.selected)
	}

	m = apply(t, m, keyMsg("down"))
	if m.selected != 0 {
		t.Errorf("arrow down at last index: selected = %d, want 0", m.selected)
	}
}

func TestNavigation_EmptySetIsNoOp(t *testing.T) {
	m := newTestModel()

	m = apply(t, m, keyMsg("j"))
	if m.selected != 0 {
		t.Errorf("selected = %d after next on empty set, want 0", m.selected)
	}
	m = apply(t, m, keyMsg("k"))
	if m.selected != 0 {
		t.Errorf("selected = %d after prev on empty set, want 0", m.selected)
	}
}

func TestScreenSwitch_KeepsSelectionAndFlights(t *testing.T) {
	m := newTestModel()
	m = apply(t, m, events.FlightUpdate{Flights: flightsAtKM(5, 20, 50), OK: true, At: time.Now()})
	m.selected = 1

	m = apply(t, m, keyMsg("2"))
	if m.screen != ScreenRadar {
		t.Fatalf("screen = %v, want Radar", m.screen)
	}
	if m.selected != 1 || len(m.flights) != 3 {
		t.Errorf("screen switch disturbed state: selected %d, flights %d", m.selected, len(m.flights))
	}

	m = apply(t, m, keyMsg("3"))
	if m.screen != ScreenSpotter {
		t.Errorf("screen = %v, want Spotter", m.screen)
	}
	m = apply(t, m, keyMsg("1"))
	if m.screen != ScreenDashboard {
		t.Errorf("screen = %v, want Dashboard", m.screen)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit key produced no command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Fatalf("quit key produced %#v, want tea.QuitMsg", msg)
	}
}

func TestFlightUpdate_SortsByDistance(t *testing.T) {
	m := newTestModel()

	// Arrive as 50 km, 5 km, 20 km.
	update := events.FlightUpdate{Flights: flightsAtKM(50, 5, 20), OK: true, At: time.Now(), Hits: 1}
	m = apply(t, m, update)

	want := []float64{5.0 / 111.0, 20.0 / 111.0, 50.0 / 111.0}
	for i, lat := range want {
		if m.flights[i].Latitude != lat {
			t.Fatalf("flights[%d].Latitude = %v, want %v (order %v)", i, m.flights[i].Latitude, lat, m.flights)
		}
	}
	if m.hits != 1 {
		t.Errorf("hits = %d, want 1", m.hits)
	}
	if !m.lastOK {
		t.Error("lastOK = false after successful update")
	}
}

func TestFlightUpdate_FailureRetainsLastGoodData(t *testing.T) {
	m := newTestModel()

	good := events.FlightUpdate{Flights: flightsAtKM(5, 20), OK: true, At: time.Now(), Hits: 2}
	m = apply(t, m, good)

	m = apply(t, m, events.FlightUpdate{OK: false, At: time.Now()})

	if len(m.flights) != 2 {
		t.Errorf("failed update clobbered flights: %d, want 2", len(m.flights))
	}
	if m.hits != 2 {
		t.Errorf("failed update clobbered hits: %d, want 2", m.hits)
	}
	if m.lastUpdate != good.At {
		t.Errorf("failed update clobbered lastUpdate: %v, want %v", m.lastUpdate, good.At)
	}
	if m.lastOK {
		t.Error("lastOK = true after a failed update")
	}
}

func TestFlightUpdate_FailureThenSuccess(t *testing.T) {
	m := newTestModel()

	m = apply(t, m, events.FlightUpdate{OK: false, At: time.Now()})
	m = apply(t, m, events.FlightUpdate{Flights: flightsAtKM(10), OK: true, At: time.Now()})

	if len(m.flights) != 1 {
		t.Fatalf("flights = %d, want 1 from the successful update", len(m.flights))
	}
	if !m.lastOK {
		t.Error("lastOK = false after recovery")
	}
}

func TestFlightUpdate_SelectionClampedWhenSetShrinks(t *testing.T) {
	m := newTestModel()
	m = apply(t, m, events.FlightUpdate{Flights: flightsAtKM(5, 20, 50), OK: true, At: time.Now()})
	m.selected = 2

	m = apply(t, m, events.FlightUpdate{Flights: flightsAtKM(5), OK: true, At: time.Now()})
	if m.selected != 0 {
		t.Errorf("selected = %d after shrink, want 0", m.selected)
	}
}

func newInitializingModel(initCh <-chan any) Model {
	m := New(Options{
		Config:     config.Default(),
		Bus:        events.NewBus(),
		InitEvents: initCh,
	})
	return m
}

func TestInitializing_BlocksInputAndUpdates(t *testing.T) {
	ch := make(chan any)
	m := newInitializingModel(ch)

	if !m.initializing {
		t.Fatal("model with init events not initializing")
	}

	// Flight updates are dropped wholesale during the build.
	m = apply(t, m, events.FlightUpdate{Flights: flightsAtKM(5), OK: true, At: time.Now()})
	if len(m.flights) != 0 {
		t.Error("flight update applied while initializing")
	}

	// Non-quit input is ignored.
	m = apply(t, m, keyMsg("2"))
	if m.screen == ScreenRadar {
		t.Error("screen switch honored while initializing")
	}
	m = apply(t, m, keyMsg("j"))
	if m.selected != 0 {
		t.Error("navigation honored while initializing")
	}

	// Quit still works.
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit ignored while initializing")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Fatalf("quit produced %#v while initializing", msg)
	}
}

func TestTick_DrainsAllQueuedInitEvents(t *testing.T) {
	ch := make(chan any, 8)
	m := newInitializingModel(ch)

	ch <- events.InitProgress(0.2)
	ch <- events.InitProgress(0.7)

	m = apply(t, m, tickMsg(time.Now()))
	if m.initProgress != 0.7 {
		t.Errorf("initProgress = %v after drain, want 0.7 (all queued events)", m.initProgress)
	}
	if !m.initializing {
		t.Error("initializing cleared by progress alone")
	}
	if m.tickCount != 1 {
		t.Errorf("tickCount = %d, want 1", m.tickCount)
	}

	ch <- events.InitProgress(0.9)
	ch <- events.InitDone{}
	m = apply(t, m, tickMsg(time.Now()))

	if m.initializing {
		t.Error("initializing still set after InitDone")
	}
	if m.initEvents != nil {
		t.Error("init event source still attached after InitDone")
	}

	// The source never re-attaches; later ticks are plain ticks.
	m = apply(t, m, tickMsg(time.Now()))
	if m.initEvents != nil || m.initializing {
		t.Error("init state reappeared after teardown")
	}
}

func TestInitError_DisablesEnrichmentOnly(t *testing.T) {
	ch := make(chan any, 1)
	m := newInitializingModel(ch)

	ch <- events.InitError{Message: "missing aircraft CSV: open data/aircraft-database.csv: no such file"}
	m = apply(t, m, tickMsg(time.Now()))

	if m.initializing {
		t.Error("initializing still set after InitError")
	}
	if m.initEvents != nil {
		t.Error("init event source still attached after InitError")
	}
	if m.initMessage == "" {
		t.Error("error message not surfaced")
	}

	// Flights still display, just undecorated.
	m = apply(t, m, events.FlightUpdate{Flights: flightsAtKM(5), OK: true, At: time.Now()})
	if len(m.flights) != 1 {
		t.Fatal("flight update not applied after InitError")
	}
	if m.flights[0].Enriched() {
		t.Error("flight unexpectedly enriched")
	}
}

func TestInitEvent_EagerDeliveryMatchesDrainPath(t *testing.T) {
	ch := make(chan any)
	m := newInitializingModel(ch)

	// Delivered directly as messages rather than through the channel.
	m = apply(t, m, events.InitProgress(0.5))
	if m.initProgress != 0.5 {
		t.Errorf("initProgress = %v, want 0.5", m.initProgress)
	}

	m = apply(t, m, events.InitDone{})
	if m.initializing || m.initEvents != nil {
		t.Error("eager InitDone did not tear down init state")
	}
}

func TestSettings_AdjustAndClamp(t *testing.T) {
	m := newTestModel()
	m.screen = ScreenSettings

	// Radius field, pushed past its maximum.
	m.settingsIndex = 3
	m.cfg.Location.DetectionRadiusKM = config.MaxRadiusKM - 2
	m = apply(t, m, keyMsg("+"))
	if m.cfg.Location.DetectionRadiusKM != config.MaxRadiusKM {
		t.Errorf("radius = %v, want clamped to %v", m.cfg.Location.DetectionRadiusKM, config.MaxRadiusKM)
	}

	// Poll interval pushed below its minimum.
	m.settingsIndex = 4
	m.cfg.API.PollIntervalSeconds = config.MinPollSeconds
	m = apply(t, m, keyMsg("-"))
	if m.cfg.API.PollIntervalSeconds != config.MinPollSeconds {
		t.Errorf("poll = %v, want clamped to %v", m.cfg.API.PollIntervalSeconds, config.MinPollSeconds)
	}

	// Toggle auto-locate.
	m.settingsIndex = 0
	was := m.cfg.Location.AutoLocate
	m = apply(t, m, keyMsg("enter"))
	if m.cfg.Location.AutoLocate == was {
		t.Error("enter did not toggle auto-locate")
	}

	// Field cursor wraps.
	m.settingsIndex = 0
	m = apply(t, m, keyMsg("k"))
	if m.settingsIndex != settingsFieldCount-1 {
		t.Errorf("settings cursor = %d, want %d (wrap)", m.settingsIndex, settingsFieldCount-1)
	}
}

func TestSettings_SavePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	m := New(Options{
		Config:     config.Default(),
		ConfigPath: path,
		Bus:        events.NewBus(),
	})
	m.screen = ScreenSettings
	m.cfg.Location.AutoLocate = false
	m.cfg.Location.Latitude = 51.5

	m = apply(t, m, keyMsg("s"))
	if m.settingsMessage == "" {
		t.Fatal("save produced no status message")
	}
	if m.obsLat != 51.5 {
		t.Errorf("observer latitude = %v after manual save, want 51.5", m.obsLat)
	}

	loaded := config.Load(path)
	if loaded.Location.Latitude != 51.5 || loaded.Location.AutoLocate {
		t.Errorf("persisted config = %+v", loaded.Location)
	}
}

func TestView_LoadingOverridesSelectedScreen(t *testing.T) {
	ch := make(chan any)
	m := newInitializingModel(ch)
	m.screen = ScreenDashboard

	if got := m.View(); !strings.Contains(got, "SKYWATCH") {
		t.Errorf("loading view missing banner: %q", got)
	}
	if !strings.Contains(m.View(), "registry") {
		t.Errorf("loading view missing status message: %q", m.View())
	}
}
