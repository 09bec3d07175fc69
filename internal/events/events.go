// Package events defines the message types exchanged between skywatch's
// background workers and the UI loop, plus the Bus they travel on.
//
// Every type here doubles as a tea.Msg: the Bubble Tea update loop is the
// single consumer, and workers are producers that never touch UI state
// directly. Ticks and key presses arrive through Bubble Tea's own tickMsg
// and tea.KeyMsg; everything else arrives as one of these values.
package events

import (
	"time"

	"github.com/skywatch/skywatch/internal/opensky"
)

// FlightUpdate is the result of one poll cycle against the flight API.
// A failed fetch is still reported (OK false, no flights) so the UI can
// surface staleness without losing the last good data.
type FlightUpdate struct {
	// Flights in range, enriched where the registry had a match.
	// Empty or nil when OK is false.
	Flights []opensky.Flight
	// Hits counts flights that gained registry data this cycle.
	Hits int
	// At is when the update was produced.
	At time.Time
	// OK reports whether the fetch succeeded.
	OK bool
}

// InitProgress reports registry build progress in [0, 1].
type InitProgress float64

// InitDone signals that the registry build finished and committed.
type InitDone struct{}

// InitError signals a fatal registry build failure. Enrichment stays
// disabled for the session; the rest of the app keeps running.
type InitError struct {
	Message string
}

func (e InitError) Error() string { return e.Message }

// busCapacity bounds the bus so a stalled consumer cannot pin memory.
// Publish drops rather than blocks when the buffer is full; the poller
// replaces stale updates on its next cycle anyway.
const busCapacity = 64

// Bus is a many-producer, single-consumer channel of worker events.
// The zero value is not usable; call NewBus.
type Bus struct {
	ch chan any
}

// NewBus returns a Bus ready for use.
func NewBus() *Bus {
	return &Bus{ch: make(chan any, busCapacity)}
}

// Publish delivers an event without ever blocking the producer. If the
// buffer is full the event is dropped; producers must not depend on
// delivery.
func (b *Bus) Publish(event any) {
	select {
	case b.ch <- event:
	default:
	}
}

// C exposes the receive side for the single consumer. Events from one
// producer arrive in the order they were published.
func (b *Bus) C() <-chan any {
	return b.ch
}
