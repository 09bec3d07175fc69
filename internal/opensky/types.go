package opensky

import (
	"encoding/json"
	"strings"
)

// Flight is one aircraft's current state and identity.
//
// Core fields come from an OpenSky state vector. The registry fields
// (Manufacturer, Model, Operator, OperatorCallsign, Registration,
// TypeCode) are empty until the aircraft registry decorates the flight;
// an undecorated flight is a normal state, not an error.
type Flight struct {
	// ICAO24 is the unique hex transponder address, lowercase.
	ICAO24 string
	// Callsign as broadcast, trimmed; "N/A" when absent.
	Callsign string
	// OriginCountry is the country of registration.
	OriginCountry string
	// Latitude and Longitude in decimal degrees.
	Latitude  float64
	Longitude float64
	// Altitude is barometric altitude in metres.
	Altitude float64
	// Velocity is ground speed in metres per second.
	Velocity float64
	// TrueTrack is the heading in decimal degrees clockwise from north.
	TrueTrack float64
	// VerticalRate in metres per second, negative when descending.
	VerticalRate float64

	// Registry enrichment, present only after a successful lookup.
	Manufacturer     string
	Model            string
	Operator         string
	OperatorCallsign string
	Registration     string
	TypeCode         string
}

// Position implements geo.Positioned.
func (f Flight) Position() (lat, lon float64) {
	return f.Latitude, f.Longitude
}

// Enriched reports whether the registry decorated this flight.
func (f Flight) Enriched() bool {
	return f.Registration != ""
}

// statesResponse is the raw shape of the OpenSky states endpoint. Each
// state is a positional array; see flightFromState for the indices.
type statesResponse struct {
	Time   int64               `json:"time"`
	States [][]json.RawMessage `json:"states"`
}

// State vector indices per the OpenSky states API.
const (
	stateICAO24 = iota
	stateCallsign
	stateOriginCountry
	stateTimePosition
	stateLastContact
	stateLongitude
	stateLatitude
	stateBaroAltitude
	stateOnGround
	stateVelocity
	stateTrueTrack
	stateVerticalRate
	stateMinFields = stateVerticalRate + 1
)

// flightFromState decodes one positional state vector. Missing or null
// values fall back to zero values; vectors too short to carry a position
// are rejected by the caller via ok.
func flightFromState(state []json.RawMessage) (Flight, bool) {
	if len(state) < stateMinFields {
		return Flight{}, false
	}

	f := Flight{
		ICAO24:        trimmedString(state[stateICAO24], "N/A"),
		Callsign:      trimmedString(state[stateCallsign], "N/A"),
		OriginCountry: trimmedString(state[stateOriginCountry], "Unknown"),
		Longitude:     number(state[stateLongitude]),
		Latitude:      number(state[stateLatitude]),
		Altitude:      number(state[stateBaroAltitude]),
		Velocity:      number(state[stateVelocity]),
		TrueTrack:     number(state[stateTrueTrack]),
		VerticalRate:  number(state[stateVerticalRate]),
	}
	return f, true
}

func trimmedString(raw json.RawMessage, fallback string) string {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return fallback
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func number(raw json.RawMessage) float64 {
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return 0
	}
	return *v
}
