// Package registry persists the aircraft registry used to enrich live
// flights, backed by SQLite. The registry is built once from the OpenSky
// aircraft database CSV (see builder.go) and afterwards opened read-only
// for point lookups by ICAO24.
package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/skywatch/skywatch/internal/opensky"
)

// Aircraft is one registry record keyed by ICAO24.
type Aircraft struct {
	ICAO24           string
	Manufacturer     string
	Model            string
	Operator         string
	OperatorCallsign string
	Owner            string
	Registration     string
	TypeCode         string
}

// Store is a read-only handle on the registry database.
type Store struct {
	db *sql.DB
}

// Exists reports whether a registry database is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Open opens the registry read-only. The file must already exist; use the
// builder to create it.
func Open(path string) (*Store, error) {
	if !Exists(path) {
		return nil, fmt.Errorf("registry database %s does not exist", path)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping registry: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup fetches the record for an ICAO24 address. The address is
// normalized (trimmed, lowercased) before the query. The second return is
// false when no record exists.
func (s *Store) Lookup(icao24 string) (Aircraft, bool, error) {
	if s == nil || s.db == nil {
		return Aircraft{}, false, nil
	}

	key := strings.ToLower(strings.TrimSpace(icao24))
	var a Aircraft
	err := s.db.QueryRow(`
		SELECT icao24, manufacturerName, model, operator, operatorCallsign, owner, registration, typecode
		FROM aircraft WHERE icao24 = ?`, key,
	).Scan(&a.ICAO24, &a.Manufacturer, &a.Model, &a.Operator, &a.OperatorCallsign, &a.Owner, &a.Registration, &a.TypeCode)
	if errors.Is(err, sql.ErrNoRows) {
		return Aircraft{}, false, nil
	}
	if err != nil {
		return Aircraft{}, false, fmt.Errorf("lookup %s: %w", key, err)
	}
	return a, true, nil
}

// Decorate fills registry fields on each flight in place and returns the
// number of flights that matched. A nil Store passes flights through
// untouched; an absent registry is not an error.
func (s *Store) Decorate(flights []opensky.Flight) int {
	if s == nil || s.db == nil {
		return 0
	}

	hits := 0
	for i := range flights {
		a, ok, err := s.Lookup(flights[i].ICAO24)
		if err != nil || !ok {
			continue
		}
		operator := a.Operator
		if operator == "" {
			operator = a.Owner
		}
		flights[i].Manufacturer = a.Manufacturer
		flights[i].Model = a.Model
		flights[i].Operator = operator
		flights[i].OperatorCallsign = a.OperatorCallsign
		flights[i].Registration = a.Registration
		flights[i].TypeCode = a.TypeCode
		hits++
	}
	return hits
}
