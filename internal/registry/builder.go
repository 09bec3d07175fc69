package registry

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skywatch/skywatch/internal/events"
)

// progressEvery bounds how often build progress is reported. The CSV has
// around half a million rows; reporting each one would flood the channel.
const progressEvery = 2000

// StartBuild launches the one-shot registry build in its own goroutine
// and returns the channel its events arrive on. The channel carries
// events.InitProgress values followed by exactly one events.InitDone or
// events.InitError, then closes. The build runs at most once per process;
// callers only start it when Exists reports no database.
func StartBuild(ctx context.Context, csvPath, dbPath string) <-chan any {
	ch := make(chan any, 32)
	go func() {
		defer close(ch)
		build(ctx, csvPath, dbPath, ch)
	}()
	return ch
}

// build converts the aircraft database CSV into the sqlite registry,
// reporting progress as bytes consumed over total file size. File-open
// and schema failures are fatal to the build (events.InitError);
// malformed rows are skipped.
func build(ctx context.Context, csvPath, dbPath string, ch chan<- any) {
	file, err := os.Open(csvPath)
	if err != nil {
		ch <- events.InitError{Message: fmt.Sprintf("missing aircraft CSV: %v", err)}
		return
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		ch <- events.InitError{Message: fmt.Sprintf("stat aircraft CSV: %v", err)}
		return
	}
	total := float64(info.Size())

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		ch <- events.InitError{Message: fmt.Sprintf("open registry: %v", err)}
		return
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS aircraft (
			icao24 TEXT PRIMARY KEY,
			manufacturerName TEXT,
			model TEXT,
			operator TEXT,
			operatorCallsign TEXT,
			owner TEXT,
			registration TEXT,
			typecode TEXT
		)`); err != nil {
		ch <- events.InitError{Message: fmt.Sprintf("create schema: %v", err)}
		return
	}

	counted := &countingReader{r: file}
	reader := csv.NewReader(counted)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		ch <- events.InitError{Message: fmt.Sprintf("read CSV header: %v", err)}
		return
	}

	cols := resolveColumns(header)
	if cols.icao24 < 0 {
		ch <- events.InitError{Message: fmt.Sprintf("CSV missing icao24 column, headers: %v", header)}
		return
	}

	tx, err := db.Begin()
	if err != nil {
		ch <- events.InitError{Message: fmt.Sprintf("begin transaction: %v", err)}
		return
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO aircraft (icao24, manufacturerName, model, operator, operatorCallsign, owner, registration, typecode)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(icao24) DO UPDATE SET
			manufacturerName = excluded.manufacturerName,
			model = excluded.model,
			operator = excluded.operator,
			operatorCallsign = excluded.operatorCallsign,
			owner = excluded.owner,
			registration = excluded.registration,
			typecode = excluded.typecode`)
	if err != nil {
		ch <- events.InitError{Message: fmt.Sprintf("prepare upsert: %v", err)}
		return
	}
	defer func() { _ = stmt.Close() }()

	for rows := 0; ; rows++ {
		if rows%progressEvery == 0 {
			if ctx.Err() != nil {
				return
			}
			select {
			case ch <- events.InitProgress(float64(counted.n) / total):
			default:
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // malformed row, skip
		}

		key := strings.ToLower(cleanField(record, cols.icao24))
		if key == "" {
			continue
		}

		_, _ = stmt.Exec(
			key,
			cleanField(record, cols.manufacturer),
			cleanField(record, cols.model),
			cleanField(record, cols.operator),
			cleanField(record, cols.operatorCallsign),
			cleanField(record, cols.owner),
			cleanField(record, cols.registration),
			cleanField(record, cols.typeCode),
		)
	}

	if err := tx.Commit(); err != nil {
		ch <- events.InitError{Message: fmt.Sprintf("commit registry: %v", err)}
		return
	}

	ch <- events.InitDone{}
}

// columns holds resolved CSV column indices; -1 means absent.
type columns struct {
	icao24           int
	manufacturer     int
	model            int
	operator         int
	operatorCallsign int
	owner            int
	registration     int
	typeCode         int
}

// resolveColumns matches header names case-insensitively, tolerating a
// UTF-8 BOM and the single-quote style the OpenSky CSV uses.
func resolveColumns(header []string) columns {
	find := func(name string) int {
		for i, h := range header {
			clean := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimPrefix(h, "\ufeff"), `'"`)))
			if clean == name {
				return i
			}
		}
		return -1
	}
	return columns{
		icao24:           find("icao24"),
		manufacturer:     find("manufacturername"),
		model:            find("model"),
		operator:         find("operator"),
		operatorCallsign: find("operatorcallsign"),
		owner:            find("owner"),
		registration:     find("registration"),
		typeCode:         find("typecode"),
	}
}

// cleanField returns the trimmed, unquoted field at idx, or "" when the
// column is absent or the row is short.
func cleanField(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(record[idx], `'"`))
}

// countingReader tracks bytes consumed for progress reporting.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
