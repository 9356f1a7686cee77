// Package eventstore is an optional queryable sink for finished battle
// runs: a SQLite database that a balance-tuning script can SELECT across
// many stored battles from, instead of re-parsing newline-delimited JSON
// one file at a time. A caller saves a finished run's event log here with
// SaveRun; cmd/battlesim does so when given --store and writes no JSONL
// file of its own.
package eventstore

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/rentierek/data-driven-autochess/internal/eventlog"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps a SQLite database of completed battle runs.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the
// schema. path may be ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply event store schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// RunOutcome is the run-level summary recorded alongside its events.
type RunOutcome struct {
	ID         string
	Seed       uint64
	TickRate   int
	GridWidth  int
	GridHeight int
	Winner     *int
	Ticks      *uint32
}

// SaveRun persists a finished run's summary and its full event log in one
// transaction — either both are written or neither is, so a query never
// sees a run row with no matching events.
func (s *Store) SaveRun(outcome RunOutcome, events []eventlog.Event) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin event store transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, seed, tick_rate, grid_width, grid_height, winner, ticks) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		outcome.ID, outcome.Seed, outcome.TickRate, outcome.GridWidth, outcome.GridHeight, outcome.Winner, outcome.Ticks,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", outcome.ID, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO events (run_id, sequence, tick, kind, unit_id, target_id, data) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return fmt.Errorf("marshal event %d payload: %w", e.Sequence, err)
		}
		if _, err := stmt.Exec(outcome.ID, e.Sequence, e.Tick, e.Kind.String(), e.UnitID, e.TargetID, string(data)); err != nil {
			return fmt.Errorf("insert event %d: %w", e.Sequence, err)
		}
	}

	return tx.Commit()
}

// Runs lists every stored run's summary.
func (s *Store) Runs() ([]RunOutcome, error) {
	rows, err := s.conn.Query(`SELECT id, seed, tick_rate, grid_width, grid_height, winner, ticks FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunOutcome
	for rows.Next() {
		var o RunOutcome
		if err := rows.Scan(&o.ID, &o.Seed, &o.TickRate, &o.GridWidth, &o.GridHeight, &o.Winner, &o.Ticks); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Events returns every event recorded for runID, in sequence order.
func (s *Store) Events(runID string) ([]eventlog.Event, error) {
	rows, err := s.conn.Query(
		`SELECT sequence, tick, kind, unit_id, target_id, data FROM events WHERE run_id = ? ORDER BY sequence`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []eventlog.Event
	for rows.Next() {
		var (
			kindStr  string
			unitID   sql.NullInt64
			targetID sql.NullInt64
			data     sql.NullString
		)
		e := eventlog.Event{}
		if err := rows.Scan(&e.Sequence, &e.Tick, &kindStr, &unitID, &targetID, &data); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = kindFromString(kindStr)
		if unitID.Valid {
			id := uint64(unitID.Int64)
			e.UnitID = &id
		}
		if targetID.Valid {
			id := uint64(targetID.Int64)
			e.TargetID = &id
		}
		if data.Valid && data.String != "" && data.String != "null" {
			if err := json.Unmarshal([]byte(data.String), &e.Data); err != nil {
				return nil, fmt.Errorf("unmarshal event %d payload: %w", e.Sequence, err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
