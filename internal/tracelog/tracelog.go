package tracelog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tmaxa/partscript/internal/engine"
)

//go:embed schema.sql
var schemaSQL string

// Log writes firings to a SQLite database.
type Log struct {
	db *sql.DB

	mu      sync.Mutex
	lastErr error
}

// Open opens or creates a trace database at the given path.
// Use ":memory:" for an in-memory log.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to trace database: %w", err)
	}

	// Single connection keeps writes serialized and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure trace database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply trace schema: %w", err)
	}

	return &Log{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record inserts one firing. Errors are retained and surfaced via Err,
// since engine.Tracer gives the caller no error channel.
func (l *Log) Record(f engine.Firing) {
	_, err := l.db.Exec(`
		INSERT INTO firings
		(seq, tick, thing_id, thing_name, part_id, state, event, arg, actions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`,
		f.Seq,
		f.Tick,
		f.ThingID,
		f.ThingName,
		f.PartID,
		f.State,
		f.Event,
		f.Arg,
		f.Actions,
	)
	if err != nil {
		l.mu.Lock()
		if l.lastErr == nil {
			l.lastErr = fmt.Errorf("record firing %d: %w", f.Seq, err)
		}
		l.mu.Unlock()
	}
}

// Err returns the first write error encountered, if any.
func (l *Log) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Filter narrows a read to specific firings. Zero values match everything.
type Filter struct {
	Tick    int64  // match this tick only; -1 matches all ticks
	ThingID string // match this thing only; empty matches all things
}

// All is the filter that matches every firing.
func All() Filter {
	return Filter{Tick: -1}
}

// Firings returns firings matching the filter in seq order.
// Returns an empty slice, not nil, when nothing matches.
func (l *Log) Firings(ctx context.Context, filter Filter) ([]engine.Firing, error) {
	query := `
		SELECT seq, tick, thing_id, thing_name, part_id, state, event, arg, actions
		FROM firings`
	var (
		clauses []string
		args    []any
	)
	if filter.Tick >= 0 {
		clauses = append(clauses, "tick = ?")
		args = append(args, filter.Tick)
	}
	if filter.ThingID != "" {
		clauses = append(clauses, "thing_id = ?")
		args = append(args, filter.ThingID)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += "\n\t\tWHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += "\n\t\tORDER BY seq ASC"

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query firings: %w", err)
	}
	defer rows.Close()

	firings := []engine.Firing{}
	for rows.Next() {
		var f engine.Firing
		if err := rows.Scan(
			&f.Seq,
			&f.Tick,
			&f.ThingID,
			&f.ThingName,
			&f.PartID,
			&f.State,
			&f.Event,
			&f.Arg,
			&f.Actions,
		); err != nil {
			return nil, fmt.Errorf("scan firing: %w", err)
		}
		firings = append(firings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate firings: %w", err)
	}

	return firings, nil
}

// Count returns the number of recorded firings.
func (l *Log) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM firings").Scan(&n); err != nil {
		return 0, fmt.Errorf("count firings: %w", err)
	}
	return n, nil
}
