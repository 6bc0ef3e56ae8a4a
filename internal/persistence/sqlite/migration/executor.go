package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const versionTableSchema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TEXT NOT NULL,
	execution_time_ms INTEGER NOT NULL
)`

// Executor applies migrations to a SQLite database and maintains the
// schema_migrations version table.
type Executor struct {
	db *sql.DB
}

// NewExecutor creates an executor bound to the given database handle.
func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// EnsureVersionTable creates the schema_migrations table if missing.
func (e *Executor) EnsureVersionTable(ctx context.Context) error {
	if _, err := e.db.ExecContext(ctx, versionTableSchema); err != nil {
		return &Error{Operation: "ensure version table", Err: err}
	}
	return nil
}

// Applied returns the recorded migrations keyed by version.
func (e *Executor) Applied(ctx context.Context) (map[int]appliedMigration, error) {
	rows, err := e.db.QueryContext(ctx, "SELECT version, checksum FROM schema_migrations")
	if err != nil {
		return nil, &Error{Operation: "list applied", Err: err}
	}
	defer rows.Close()

	applied := make(map[int]appliedMigration)
	for rows.Next() {
		var m appliedMigration
		if err := rows.Scan(&m.Version, &m.Checksum); err != nil {
			return nil, &Error{Operation: "list applied", Err: err}
		}
		applied[m.Version] = m
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Operation: "list applied", Err: err}
	}
	return applied, nil
}

// Apply runs a single migration inside a transaction and records it in the
// version table. Either both the schema change and its record commit, or
// neither does.
func (e *Executor) Apply(ctx context.Context, m Migration) error {
	started := time.Now()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return &Error{Version: m.Version, Operation: "begin", Err: err}
	}

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		_ = tx.Rollback()
		return &Error{
			Version:   m.Version,
			Operation: "apply",
			Err:       fmt.Errorf("%w: %v", ErrMigrationFailed, err),
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO schema_migrations (version, name, checksum, applied_at, execution_time_ms)
		VALUES (?, ?, ?, ?, ?)
	`, m.Version, m.Name, m.Checksum, started.UTC().Format(time.RFC3339), time.Since(started).Milliseconds())
	if err != nil {
		_ = tx.Rollback()
		return &Error{Version: m.Version, Operation: "record", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &Error{Version: m.Version, Operation: "commit", Err: err}
	}
	return nil
}
