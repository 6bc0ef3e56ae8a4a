package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
)

// Manager coordinates scanning and applying migrations.
type Manager struct {
	scanner  *Scanner
	executor *Executor
	logger   *slog.Logger
}

// NewManager creates a manager over the given filesystem and database.
func NewManager(fsys fs.FS, dir string, db *sql.DB, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		scanner:  NewScanner(fsys, dir),
		executor: NewExecutor(db),
		logger:   logger,
	}
}

// Run applies every pending migration in version order. Migrations already
// recorded in schema_migrations are verified against their checksum and
// skipped.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.executor.EnsureVersionTable(ctx); err != nil {
		return err
	}

	migrations, err := m.scanner.Scan()
	if err != nil {
		return err
	}

	applied, err := m.executor.Applied(ctx)
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if record, ok := applied[mig.Version]; ok {
			if record.Checksum != mig.Checksum {
				return &Error{
					Version:   mig.Version,
					Operation: "verify",
					Err:       fmt.Errorf("%w: %s", ErrChecksumMismatch, mig.Name),
				}
			}
			continue
		}

		m.logger.InfoContext(ctx, "applying migration",
			slog.Int("version", mig.Version),
			slog.String("name", mig.Name))

		if err := m.executor.Apply(ctx, mig); err != nil {
			return err
		}
	}

	return nil
}
