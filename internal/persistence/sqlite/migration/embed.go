package migration

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"
)

//go:embed sql/*.sql
var files embed.FS

// Run applies the scheduler's embedded schema migrations to db.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return NewManager(files, "sql", db, logger).Run(ctx)
}
