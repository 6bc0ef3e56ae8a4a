package migration

// Migration is a single versioned schema change loaded from the embedded
// filesystem.
type Migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

// appliedMigration mirrors a row of the schema_migrations table.
type appliedMigration struct {
	Version  int
	Checksum string
}
