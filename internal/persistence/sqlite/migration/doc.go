// Package migration applies the scheduler's SQL schema to a SQLite
// database.
//
// Migration files are embedded into the binary and applied in version
// order. Each file is executed inside its own transaction and recorded in
// the schema_migrations table together with a content checksum, so a
// modified migration is detected on the next start instead of silently
// diverging the schema.
package migration
