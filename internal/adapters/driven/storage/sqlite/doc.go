// Package sqlite provides a SQLite-based implementation of driven.RecordStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Records are kept in the same
// one-line-per-entity encoding the text backend writes, so switching backends
// never changes what a record looks like.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored as gradebook.db in the configured data directory.
package sqlite
