// Package sqlite provides a SQLite-backed implementation of driven.DocumentStore.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Documents are stored as JSON bodies in a single table keyed by
// collection and id, and Find returns them in insertion order.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.tramites/data/documents.db
package sqlite
