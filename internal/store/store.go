// Package store implements PostgreSQL persistence for journal entries,
// user preferences, and onboarding responses. Writes are atomic upserts
// keyed by the natural key (user id, plus entry date for journal entries),
// backed by the unique constraints created in internal/database.
package store

import "database/sql"

// Store provides typed access to the three resource tables.
type Store struct {
	db *sql.DB
}

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
