// Package db owns the file-backed SQLite database: opening the shared handle
// and creating the schema. The handle is created once by the composition root
// and injected into repositories; nothing in this package holds ambient state.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if absent) the SQLite database at path and verifies the
// connection. Foreign key enforcement is enabled on every connection through
// the DSN, which the cascade and set-null rules in the schema depend on.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	handle, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// Single-operator application: one writer connection is all SQLite needs,
	// and it sidesteps SQLITE_BUSY between concurrent statements.
	handle.SetMaxOpenConns(1)

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}

	return handle, nil
}
