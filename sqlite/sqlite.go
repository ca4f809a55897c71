// Package sqlite searches Dash docset indexes stored in SQLite databases.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/fwojciec/dashdoc"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a read-only connection to one docset index.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance for the index at path.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the index read-only and checks that it has a searchIndex table.
func (db *DB) Open() error {
	dsn := (&url.URL{Scheme: "file", OmitHost: true, Path: db.path, RawQuery: "mode=ro"}).String()
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}

	// One reader per request is all a docset index ever sees.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to index: %w", err)
	}

	// Wait for a concurrent writer (e.g. a docset update) instead of
	// failing with "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := conn.Exec("PRAGMA query_only = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable query_only: %w", err)
	}

	db.db = conn

	if err := db.checkSchema(); err != nil {
		conn.Close()
		db.db = nil
		return err
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows. Statements
// that write fail, as the index is opened read-only.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// checkSchema verifies the index uses the searchIndex layout.
func (db *DB) checkSchema() error {
	var n int
	err := db.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'searchIndex'",
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to read index schema: %w", err)
	}
	if n == 0 {
		return dashdoc.Errorf(dashdoc.EINVALID, "index %s has no searchIndex table", db.path)
	}
	return nil
}
