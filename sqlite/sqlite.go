// Package sqlite provides the SQLite-backed record store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// The maintenance utility may hold the file while a session writes.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Path returns the database location.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the web_pages table if it doesn't exist. Sequence
// columns hold JSON arrays. Tables created without content_hash gain the
// column before the indexes are built.
func (db *DB) createSchema() error {
	table := `
		CREATE TABLE IF NOT EXISTS web_pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			headings TEXT NOT NULL DEFAULT '[]',
			paragraphs TEXT NOT NULL DEFAULT '[]',
			lists TEXT NOT NULL DEFAULT '[]',
			code_snippets TEXT NOT NULL DEFAULT '[]',
			publication_date TEXT NOT NULL,
			content_hash TEXT NOT NULL DEFAULT ''
		);
	`
	if _, err := db.db.Exec(table); err != nil {
		return err
	}

	has, err := db.hasColumn("web_pages", "content_hash")
	if err != nil {
		return err
	}
	if !has {
		if _, err := db.db.Exec(`ALTER TABLE web_pages ADD COLUMN content_hash TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("failed to add content_hash column: %w", err)
		}
	}

	indexes := `
		CREATE INDEX IF NOT EXISTS idx_web_pages_url ON web_pages(url);
		CREATE INDEX IF NOT EXISTS idx_web_pages_content_hash ON web_pages(content_hash);
	`
	_, err = db.db.Exec(indexes)
	return err
}

// hasColumn reports whether table has a column named column.
func (db *DB) hasColumn(table, column string) (bool, error) {
	rows, err := db.db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
