// Package sqlite implements the repository interfaces on SQLite.
//
// WHY modernc.org/sqlite?
// It is a pure-Go translation of SQLite — no CGo, no C toolchain,
// cross-compiles anywhere Go does. The driver registers itself under
// the name "sqlite" via its init() (hence the blank import below).
//
// CASCADE DELETES LIVE IN THE SCHEMA:
// Every child table declares ON DELETE CASCADE on its parent foreign
// key, so deleting a user or a course removes the whole subtree in the
// storage engine. The delete statements still run inside explicit
// transactions (see user.go, course.go) so the all-or-nothing guarantee
// is stated in our code, not inherited from engine defaults. SQLite
// only honours the cascades when PRAGMA foreign_keys is ON — it is OFF
// by default for backwards compatibility, so New() enables it on every
// connection via the DSN.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"assistor/internal/apperror"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB pool and implements every repository interface in
// internal/repository. One type for all of them keeps the wiring in
// server.go down to a single value.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at path and runs migrations.
// Use ":memory:" in tests for a throwaway database.
//
// The pragmas ride in the DSN because they are per-connection state:
// an Exec would configure whichever pooled connection it happened to
// run on and leave the rest with foreign keys off. WAL lets reads
// proceed during a write — without it SQLite locks the whole file per
// write, which stalls a web server.
func New(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pool connection to ":memory:" would otherwise get its own
	// empty database.
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. The server defers this on shutdown
// so the WAL is flushed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL DEFAULT '',
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL,
			updated_at    DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS courses (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title           TEXT NOT NULL,
			start_date      DATE,
			completion_date DATE,
			grade           TEXT NOT NULL DEFAULT '',
			provider        TEXT NOT NULL DEFAULT '',
			created_at      DATETIME NOT NULL,
			updated_at      DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_courses_user_id ON courses(user_id);

		CREATE TABLE IF NOT EXISTS notes (
			id         TEXT PRIMARY KEY,
			course_id  TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_course_id ON notes(course_id);

		CREATE TABLE IF NOT EXISTS files (
			id           TEXT PRIMARY KEY,
			course_id    TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			name         TEXT NOT NULL,
			category     TEXT NOT NULL,
			blob_ref     TEXT NOT NULL,
			content_type TEXT NOT NULL DEFAULT '',
			size         INTEGER NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_files_course_id ON files(course_id);

		CREATE TABLE IF NOT EXISTS links (
			id         TEXT PRIMARY KEY,
			course_id  TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			url        TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_links_course_id ON links(course_id);

		CREATE TABLE IF NOT EXISTS instructors (
			id         TEXT PRIMARY KEY,
			course_id  TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL DEFAULT '',
			email      TEXT,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_instructors_course_id ON instructors(course_id);
		-- Partial unique index: email is unique only when present.
		-- A plain UNIQUE column would allow at most one NULL-less blank.
		CREATE UNIQUE INDEX IF NOT EXISTS idx_instructors_email
			ON instructors(email) WHERE email IS NOT NULL AND email != '';

		CREATE TABLE IF NOT EXISTS reminders (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			time       DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reminders_user_id ON reminders(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// limitClause renders " LIMIT n" for bounded queries and nothing for
// unbounded ones. The limit value is formatted by the driver, not
// concatenated, so this stays injection-safe.
func limitClause(limit int) (string, []any) {
	if limit > 0 {
		return " LIMIT ?", []any{limit}
	}
	return "", nil
}

// uniqueViolation translates a driver unique-constraint error into the
// field error the services expect, or returns nil if err is something
// else. modernc.org/sqlite reports these as
// "constraint failed: UNIQUE constraint failed: users.username (2067)",
// so string matching on the table.column pair is the available hook —
// the pure-Go driver does not export a typed constraint error.
func uniqueViolation(err error, resource string, columns map[string]string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	for column, field := range columns {
		if strings.Contains(msg, column) {
			return apperror.Duplicate(resource, field)
		}
	}
	return nil
}
