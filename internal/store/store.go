package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// FormatVersion is the library layout this build reads and writes. It is
// stored in PRAGMA user_version; 0 marks a file that has never been
// initialized.
const FormatVersion = 1

// connParams configure every connection through go-sqlite3 DSN options,
// so pooled connections share them.
var connParams = url.Values{
	"_journal_mode": {"WAL"},
	"_synchronous":  {"NORMAL"},
	"_busy_timeout": {"5000"},
	"_foreign_keys": {"on"},
}

// Store is a SQLite catalog library.
type Store struct {
	db *sql.DB
}

// FormatVersionError reports a library written by a newer thermex.
type FormatVersionError struct {
	Path    string
	Version int
}

func (e *FormatVersionError) Error() string {
	return fmt.Sprintf("catalog library %s has format version %d, this build supports up to %d",
		e.Path, e.Version, FormatVersion)
}

// IsFormatVersion returns true if err is, or wraps, a FormatVersionError.
func IsFormatVersion(err error) bool {
	var fv *FormatVersionError
	return errors.As(err, &fv)
}

// Open creates or opens the catalog library at path. A new file is
// initialized with the current schema; an existing one must not have a
// newer format version.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?"+connParams.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)

	if err := initialize(db, path); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initialize(db *sql.DB, path string) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read format version: %w", err)
	}
	if version > FormatVersion {
		return &FormatVersionError{Path: path, Version: version}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if version < FormatVersion {
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", FormatVersion)); err != nil {
			return fmt.Errorf("failed to set format version: %w", err)
		}
	}
	return tx.Commit()
}

// pragma returns the current value of a pragma as text.
func (s *Store) pragma(name string) (string, error) {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return "", fmt.Errorf("failed to query %s: %w", name, err)
	}
	return value, nil
}
