// Package flags stores small key-value flags that live outside the
// vault's JSON collection files, such as whether onboarding finished.
package flags

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const keyOnboardingDone = "onboarding_done"

// Store is a SQLite-backed flag store. One per installation.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the flag database at path and runs migrations.
// Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open flags db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping flags db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the flag value, or "" and false when unset.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM flags WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get flag %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a flag value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO flags (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set flag %q: %w", key, err)
	}
	return nil
}

// Delete removes a flag. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM flags WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete flag %q: %w", key, err)
	}
	return nil
}

// OnboardingComplete reports whether onboarding has finished. Unset or
// unreadable flags count as not complete.
func (s *Store) OnboardingComplete() bool {
	value, ok, err := s.Get(keyOnboardingDone)
	if err != nil || !ok {
		return false
	}
	return value == "true"
}

// SetOnboardingComplete records the onboarding state.
func (s *Store) SetOnboardingComplete(done bool) error {
	if !done {
		return s.Delete(keyOnboardingDone)
	}
	return s.Set(keyOnboardingDone, "true")
}
