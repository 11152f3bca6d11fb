// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/addressbook/internal/book"
	"github.com/mmynk/addressbook/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces every stored contact with the contents of b in a single
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, b *book.AddressBook) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// foreign_keys is a per-connection pragma, so phones are cleared
	// explicitly rather than through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, "DELETE FROM phones"); err != nil {
		return fmt.Errorf("failed to clear phones: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM contacts"); err != nil {
		return fmt.Errorf("failed to clear contacts: %w", err)
	}

	savedAt := time.Now().Unix()
	for pos, record := range b.Records() {
		id := uuid.New().String()

		var birthday any
		if record.Birthday != nil {
			birthday = record.Birthday.String()
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO contacts (id, name, position, birthday, saved_at) VALUES (?, ?, ?, ?, ?)",
			id, record.Name.String(), pos, birthday, savedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert contact: %w", err)
		}

		for i, number := range record.PhoneNumbers() {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO phones (contact_id, position, number) VALUES (?, ?, ?)",
				id, i, number,
			)
			if err != nil {
				return fmt.Errorf("failed to insert phone: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
