package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/addressbook/internal/book"
	"github.com/mmynk/addressbook/internal/models"
)

// Load reads every contact and its phones, in saved order.
// Stored values go back through the model constructors, so a row that
// fails validation is reported as an error instead of loaded.
func (s *SQLiteStore) Load(ctx context.Context) (*book.AddressBook, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, birthday FROM contacts ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	defer rows.Close()

	type row struct {
		id     string
		record *models.Record
	}
	var loaded []row

	for rows.Next() {
		var id, name string
		var birthday sql.NullString
		if err := rows.Scan(&id, &name, &birthday); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}

		record, err := models.NewRecord(name)
		if err != nil {
			return nil, fmt.Errorf("invalid stored contact %q: %w", name, err)
		}
		if birthday.Valid {
			if err := record.AddBirthday(birthday.String); err != nil {
				return nil, fmt.Errorf("invalid stored birthday for %q: %w", name, err)
			}
		}
		loaded = append(loaded, row{id: id, record: record})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	b := book.New()
	for _, r := range loaded {
		numbers, err := s.phonesFor(ctx, r.id)
		if err != nil {
			return nil, err
		}
		for _, number := range numbers {
			if err := r.record.AddPhone(number); err != nil {
				return nil, fmt.Errorf("invalid stored phone for %q: %w", r.record.Name, err)
			}
		}
		b.Add(r.record)
	}

	if savedAt, ok, err := s.LastSaved(ctx); err != nil {
		return nil, err
	} else if ok {
		slog.Debug("Loaded contacts from SQLite", "contacts", b.Len(), "saved_at", savedAt)
	}

	return b, nil
}

// LastSaved returns when the stored contacts were written. The boolean is
// false if nothing has been saved, or the last save was an empty book.
func (s *SQLiteStore) LastSaved(ctx context.Context) (time.Time, bool, error) {
	var savedAt sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(saved_at) FROM contacts").Scan(&savedAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get last save time: %w", err)
	}
	if !savedAt.Valid {
		return time.Time{}, false, nil
	}
	return time.Unix(savedAt.Int64, 0), true, nil
}

// phonesFor returns a contact's phone numbers in saved order.
func (s *SQLiteStore) phonesFor(ctx context.Context, contactID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT number FROM phones WHERE contact_id = ? ORDER BY position",
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get phones: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("failed to scan phone: %w", err)
		}
		numbers = append(numbers, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate phones: %w", err)
	}
	return numbers, nil
}
