// Package storage provides abstractions for persisting the address book.
package storage

import (
	"context"

	"github.com/mmynk/addressbook/internal/book"
)

// Store loads and saves the whole address book.
// This abstraction allows swapping storage backends (SQLite, YAML, etc.)
// without changing the command layer.
type Store interface {
	// Load reads the saved address book. It returns an empty book if
	// nothing has been saved yet.
	Load(ctx context.Context) (*book.AddressBook, error)

	// Save replaces the saved address book with b. Either all of b is
	// written or the previous state is kept.
	Save(ctx context.Context, b *book.AddressBook) error

	// Close releases any resources held by the store.
	Close() error
}
