// Package yamlfile provides a storage.Store that keeps the address book in
// a single human-editable YAML file.
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/addressbook/internal/book"
	"github.com/mmynk/addressbook/internal/models"
	"github.com/mmynk/addressbook/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// document is the on-disk layout.
type document struct {
	Contacts []contact `yaml:"contacts"`
}

type contact struct {
	Name     string   `yaml:"name"`
	Phones   []string `yaml:"phones,omitempty"`
	Birthday string   `yaml:"birthday,omitempty"`
}

// Store reads and writes the address book at Path.
type Store struct {
	path string
}

// New returns a Store for path, creating its parent directory.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Load parses the file. A missing file is an empty address book.
func (s *Store) Load(_ context.Context) (*book.AddressBook, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return book.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}

	b := book.New()
	for _, c := range doc.Contacts {
		record, err := models.NewRecord(c.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid stored contact %q: %w", c.Name, err)
		}
		for _, number := range c.Phones {
			if err := record.AddPhone(number); err != nil {
				return nil, fmt.Errorf("invalid stored phone for %q: %w", c.Name, err)
			}
		}
		if c.Birthday != "" {
			if err := record.AddBirthday(c.Birthday); err != nil {
				return nil, fmt.Errorf("invalid stored birthday for %q: %w", c.Name, err)
			}
		}
		b.Add(record)
	}
	return b, nil
}

// Save writes b to a temporary file next to Path and renames it into
// place, so readers never observe a partial file.
func (s *Store) Save(_ context.Context, b *book.AddressBook) error {
	doc := document{Contacts: make([]contact, 0, b.Len())}
	for _, record := range b.Records() {
		c := contact{Name: record.Name.String(), Phones: record.PhoneNumbers()}
		if record.Birthday != nil {
			c.Birthday = record.Birthday.String()
		}
		doc.Contacts = append(doc.Contacts, c)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to encode address book: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *Store) Close() error {
	return nil
}
