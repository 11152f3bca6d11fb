// Package book provides the address book: contact records keyed by name.
package book

import (
	"strings"

	"github.com/mmynk/addressbook/internal/models"
)

// AddressBook maps contact names to records and remembers the order in
// which names were first added. It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*models.Record
	order   []string
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*models.Record)}
}

// Add stores the record under its name, replacing any record already
// stored there. A replaced name keeps its original position.
func (b *AddressBook) Add(record *models.Record) {
	name := record.Name.String()
	if _, exists := b.records[name]; !exists {
		b.order = append(b.order, name)
	}
	b.records[name] = record
}

// Find returns the record stored under name. The boolean is false if there
// is none; a miss is an ordinary result, not an error.
func (b *AddressBook) Find(name string) (*models.Record, bool) {
	record, ok := b.records[name]
	return record, ok
}

// Delete removes the record stored under name, if any.
func (b *AddressBook) Delete(name string) {
	if _, exists := b.records[name]; !exists {
		return
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*models.Record {
	records := make([]*models.Record, 0, len(b.order))
	for _, name := range b.order {
		records = append(records, b.records[name])
	}
	return records
}

// String renders every record on its own line, in insertion order.
func (b *AddressBook) String() string {
	lines := make([]string, 0, len(b.order))
	for _, record := range b.Records() {
		lines = append(lines, record.String())
	}
	return strings.Join(lines, "\n")
}
