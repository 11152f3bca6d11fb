package models

import (
	"fmt"
	"strings"
)

// Record is one contact: a name, its phone numbers in the order they were
// added, and an optional birthday.
type Record struct {
	// Name identifies the record in the address book.
	Name Name

	// Phones are kept in insertion order. The same number may appear twice.
	Phones []Phone

	// Birthday is nil until one is set.
	Birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{Name: n}, nil
}

// AddPhone validates text and appends it to the phone list.
// The list is left untouched if text is not a valid phone number.
func (r *Record) AddPhone(text string) error {
	phone, err := NewPhone(text)
	if err != nil {
		return err
	}
	r.Phones = append(r.Phones, phone)
	return nil
}

// RemovePhone removes every phone equal to text. Missing numbers are ignored.
func (r *Record) RemovePhone(text string) {
	kept := r.Phones[:0]
	for _, p := range r.Phones {
		if p.value != text {
			kept = append(kept, p)
		}
	}
	r.Phones = kept
}

// EditPhone replaces every phone equal to oldText with newText.
// It returns an ErrNotFound error if no phone equals oldText and an
// ErrInvalidFormat error if newText is not a valid phone number; in both
// cases the phone list is unchanged.
func (r *Record) EditPhone(oldText, newText string) error {
	var matches []int
	for i, p := range r.Phones {
		if p.value == oldText {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return NewNotFoundError("Phone number not found.")
	}

	phone, err := NewPhone(newText)
	if err != nil {
		return err
	}
	for _, i := range matches {
		r.Phones[i] = phone
	}
	return nil
}

// FindPhone returns the phone equal to text, if the record has one.
func (r *Record) FindPhone(text string) (Phone, bool) {
	for _, p := range r.Phones {
		if p.value == text {
			return p, true
		}
	}
	return Phone{}, false
}

// AddBirthday validates text and sets it as the birthday, replacing any
// previous one.
func (r *Record) AddBirthday(text string) error {
	b, err := NewBirthday(text)
	if err != nil {
		return err
	}
	r.Birthday = &b
	return nil
}

// PhoneNumbers returns the phone numbers as plain strings.
func (r *Record) PhoneNumbers() []string {
	numbers := make([]string, len(r.Phones))
	for i, p := range r.Phones {
		numbers[i] = p.value
	}
	return numbers
}

// String renders the record as a single display line.
func (r *Record) String() string {
	birthday := "none"
	if r.Birthday != nil {
		birthday = r.Birthday.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s",
		r.Name, strings.Join(r.PhoneNumbers(), "; "), birthday)
}
