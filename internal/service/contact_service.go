// Package service implements the assistant's commands on top of an address book.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/addressbook/internal/book"
	"github.com/mmynk/addressbook/internal/calendar"
	"github.com/mmynk/addressbook/internal/models"
)

// Handler runs one command with its positional arguments and returns the
// text to show the operator. Failures the operator can fix are returned as
// *models.UserError.
type Handler func(ctx context.Context, args []string) (string, error)

const contactNotFound = "Contact not found."

// ContactService implements the contact commands.
type ContactService struct {
	book   *book.AddressBook
	now    func() time.Time
	window int
}

// Option configures a ContactService.
type Option func(*ContactService)

// WithClock sets the function used to read the current date.
func WithClock(now func() time.Time) Option {
	return func(s *ContactService) {
		s.now = now
	}
}

// WithBirthdayWindow sets how many days ahead the birthdays command looks.
func WithBirthdayWindow(days int) Option {
	return func(s *ContactService) {
		if days >= 0 {
			s.window = days
		}
	}
}

// NewContactService creates a ContactService operating on b.
func NewContactService(b *book.AddressBook, opts ...Option) *ContactService {
	s := &ContactService{
		book:   b,
		now:    time.Now,
		window: calendar.DefaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handlers returns the command table, keyed by lower-case command name.
func (s *ContactService) Handlers() map[string]Handler {
	return map[string]Handler{
		"hello":         s.Hello,
		"add":           s.AddContact,
		"change":        s.ChangeContact,
		"phone":         s.ShowPhones,
		"all":           s.ShowAll,
		"add-birthday":  s.AddBirthday,
		"show-birthday": s.ShowBirthday,
		"birthdays":     s.Birthdays,
		"delete":        s.DeleteContact,
		"remove-phone":  s.RemovePhone,
	}
}

// requireArgs fails with message unless args has at least n elements.
func requireArgs(args []string, n int, message string) error {
	if len(args) < n {
		return models.NewInsufficientArgumentsError(message)
	}
	return nil
}

// Hello greets the operator.
func (s *ContactService) Hello(_ context.Context, _ []string) (string, error) {
	return "How can I help you?", nil
}

// AddContact adds a phone to a contact, creating the contact if needed.
// Args: name, phone.
func (s *ContactService) AddContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2, "Please provide both a name and a phone number."); err != nil {
		return "", err
	}
	name, phone := args[0], args[1]

	// Validate before touching the book so a bad phone never leaves an
	// empty contact behind.
	if _, err := models.NewPhone(phone); err != nil {
		return "", err
	}

	message := "Contact updated."
	record, ok := s.book.Find(name)
	if !ok {
		var err error
		record, err = models.NewRecord(name)
		if err != nil {
			return "", err
		}
		s.book.Add(record)
		message = "Contact added."
		slog.Debug("Contact created", "name", name)
	}

	if err := record.AddPhone(phone); err != nil {
		return "", err
	}
	return message, nil
}

// ChangeContact replaces one of a contact's phone numbers.
// Args: name, old phone, new phone.
func (s *ContactService) ChangeContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 3, "Please provide a name, old phone number, and new phone number."); err != nil {
		return "", err
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]

	record, ok := s.book.Find(name)
	if !ok {
		return "", models.NewNotFoundError(contactNotFound)
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return "Contact updated.", nil
}

// ShowPhones lists a contact's phone numbers. Args: name.
func (s *ContactService) ShowPhones(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1, "Please provide a name to show the phone numbers."); err != nil {
		return "", err
	}

	record, ok := s.book.Find(args[0])
	if !ok {
		return "", models.NewNotFoundError(contactNotFound)
	}
	return "User phones: " + strings.Join(record.PhoneNumbers(), ", "), nil
}

// ShowAll renders every contact.
func (s *ContactService) ShowAll(_ context.Context, _ []string) (string, error) {
	if s.book.Len() == 0 {
		return "No contacts saved.", nil
	}
	return s.book.String(), nil
}

// AddBirthday sets a contact's birthday. Args: name, DD.MM.YYYY.
func (s *ContactService) AddBirthday(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2, "Please provide both a name and a birthday (in DD.MM.YYYY format)."); err != nil {
		return "", err
	}

	record, ok := s.book.Find(args[0])
	if !ok {
		return "", models.NewNotFoundError(contactNotFound)
	}
	if err := record.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return "Birthday added.", nil
}

// ShowBirthday shows a contact's birthday. Args: name.
func (s *ContactService) ShowBirthday(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1, "Please provide a name to show the birthday."); err != nil {
		return "", err
	}

	record, ok := s.book.Find(args[0])
	if !ok {
		return "", models.NewNotFoundError(contactNotFound)
	}
	if record.Birthday == nil {
		return "Birthday: none set", nil
	}
	return "Birthday: " + record.Birthday.String(), nil
}

// Birthdays lists contacts whose birthday is within the configured window.
func (s *ContactService) Birthdays(_ context.Context, _ []string) (string, error) {
	entries := calendar.UpcomingWithin(s.book, s.now(), s.window)
	if len(entries) == 0 {
		return "No upcoming birthdays.", nil
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Name, e.Birthday)
	}
	noun := "birthday"
	if len(entries) > 1 {
		noun = "birthdays"
	}
	return fmt.Sprintf("Upcoming %s for %s", noun, strings.Join(parts, ", ")), nil
}

// DeleteContact removes a contact. Args: name.
func (s *ContactService) DeleteContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1, "Please provide a name to delete."); err != nil {
		return "", err
	}

	if _, ok := s.book.Find(args[0]); !ok {
		return "", models.NewNotFoundError(contactNotFound)
	}
	s.book.Delete(args[0])
	return "Contact deleted.", nil
}

// RemovePhone removes a phone number from a contact. Args: name, phone.
func (s *ContactService) RemovePhone(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2, "Please provide both a name and the phone number to remove."); err != nil {
		return "", err
	}

	record, ok := s.book.Find(args[0])
	if !ok {
		return "", models.NewNotFoundError(contactNotFound)
	}
	if _, ok := record.FindPhone(args[1]); !ok {
		return "", models.NewNotFoundError("Phone number not found.")
	}
	record.RemovePhone(args[1])
	return "Phone removed.", nil
}
