// Package calendar computes which contacts have birthdays coming up.
package calendar

import (
	"time"

	"github.com/mmynk/addressbook/internal/book"
	"github.com/mmynk/addressbook/internal/models"
)

// DefaultWindow is the number of days after today that still counts as
// upcoming. Today itself is always included.
const DefaultWindow = 7

// Entry is one contact with an upcoming birthday.
type Entry struct {
	Name     string
	Birthday models.Birthday

	// DaysUntil is 0 when the birthday is today.
	DaysUntil int
}

// Upcoming returns the contacts whose next birthday falls between today and
// DefaultWindow days after it, inclusive.
func Upcoming(b *book.AddressBook, today time.Time) []Entry {
	return UpcomingWithin(b, today, DefaultWindow)
}

// UpcomingWithin is Upcoming with a custom window in days.
// Entries are returned in address book order.
//
// Algorithm:
//   - take the birthday's occurrence in today's year
//   - if it is already past, take next year's occurrence instead
//   - include the contact if 0 <= days until occurrence <= window
func UpcomingWithin(b *book.AddressBook, today time.Time, window int) []Entry {
	start := dateOf(today)

	var entries []Entry
	for _, record := range b.Records() {
		if record.Birthday == nil {
			continue
		}

		next := record.Birthday.Occurrence(start.Year())
		if next.Before(start) {
			next = record.Birthday.Occurrence(start.Year() + 1)
		}

		days := daysBetween(start, next)
		if days >= 0 && days <= window {
			entries = append(entries, Entry{
				Name:      record.Name.String(),
				Birthday:  *record.Birthday,
				DaysUntil: days,
			})
		}
	}
	return entries
}

// dateOf drops the time of day and location, keeping the calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from a to b. Both must be UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
