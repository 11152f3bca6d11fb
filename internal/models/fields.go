package models

import (
	"time"
)

const (
	// PhoneLength is the exact number of digits in a phone number.
	PhoneLength = 10

	// BirthdayLayout is the only accepted birthday format (DD.MM.YYYY).
	BirthdayLayout = "02.01.2006"

	phoneFormatMessage    = "Phone number must be 10 digits"
	birthdayFormatMessage = "Invalid date format. Use DD.MM.YYYY"
)

// Name is a contact's display name. It is never empty.
type Name struct {
	value string
}

// NewName validates that text is non-empty.
func NewName(text string) (Name, error) {
	if text == "" {
		return Name{}, NewInvalidFormatError("Contact name must not be empty")
	}
	return Name{value: text}, nil
}

// String returns the name as entered.
func (n Name) String() string {
	return n.value
}

// Phone is a phone number of exactly PhoneLength ASCII digits.
type Phone struct {
	value string
}

// NewPhone validates text as a phone number.
func NewPhone(text string) (Phone, error) {
	if len(text) != PhoneLength {
		return Phone{}, NewInvalidFormatError(phoneFormatMessage)
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return Phone{}, NewInvalidFormatError(phoneFormatMessage)
		}
	}
	return Phone{value: text}, nil
}

// String returns the phone number digits.
func (p Phone) String() string {
	return p.value
}

// Birthday is a calendar date. The time-of-day is always midnight UTC.
type Birthday struct {
	date time.Time
}

// NewBirthday parses text in DD.MM.YYYY form. The day and month must be two
// digits and the year four (0001 or later), and the result must be a real
// calendar date.
func NewBirthday(text string) (Birthday, error) {
	if len(text) != len(BirthdayLayout) {
		return Birthday{}, NewInvalidFormatError(birthdayFormatMessage)
	}
	date, err := time.Parse(BirthdayLayout, text)
	if err != nil || date.Year() < 1 {
		return Birthday{}, NewInvalidFormatError(birthdayFormatMessage)
	}
	return Birthday{date: date}, nil
}

// Date returns the birthday as a time at midnight UTC.
func (b Birthday) Date() time.Time {
	return b.date
}

// Occurrence returns the date the birthday falls on in the given year.
// A 29 February birthday falls on 1 March in years that are not leap years.
func (b Birthday) Occurrence(year int) time.Time {
	// time.Date normalizes Feb 29 of a non-leap year to Mar 1.
	return time.Date(year, b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
}

// String renders the birthday as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.date.Format(BirthdayLayout)
}
