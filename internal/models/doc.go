// Package models defines the core domain models for the address book.
//
// # Models
//
//   - Name: the contact's display name, also the address book key
//   - Phone: a validated 10-digit phone number
//   - Birthday: a validated calendar date entered as DD.MM.YYYY
//   - Record: one contact owning a Name, its Phones and an optional Birthday
//
// Each field type is constructed through its own validating constructor
// (NewName, NewPhone, NewBirthday), so a value of that type always holds
// valid data. Construction failures are reported as *UserError values
// wrapping ErrInvalidFormat.
//
// # Errors
//
// User-facing failures carry one of three kinds:
//   - ErrInvalidFormat: malformed phone or birthday text
//   - ErrNotFound: a referenced contact or phone is absent
//   - ErrInsufficientArguments: a command was given too few arguments
//
// Callers branch on the kind with errors.Is and show Message to the operator.
package models
