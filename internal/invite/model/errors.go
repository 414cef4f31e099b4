package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySubmission indicates a submit with blank text.
	ErrEmptySubmission = errors.New("empty submission")
	// ErrDuplicateEntry indicates a submit of an email already in the team.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrInvalidFormat indicates a submit rejected by the format guard.
	ErrInvalidFormat = errors.New("invalid email format")
)

// Messages holds the user-facing feedback strings.
type Messages struct {
	Empty     string
	Duplicate string
	Invalid   string
	// Added is a format string receiving the committed email.
	Added string
}

// DefaultMessages returns the English feedback strings.
func DefaultMessages() Messages {
	return Messages{
		Empty:     "Please enter an email",
		Duplicate: "This email has already been added",
		Invalid:   "Please enter a valid email address",
		Added:     "%s added!",
	}
}

// For returns the message describing a validation error.
func (m Messages) For(err error) string {
	switch {
	case errors.Is(err, ErrEmptySubmission):
		return m.Empty
	case errors.Is(err, ErrDuplicateEntry):
		return m.Duplicate
	case errors.Is(err, ErrInvalidFormat):
		return m.Invalid
	default:
		return ""
	}
}

// AddedFor returns the confirmation message for email.
func (m Messages) AddedFor(email string) string {
	return fmt.Sprintf(m.Added, email)
}

// Classify maps the error message of s back to its validation error.
// It returns nil when s carries no error or an unknown message.
func (m Messages) Classify(s FormState) error {
	switch s.Error {
	case "":
		return nil
	case m.Empty:
		return ErrEmptySubmission
	case m.Duplicate:
		return ErrDuplicateEntry
	case m.Invalid:
		return ErrInvalidFormat
	default:
		return nil
	}
}
