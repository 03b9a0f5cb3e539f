package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes the session pipeline reports.
// The HTTP layer maps kinds to status codes; it never looks at messages.
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "invalid_input"
	KindDisclaimerRequired ErrorKind = "disclaimer_required"
	KindNotFound           ErrorKind = "not_found"
	KindDataUnavailable    ErrorKind = "data_unavailable"
	KindGeneratorFailure   ErrorKind = "generator_failure"
	KindPersistence        ErrorKind = "persistence_error"
)

// Error carries a kind, a user-facing message and the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an *Error. err may be nil.
func NewError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindPersistence
// for anything unclassified.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindPersistence
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
