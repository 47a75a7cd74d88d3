// Package apperr defines the error type shared by timeattack packages.
package apperr

import (
	"errors"
	"fmt"
)

// Error is a package-level error value with an optional message template and
// an optional wrapped cause.
type Error struct {
	Err     error
	Message string
	tmpl    string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

// Fmt returns a copy of the error with its message formatted with args. The
// copy still matches the original through errors.Is.
func (e *Error) Fmt(args ...any) *Error {
	tmpl := e.template()

	return &Error{
		Message: fmt.Sprintf(tmpl, args...),
		Err:     e.Err,
		tmpl:    tmpl,
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Err:     err,
		tmpl:    e.template(),
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same package-level error as e.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.template() == t.template()
}

func (e *Error) template() string {
	if e.tmpl != "" {
		return e.tmpl
	}

	return e.Message
}
