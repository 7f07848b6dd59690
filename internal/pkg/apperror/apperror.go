// Package apperror defines the failure kinds shared by every domain package.
//
// Domain sentinels are built with New so that callers can match either the
// precise sentinel (errors.Is(err, attendance.ErrAlreadyClockedIn)) or the
// kind (errors.Is(err, apperror.ErrStateConflict)).
package apperror

import (
	"errors"
	"fmt"
)

// Failure kinds
var (
	ErrValidation    = errors.New("validation failed")
	ErrStateConflict = errors.New("state conflict")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnavailable   = errors.New("service unavailable")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// New returns a sentinel error of the given kind.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Unavailable marks a store or collaborator failure.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// KindOf returns the failure kind carried by err, or nil when err has none.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrStateConflict, ErrNotFound, ErrConflict, ErrUnavailable} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
