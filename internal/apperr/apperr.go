package apperr

import (
	"errors"
	"strings"
)

// Kind classifies a failure so the request boundary can pick a result kind.
type Kind int

const (
	// Internal is a store access failure (or anything unclassified).
	Internal Kind = iota
	Validation
	BadInput
	NotFound
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case BadInput:
		return "bad_input"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	}
	return "internal"
}

// Error is the error type returned by services and repositories.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return e.Kind.String()
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidation(msg string) *Error { return &Error{Kind: Validation, Message: msg} }

func NewForbidden(msg string) *Error { return &Error{Kind: Forbidden, Message: msg} }

func NewNotFound(msg string) *Error { return &Error{Kind: NotFound, Message: msg} }

// NewBadInput wraps a malformed id or payload failure.
func NewBadInput(op string, err error) *Error { return &Error{Kind: BadInput, Op: op, Err: err} }

// NewInternal wraps an infrastructure failure.
func NewInternal(op string, err error) *Error { return &Error{Kind: Internal, Op: op, Err: err} }

// KindOf returns the kind carried by err; errors without one are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// MessageOf returns the human-readable message attached to err, if any.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
