package service

import (
	"errors"

	"fambalance/internal/validation"
)

// Kind classifies a failed operation
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Sentinels for errors.Is matching against an *Error of the same kind
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

// Error is a domain failure carrying the message shown to the user
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func validationError(message string, cause error) error {
	return &Error{Kind: KindValidation, Message: message, Err: cause}
}

func notFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// invalid wraps a field validation failure
func invalid(err error) error {
	var verr validation.ValidationError
	if errors.As(err, &verr) {
		return &Error{Kind: KindValidation, Message: verr.Error(), Err: err}
	}
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

// UserMessage returns the text to show for err. Unexpected failures get a
// generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Ocorreu um erro inesperado. Tente novamente."
}

// KindOf returns the kind of err, or 0 when it is not a domain error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
