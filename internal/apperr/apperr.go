// Package apperr defines the typed errors that carry an HTTP status from the
// core out to the controller boundary.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an Error. Two errors of the same Kind match under errors.Is.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnauthorized
	KindInvalidAuthenticatedUser
	KindAccountNotFound
	KindIncorrectPassword
	KindValidation
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidAuthenticatedUser:
		return "invalid_authenticated_user"
	case KindAccountNotFound:
		return "account_not_found"
	case KindIncorrectPassword:
		return "incorrect_password"
	case KindValidation:
		return "validation_error"
	case KindStorage:
		return "storage_error"
	default:
		return "unknown"
	}
}

// Error is a failure with a user-facing message and a numeric status.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is matching by kind.
var (
	ErrNotFound                 = &Error{Kind: KindNotFound}
	ErrUnauthorized             = &Error{Kind: KindUnauthorized}
	ErrInvalidAuthenticatedUser = &Error{Kind: KindInvalidAuthenticatedUser}
	ErrAccountNotFound          = &Error{Kind: KindAccountNotFound}
	ErrIncorrectPassword        = &Error{Kind: KindIncorrectPassword}
	ErrValidation               = &Error{Kind: KindValidation}
	ErrStorage                  = &Error{Kind: KindStorage}
)

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func InvalidAuthenticatedUser(cause error) *Error {
	return &Error{
		Kind:    KindInvalidAuthenticatedUser,
		Status:  http.StatusUnauthorized,
		Message: "Invalid authenticated user",
		Err:     cause,
	}
}

func AccountNotFound() *Error {
	return &Error{Kind: KindAccountNotFound, Status: http.StatusNotFound, Message: "This account doesn't exist"}
}

func IncorrectPassword() *Error {
	return &Error{Kind: KindIncorrectPassword, Status: http.StatusUnauthorized, Message: "Incorrect password"}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

// Storage wraps a persistence failure. The message shown to clients stays generic.
func Storage(cause error) *Error {
	return &Error{Kind: KindStorage, Status: http.StatusInternalServerError, Message: "Internal server error", Err: cause}
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
