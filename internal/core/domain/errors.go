package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Persistence-level sentinels. Services translate these into taxonomy errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrTodoNotFound = errors.New("todo not found")
)

// Kind classifies a failure that has a fixed HTTP mapping.
type Kind string

const (
	KindMissingToken       Kind = "missing_token"
	KindInvalidToken       Kind = "invalid_token"
	KindExpiredToken       Kind = "expired_token"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindActorNotFound      Kind = "actor_not_found"
	KindForbidden          Kind = "forbidden"
	KindRecordNotFound     Kind = "record_not_found"
	KindRecordInvalid      Kind = "record_invalid"
)

var kindStatus = map[Kind]int{
	KindMissingToken:       http.StatusUnauthorized,
	KindInvalidToken:       http.StatusUnauthorized,
	KindExpiredToken:       http.StatusUnauthorized,
	KindInvalidCredentials: http.StatusUnauthorized,
	KindActorNotFound:      http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindRecordNotFound:     http.StatusNotFound,
	KindRecordInvalid:      http.StatusUnprocessableEntity,
}

// Default messages. Token and actor failures share one message so a client
// cannot tell which check rejected it.
var kindMessage = map[Kind]string{
	KindMissingToken:       "Authentication Failed",
	KindInvalidToken:       "Authentication Failed",
	KindExpiredToken:       "Token has expired",
	KindInvalidCredentials: "Could not validate user.",
	KindActorNotFound:      "Authentication Failed",
	KindForbidden:          "Admin access required",
	KindRecordNotFound:     "Record not found",
	KindRecordInvalid:      "Record is invalid",
}

// Status returns the HTTP status code for k, or 500 for an unknown kind.
func (k Kind) Status() int {
	if s, ok := kindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a taxonomy error. It is created where the failure is detected and
// rendered exactly once by the HTTP error handler.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	cause   error
}

// NewError builds a taxonomy error of the given kind. An empty message falls
// back to the kind's default.
func NewError(kind Kind, message string) *Error {
	if message == "" {
		message = kindMessage[kind]
	}
	return &Error{Kind: kind, Message: message, Status: kind.Status()}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrForbidden)
// holds regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// WithCause returns a copy of e chained to cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.cause = cause
	return &c
}

// WithMessage returns a copy of e carrying msg.
func (e *Error) WithMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

// AsError extracts the taxonomy error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Prototypes for errors.Is checks and for returning the default message.
// Never mutate them; use WithCause / WithMessage.
var (
	ErrMissingToken       = NewError(KindMissingToken, "")
	ErrInvalidToken       = NewError(KindInvalidToken, "")
	ErrExpiredToken       = NewError(KindExpiredToken, "")
	ErrInvalidCredentials = NewError(KindInvalidCredentials, "")
	ErrActorNotFound      = NewError(KindActorNotFound, "")
	ErrForbidden          = NewError(KindForbidden, "")
	ErrRecordNotFound     = NewError(KindRecordNotFound, "")
	ErrRecordInvalid      = NewError(KindRecordInvalid, "")
)
