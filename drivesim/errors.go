package drivesim

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrIO           ErrorKind = "io"
	ErrValidation   ErrorKind = "validation"
	ErrInvalidQuery ErrorKind = "invalid_query"
	ErrNotFound     ErrorKind = "not_found"
	ErrQuota        ErrorKind = "quota"
	ErrPermission   ErrorKind = "permission"
	ErrInternal     ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func ValidationError(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func InvalidQueryError(q string, cause error) *Error {
	return &Error{Kind: ErrInvalidQuery, Message: fmt.Sprintf("invalid query string: %q", q), Cause: cause}
}

func NotFoundError(what, id string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found: %s", what, id)}
}

func QuotaError(msg string) *Error {
	return &Error{Kind: ErrQuota, Message: msg}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
