// Package apperr classifies business errors into the three kinds the
// transport layer knows how to map: validation, conflict and not-found.
package apperr

import "errors"

type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
)

// Error is a classified business error. Domain packages declare their
// sentinel errors with the constructors below so callers can keep using
// errors.Is while the transport layer switches on the kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func IsValidation(err error) bool {
	return kindOf(err) == KindValidation
}

func IsConflict(err error) bool {
	return kindOf(err) == KindConflict
}

func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

func kindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}
