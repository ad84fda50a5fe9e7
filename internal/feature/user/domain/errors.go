// Package domain defines the failure kinds raised by the user feature.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The set is closed; anything that is not a *Error
// is treated as KindUnclassified by the transport layer.
type Kind int

const (
	KindUnclassified Kind = iota
	KindValidationFailed
	KindInvalidInput
	KindMissingParameter
	KindUserNotFound
	KindDuplicateUser
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "ValidationFailed"
	case KindInvalidInput:
		return "InvalidInput"
	case KindMissingParameter:
		return "MissingParameter"
	case KindUserNotFound:
		return "UserNotFound"
	case KindDuplicateUser:
		return "DuplicateUser"
	default:
		return "Unclassified"
	}
}

// Error is a classified failure.
// Details is only set for KindValidationFailed; Param only for KindMissingParameter.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Param   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error of the same kind, so that
// errors.Is(NotFound("a@b.io"), ErrUserNotFound) holds.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks. Adapters return these directly.
var (
	ErrUserNotFound  = &Error{Kind: KindUserNotFound, Message: "user not found"}
	ErrDuplicateUser = &Error{Kind: KindDuplicateUser, Message: "user already exists"}
)

// NotFound reports that no user is registered under email.
func NotFound(email string) *Error {
	return &Error{Kind: KindUserNotFound, Message: fmt.Sprintf("User with email %s not found", email)}
}

// Duplicate reports that a user with email is already registered.
func Duplicate(email string) *Error {
	return &Error{Kind: KindDuplicateUser, Message: fmt.Sprintf("User with email %s already exists", email)}
}

// InvalidInput reports a single bad value.
func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// MissingParameter reports an absent required query parameter.
func MissingParameter(name string) *Error {
	return &Error{
		Kind:    KindMissingParameter,
		Message: "Missing required parameter: " + name,
		Param:   name,
	}
}

// ValidationFailed carries every "field: message" violation found in a request body.
func ValidationFailed(details []string) *Error {
	return &Error{Kind: KindValidationFailed, Message: "Invalid input data", Details: details}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnclassified
}
