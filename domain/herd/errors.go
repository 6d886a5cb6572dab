package herd

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a herd operation can produce.
// The set is closed: callers branch on kinds, never on message text.
type ErrorKind string

const (
	// KindEmptyInput marks a blank name, blank animal ID, or an empty
	// animal list where one is required.
	KindEmptyInput ErrorKind = "EmptyInput"

	// KindDuplicateName marks an attempt to create a herd whose name
	// already exists.
	KindDuplicateName ErrorKind = "DuplicateName"

	// KindNotFound marks a reference to a herd that does not exist.
	KindNotFound ErrorKind = "NotFound"

	// KindArchived marks an attempted mutation of an archived herd.
	KindArchived ErrorKind = "Archived"

	// KindAlreadyMember marks adding an animal that is already a member.
	KindAlreadyMember ErrorKind = "AlreadyMember"

	// KindNotMember marks referencing an animal that is not a member.
	KindNotMember ErrorKind = "NotMember"

	// KindSameHerd marks a two-herd operation given the same herd twice.
	KindSameHerd ErrorKind = "SameHerd"

	// KindConflict marks a concurrently committed change that
	// invalidated a precondition checked earlier in the same operation.
	// Retry-eligible.
	KindConflict ErrorKind = "Conflict"

	// KindDatabaseError marks an underlying storage failure.
	// Retry-eligible.
	KindDatabaseError ErrorKind = "DatabaseError"
)

// Error is the value returned by every failing herd operation.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// NewError constructs an Error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err. Errors that are not herd
// Errors (driver failures, context cancellation) classify as
// KindDatabaseError; nil has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var he *Error
	if errors.As(err, &he) {
		return he.Kind
	}
	return KindDatabaseError
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// Retryable reports whether the error may succeed on retry with
// unchanged input. Only Conflict and DatabaseError qualify.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindConflict, KindDatabaseError:
		return true
	}
	return false
}
