// Package errors defines the typed failures surfaced by the complaint
// lifecycle and the stores behind it.
//
// Every failure carries a Kind so callers (HTTP handlers, the admin CLI)
// can branch on the category without string matching:
//
//	if apperr.IsLocked(err) { ... }
//	if errors.Is(err, apperr.ErrConflict) { ... }
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindUnauthorized      Kind = "unauthorized"
	KindLocked            Kind = "locked"
	KindInvalidStatus     Kind = "invalid_status"
	KindInvalidState      Kind = "invalid_state"
	KindInvalidAssignment Kind = "invalid_assignment"
	KindDuplicateFeedback Kind = "duplicate_feedback"
	KindValidation        Kind = "validation_error"
	KindConflict          Kind = "conflict"
)

// Error is a classified failure. Err, when set, is the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind, so the sentinel
// values below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
	ErrLocked            = &Error{Kind: KindLocked}
	ErrInvalidStatus     = &Error{Kind: KindInvalidStatus}
	ErrInvalidState      = &Error{Kind: KindInvalidState}
	ErrInvalidAssignment = &Error{Kind: KindInvalidAssignment}
	ErrDuplicateFeedback = &Error{Kind: KindDuplicateFeedback}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrConflict          = &Error{Kind: KindConflict}
)

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// NewNotFound reports an unknown id.
func NewNotFound(msg string) *Error { return newError(KindNotFound, msg, nil) }

// NewForbidden reports an actor that is not the owner or lacks the role.
func NewForbidden(msg string) *Error { return newError(KindForbidden, msg, nil) }

// NewUnauthorized reports missing or invalid credentials.
func NewUnauthorized(msg string) *Error { return newError(KindUnauthorized, msg, nil) }

// NewLocked reports a mutation attempted on a locked complaint.
func NewLocked(msg string) *Error { return newError(KindLocked, msg, nil) }

// NewInvalidStatus reports an unrecognized status value.
func NewInvalidStatus(msg string) *Error { return newError(KindInvalidStatus, msg, nil) }

// NewInvalidState reports an operation that is illegal in the current state.
func NewInvalidState(msg string) *Error { return newError(KindInvalidState, msg, nil) }

// NewInvalidAssignment reports an inactive or category-mismatched member.
func NewInvalidAssignment(msg string) *Error { return newError(KindInvalidAssignment, msg, nil) }

// NewDuplicateFeedback reports a second feedback write.
func NewDuplicateFeedback(msg string) *Error { return newError(KindDuplicateFeedback, msg, nil) }

// NewValidation reports malformed input fields.
func NewValidation(msg string) *Error { return newError(KindValidation, msg, nil) }

// NewConflict reports a concurrent write that lost the version race.
// The caller should reload and retry.
func NewConflict(msg string, err error) *Error { return newError(KindConflict, msg, err) }

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsNotFound checks if the error is a not-found error
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsForbidden checks if the error is a forbidden error
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsLocked checks if the error is a locked error
func IsLocked(err error) bool { return KindOf(err) == KindLocked }

// IsConflict checks if the error is a version conflict
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsInvalidAssignment checks if the error is an assignment rejection
func IsInvalidAssignment(err error) bool { return KindOf(err) == KindInvalidAssignment }

// IsDuplicateFeedback checks if the error is a duplicate feedback error
func IsDuplicateFeedback(err error) bool { return KindOf(err) == KindDuplicateFeedback }
