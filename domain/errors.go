package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Kind identifies a business rule violation. Callers switch on Kind, never on message text.
type Kind string

const (
	KindNotFound                    Kind = "not_found"
	KindDuplicateName               Kind = "duplicate_name"
	KindRequiredFieldMissing        Kind = "required_field_missing"
	KindInvalidParent               Kind = "invalid_parent"
	KindParentHasIncompleteSubtasks Kind = "parent_has_incomplete_subtasks"
	KindSubtaskRecurrenceNotAllowed Kind = "subtask_recurrence_not_allowed"
	KindAuthenticationFailure       Kind = "authentication_failure"
	KindDuplicateUsername           Kind = "duplicate_username"
	KindInvalidFormat               Kind = "invalid_format"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches sentinel errors by code and kind so that wrapped copies still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Kind == t.Kind && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func newKindError(code ErrorCode, kind Kind, field, message string) *Error {
	return &Error{Code: code, Kind: kind, Field: field, Message: message}
}

// Common domain errors.
var (
	ErrUserNotFound    = newKindError(ErrCodeNotFound, KindNotFound, "", "user not found")
	ErrTodoNotFound    = newKindError(ErrCodeNotFound, KindNotFound, "", "todo not found")
	ErrSessionNotFound = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "could not validate credentials")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "invalid payload")

	ErrDuplicateName               = newKindError(ErrCodeValidation, KindDuplicateName, "name", "name already used by an active todo")
	ErrInvalidParent               = newKindError(ErrCodeConflict, KindInvalidParent, "parentId", "parent todo does not exist or is itself a subtask")
	ErrParentHasIncompleteSubtasks = newKindError(ErrCodeConflict, KindParentHasIncompleteSubtasks, "progressStatus", "todo has incomplete subtasks")
	ErrSubtaskRecurrence           = newKindError(ErrCodeConflict, KindSubtaskRecurrenceNotAllowed, "recurrenceType", "subtasks cannot recur")
	ErrInvalidCredentials          = newKindError(ErrCodeUnauthorized, KindAuthenticationFailure, "", "incorrect credentials")
	ErrDuplicateUsername           = newKindError(ErrCodeConflict, KindDuplicateUsername, "username", "username already registered")
)

// RequiredFieldMissing reports a structurally required field that is absent or null.
func RequiredFieldMissing(field string) *Error {
	return newKindError(ErrCodeValidation, KindRequiredFieldMissing, field, fmt.Sprintf("%s is required", field))
}

// InvalidFormat reports a field whose value does not match the expected shape.
func InvalidFormat(field, reason string) *Error {
	return newKindError(ErrCodeValidation, KindInvalidFormat, field, fmt.Sprintf("%s: %s", field, reason))
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// IsKind reports whether err carries the given business kind.
func IsKind(err error, kind Kind) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Kind == kind
	}
	return false
}

// KindOf returns the business kind of err, or "" for non-domain errors.
func KindOf(err error) Kind {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Kind
	}
	return ""
}
