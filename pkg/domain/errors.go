package domain

import "fmt"

// Kind classifies a domain error so the transport layer can pick a status
// code without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	// KindAccessDenied is rendered to clients exactly like KindNotFound.
	// This is a deliberate policy: a caller probing a resource they cannot
	// touch must not learn that the resource exists.
	KindAccessDenied
	KindValidation
	KindConflict
	KindUnsupportedState
)

// Error is the kinded error used across services and repositories.
type Error struct {
	kind    Kind
	message string
}

// Error returns the human-readable message.
func (e *Error) Error() string { return e.message }

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// NewNotFoundError reports that a resource with the given id does not exist.
func NewNotFoundError(resource, id string) error {
	return &Error{kind: KindNotFound, message: fmt.Sprintf("%s with id %s not found", resource, id)}
}

// NewAccessDeniedError reports a denied action. See KindAccessDenied for
// how this renders externally.
func NewAccessDeniedError(message string) error {
	return &Error{kind: KindAccessDenied, message: message}
}

// NewValidationError reports semantically invalid input.
func NewValidationError(message string) error {
	return &Error{kind: KindValidation, message: message}
}

// NewConflictError reports a uniqueness or concurrent-modification conflict.
func NewConflictError(message string) error {
	return &Error{kind: KindConflict, message: message}
}

// NewUnsupportedStateError reports an unrecognized state filter value.
func NewUnsupportedStateError(message string) error {
	return &Error{kind: KindUnsupportedState, message: message}
}

// KindOf extracts the Kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if de, ok := err.(*Error); ok {
		return de.kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsValidation reports whether err is a validation domain error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsAccessDenied reports whether err is an access-denied domain error.
func IsAccessDenied(err error) bool { return KindOf(err) == KindAccessDenied }

// IsConflict reports whether err is a conflict domain error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
