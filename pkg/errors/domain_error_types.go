package errors

import "fmt"

// Annotation domain errors. Handlers compare against these with errors.Is
// or the Is* helpers; the HTTP layer maps them through ErrorHandler.

// ErrGroupCycle is returned when a membership change would make a group
// its own (transitive) ancestor.
var ErrGroupCycle = NewConflictError("group membership would create a cycle")

// ErrReplayInProgress is returned when a mutation arrives while an undo
// or redo replay holds the store.
var ErrReplayInProgress = NewConflictError("mutation rejected: undo/redo replay in progress")

// ErrMemberNotFound is returned when a group references a member id that
// does not resolve to an existing node.
func ErrMemberNotFound(memberID string) *AppError {
	return NewValidationError(fmt.Sprintf("member %q does not resolve to an existing node", memberID))
}

// ErrUnknownKind is returned when a node record carries a kind outside the
// supported set.
func ErrUnknownKind(kind string) *AppError {
	return NewValidationError(fmt.Sprintf("unknown node kind %q", kind))
}

// ErrInvalidGeometry is returned when a record carries non-finite or
// malformed geometry.
func ErrInvalidGeometry(id string) *AppError {
	return NewValidationError(fmt.Sprintf("node %q has invalid geometry", id))
}

// ErrAnnotationExists is returned when a create targets an id already
// present in the store.
func ErrAnnotationExists(id string) *AppError {
	return NewConflictError(fmt.Sprintf("annotation %q already exists", id))
}
