package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrReadOnly is returned when a text mutation is attempted on a
	// read-only buffer. UI layers should treat it as a bell, not a fault.
	ErrReadOnly = errors.New("buffer is read-only")

	// ErrNoEditor is returned by OpenInEditor when no editor collaborator
	// was provided.
	ErrNoEditor = errors.New("no external editor configured")
)
