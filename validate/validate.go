package validate

import (
	"context"

	"github.com/dshills/lineedit/document"
)

// ValidationError reports rejected input. It is a value, not a fault: a
// validator returning one has run successfully.
type ValidationError struct {
	// CursorPosition is where the cursor should be moved to show the
	// problem.
	CursorPosition int
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Message }

// Validator checks whether document text is acceptable input.
//
// Validate returns nil for valid input, a *ValidationError for rejected
// input, and any other error for a validator fault.
type Validator interface {
	Validate(doc *document.Document) error
}

// AsyncValidator is a Validator whose computation may block; the buffer runs
// it on a background goroutine under single-flight discipline.
type AsyncValidator interface {
	ValidateAsync(ctx context.Context, doc *document.Document) error
}

// Func adapts a function to the Validator interface.
type Func func(doc *document.Document) error

// Validate implements Validator.
func (f Func) Validate(doc *document.Document) error { return f(doc) }
