package completion

import (
	"context"

	"github.com/dshills/lineedit/document"
)

// Completion is one completion candidate.
type Completion struct {
	// Text is the replacement text.
	Text string
	// StartPosition is the relative offset (<= 0) from the cursor to the
	// start of the text being replaced. 0 inserts at the cursor.
	StartPosition int
	// Display optionally overrides Text in completion menus.
	Display string
	// Description is an optional one-line annotation.
	Description string
}

// DisplayText returns the menu text for the candidate.
func (c Completion) DisplayText() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Text
}

// Trigger carries the reason a completion run was started.
type Trigger struct {
	// TextInserted is true when the run follows a text insertion.
	TextInserted bool
	// Requested is true when the user explicitly asked for completions.
	Requested bool
}

// Completer produces completion candidates for a document.
type Completer interface {
	Complete(doc *document.Document, trigger Trigger) ([]Completion, error)
}

// AsyncCompleter is a Completer whose computation may block; the buffer runs
// it on a background goroutine under single-flight discipline.
type AsyncCompleter interface {
	CompleteAsync(ctx context.Context, doc *document.Document, trigger Trigger) ([]Completion, error)
}

// Func adapts a function to the Completer interface.
type Func func(doc *document.Document, trigger Trigger) ([]Completion, error)

// Complete implements Completer.
func (f Func) Complete(doc *document.Document, trigger Trigger) ([]Completion, error) {
	return f(doc, trigger)
}
