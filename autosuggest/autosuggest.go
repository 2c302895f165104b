package autosuggest

import (
	"context"
	"strings"

	"github.com/dshills/lineedit/document"
	"github.com/dshills/lineedit/history"
)

// Suggestion is ghost text proposed for insertion after the cursor.
type Suggestion struct {
	Text string
}

// AutoSuggest proposes a continuation of the current input. A nil suggestion
// with a nil error means "nothing to suggest".
type AutoSuggest interface {
	Suggest(doc *document.Document) (*Suggestion, error)
}

// AsyncAutoSuggest is an AutoSuggest whose computation may block; the buffer
// runs it on a background goroutine under single-flight discipline.
type AsyncAutoSuggest interface {
	SuggestAsync(ctx context.Context, doc *document.Document) (*Suggestion, error)
}

// Func adapts a function to the AutoSuggest interface.
type Func func(doc *document.Document) (*Suggestion, error)

// Suggest implements AutoSuggest.
func (f Func) Suggest(doc *document.Document) (*Suggestion, error) { return f(doc) }

// FromHistory suggests the completion of the current line from the most
// recent matching history entry, the way fish and modern shells do.
type FromHistory struct {
	hist history.History
}

// NewFromHistory creates a history-backed suggester.
func NewFromHistory(hist history.History) *FromHistory {
	return &FromHistory{hist: hist}
}

// Suggest implements AutoSuggest.
func (s *FromHistory) Suggest(doc *document.Document) (*Suggestion, error) {
	// Only suggest on the last line with the cursor at the end.
	if !doc.OnLastLine() || !doc.IsCursorAtEnd() {
		return nil, nil
	}
	prefix := doc.CurrentLineBeforeCursor()
	if prefix == "" {
		return nil, nil
	}

	entries, err := s.hist.Entries()
	if err != nil {
		return nil, err
	}

	for i := len(entries) - 1; i >= 0; i-- {
		for _, line := range strings.Split(entries[i], "\n") {
			if len(line) > len(prefix) && strings.HasPrefix(line, prefix) {
				return &Suggestion{Text: line[len(prefix):]}, nil
			}
		}
	}
	return nil, nil
}
