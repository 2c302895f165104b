package completion

import (
	"strings"

	"github.com/dshills/lineedit/document"
)

// WordCompleter completes the word before the cursor against a fixed word
// list with prefix matching.
type WordCompleter struct {
	words      []string
	ignoreCase bool
}

// NewWordCompleter creates a completer over the given words.
func NewWordCompleter(words []string, ignoreCase bool) *WordCompleter {
	return &WordCompleter{
		words:      append([]string(nil), words...),
		ignoreCase: ignoreCase,
	}
}

// Complete implements Completer.
func (w *WordCompleter) Complete(doc *document.Document, _ Trigger) ([]Completion, error) {
	word := doc.WordBeforeCursor()
	match := word
	if w.ignoreCase {
		match = strings.ToLower(match)
	}

	var out []Completion
	for _, candidate := range w.words {
		c := candidate
		if w.ignoreCase {
			c = strings.ToLower(c)
		}
		if strings.HasPrefix(c, match) {
			out = append(out, Completion{
				Text:          candidate,
				StartPosition: -len([]rune(word)),
			})
		}
	}
	return out, nil
}
