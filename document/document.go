package document

import "strings"

// Document is an immutable snapshot of buffer text, cursor position, and an
// optional selection. All derived structures (rune slice, line index) are
// computed once at construction, so reads are cheap and safe to share.
type Document struct {
	text           string
	cursorPosition int
	selection      *SelectionState

	runes      []rune
	lines      []string
	lineStarts []int // rune index of each line start
}

// New creates a document with no selection. The cursor position is clamped
// to [0, rune count].
func New(text string, cursorPosition int) *Document {
	return NewWithSelection(text, cursorPosition, nil)
}

// NewWithSelection creates a document carrying a selection. The selection is
// copied; callers keep ownership of sel. The cursor position and the
// selection anchor are clamped to [0, rune count].
func NewWithSelection(text string, cursorPosition int, sel *SelectionState) *Document {
	d := &Document{
		text:  text,
		runes: []rune(text),
	}

	d.cursorPosition = clamp(cursorPosition, 0, len(d.runes))

	if sel != nil {
		d.selection = &SelectionState{
			Anchor: clamp(sel.Anchor, 0, len(d.runes)),
			Type:   sel.Type,
		}
	}

	d.lines = strings.Split(text, "\n")
	d.lineStarts = make([]int, len(d.lines))
	pos := 0
	for i, line := range d.lines {
		d.lineStarts[i] = pos
		pos += len([]rune(line)) + 1 // +1 for the newline
	}

	return d
}

// Text returns the full document text.
func (d *Document) Text() string { return d.text }

// CursorPosition returns the cursor position as a rune index.
func (d *Document) CursorPosition() int { return d.cursorPosition }

// Selection returns a copy of the selection state, or nil when there is no
// active selection.
func (d *Document) Selection() *SelectionState {
	if d.selection == nil {
		return nil
	}
	s := *d.selection
	return &s
}

// RuneCount returns the length of the text in runes.
func (d *Document) RuneCount() int { return len(d.runes) }

// IsEmpty returns true if the document contains no text.
func (d *Document) IsEmpty() bool { return len(d.runes) == 0 }

// Equal reports whether two documents hold the same text, cursor position,
// and selection.
func (d *Document) Equal(other *Document) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	if d.text != other.text || d.cursorPosition != other.cursorPosition {
		return false
	}
	switch {
	case d.selection == nil && other.selection == nil:
		return true
	case d.selection == nil || other.selection == nil:
		return false
	default:
		return *d.selection == *other.selection
	}
}

// WithCursor returns a document with the same text and selection but a
// different cursor position.
func (d *Document) WithCursor(cursorPosition int) *Document {
	return NewWithSelection(d.text, cursorPosition, d.selection)
}

// WithSelection returns a document with the same text and cursor but a
// different selection state. Passing nil clears the selection.
func (d *Document) WithSelection(sel *SelectionState) *Document {
	return NewWithSelection(d.text, d.cursorPosition, sel)
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
