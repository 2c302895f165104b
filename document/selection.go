package document

// SelectionType describes what a selection covers.
type SelectionType uint8

const (
	// SelectionCharacters selects a contiguous span of characters.
	SelectionCharacters SelectionType = iota
	// SelectionLines selects whole lines.
	SelectionLines
	// SelectionBlock selects a rectangular block of text.
	SelectionBlock
)

// String returns the selection type name.
func (t SelectionType) String() string {
	switch t {
	case SelectionCharacters:
		return "characters"
	case SelectionLines:
		return "lines"
	case SelectionBlock:
		return "block"
	default:
		return "unknown"
	}
}

// SelectionState describes a live selection: the position where it was
// anchored and the kind of span it covers. The selection extent is always
// anchor..cursor, in either order.
type SelectionState struct {
	// Anchor is the rune position where the selection started.
	Anchor int
	// Type is the kind of span the selection covers.
	Type SelectionType
}

// PasteMode is the placement policy for clipboard insertion.
type PasteMode uint8

const (
	// PasteEmacs inserts at the cursor; the cursor ends after the inserted text.
	PasteEmacs PasteMode = iota
	// PasteViBefore inserts before the cursor position (or above the current
	// line for line-mode data); the cursor stays on the inserted text.
	PasteViBefore
	// PasteViAfter inserts after the cursor position (or below the current
	// line for line-mode data).
	PasteViAfter
)

// Range is a half-open rune span [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// IsEmpty returns true if the range covers nothing.
func (r Range) IsEmpty() bool { return r.End <= r.Start }
