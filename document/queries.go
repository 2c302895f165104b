package document

import (
	"strings"
	"unicode"
)

// Line and column queries

// Lines returns the document text split into lines (without newlines).
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the text of the given line, or the empty string when the
// index is out of range.
func (d *Document) Line(row int) string {
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row]
}

// TranslateIndexToPosition converts a rune index into a (row, column) pair.
// The index is clamped to the text boundaries first.
func (d *Document) TranslateIndexToPosition(index int) (row, col int) {
	index = clamp(index, 0, len(d.runes))

	// Binary search over line starts.
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= index {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, index - d.lineStarts[lo]
}

// TranslateRowColToIndex converts a (row, column) pair into a rune index.
// Both coordinates are clamped into range.
func (d *Document) TranslateRowColToIndex(row, col int) int {
	row = clamp(row, 0, len(d.lines)-1)
	col = clamp(col, 0, len([]rune(d.lines[row])))
	return d.lineStarts[row] + col
}

// CursorPositionRow returns the row of the cursor.
func (d *Document) CursorPositionRow() int {
	row, _ := d.TranslateIndexToPosition(d.cursorPosition)
	return row
}

// CursorPositionCol returns the column of the cursor within its line.
func (d *Document) CursorPositionCol() int {
	_, col := d.TranslateIndexToPosition(d.cursorPosition)
	return col
}

// OnFirstLine returns true if the cursor is on the first line.
func (d *Document) OnFirstLine() bool { return d.CursorPositionRow() == 0 }

// OnLastLine returns true if the cursor is on the last line.
func (d *Document) OnLastLine() bool {
	return d.CursorPositionRow() == len(d.lines)-1
}

// LineStartIndex returns the rune index of the start of the given line,
// clamped into range.
func (d *Document) LineStartIndex(row int) int {
	row = clamp(row, 0, len(d.lineStarts)-1)
	return d.lineStarts[row]
}

// LineEndIndex returns the rune index just past the last character of the
// given line (before its newline), clamped into range.
func (d *Document) LineEndIndex(row int) int {
	row = clamp(row, 0, len(d.lines)-1)
	return d.lineStarts[row] + len([]rune(d.lines[row]))
}

// Cursor-relative text

// TextBeforeCursor returns the text before the cursor.
func (d *Document) TextBeforeCursor() string {
	return string(d.runes[:d.cursorPosition])
}

// TextAfterCursor returns the text at and after the cursor.
func (d *Document) TextAfterCursor() string {
	return string(d.runes[d.cursorPosition:])
}

// CurrentLine returns the text of the line the cursor is on.
func (d *Document) CurrentLine() string {
	return d.lines[d.CursorPositionRow()]
}

// CurrentLineBeforeCursor returns the current line up to the cursor.
func (d *Document) CurrentLineBeforeCursor() string {
	row, col := d.TranslateIndexToPosition(d.cursorPosition)
	return string([]rune(d.lines[row])[:col])
}

// CurrentLineAfterCursor returns the current line from the cursor on.
func (d *Document) CurrentLineAfterCursor() string {
	row, col := d.TranslateIndexToPosition(d.cursorPosition)
	return string([]rune(d.lines[row])[col:])
}

// LeadingWhitespaceInCurrentLine returns the whitespace at the start of the
// current line.
func (d *Document) LeadingWhitespaceInCurrentLine() string {
	line := d.CurrentLine()
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)]
}

// CharRelativeToCursor returns the rune at cursor+offset, or 0 when the
// position is out of range.
func (d *Document) CharRelativeToCursor(offset int) rune {
	pos := d.cursorPosition + offset
	if pos < 0 || pos >= len(d.runes) {
		return 0
	}
	return d.runes[pos]
}

// IsCursorAtEnd returns true if the cursor is past the last character.
func (d *Document) IsCursorAtEnd() bool { return d.cursorPosition == len(d.runes) }

// IsCursorAtEndOfLine returns true if the cursor sits at the end of its line.
func (d *Document) IsCursorAtEndOfLine() bool {
	return d.CurrentLineAfterCursor() == ""
}

// Vertical motion

// CursorUpPosition returns the cursor index after moving up count lines,
// targeting preferredColumn when it is >= 0, otherwise the current column.
// The result is clamped to the first line.
func (d *Document) CursorUpPosition(count int, preferredColumn int) int {
	if count < 1 {
		count = 1
	}
	row, col := d.TranslateIndexToPosition(d.cursorPosition)
	if preferredColumn >= 0 {
		col = preferredColumn
	}
	return d.TranslateRowColToIndex(row-count, col)
}

// CursorDownPosition is the mirror of CursorUpPosition, clamped to the last
// line.
func (d *Document) CursorDownPosition(count int, preferredColumn int) int {
	if count < 1 {
		count = 1
	}
	row, col := d.TranslateIndexToPosition(d.cursorPosition)
	if preferredColumn >= 0 {
		col = preferredColumn
	}
	return d.TranslateRowColToIndex(row+count, col)
}

// Word queries
//
// A word is a run of non-whitespace characters.

// WordBeforeCursor returns the word immediately before the cursor, or the
// empty string if the cursor follows whitespace.
func (d *Document) WordBeforeCursor() string {
	start := d.cursorPosition + d.FindStartOfPreviousWord()
	return string(d.runes[start:d.cursorPosition])
}

// FindStartOfPreviousWord returns the relative offset (<= 0) from the cursor
// to the start of the word before it. Returns 0 when there is none.
func (d *Document) FindStartOfPreviousWord() int {
	i := d.cursorPosition
	if i == 0 {
		return 0
	}
	// Skip any whitespace directly before the cursor.
	j := i
	for j > 0 && unicode.IsSpace(d.runes[j-1]) {
		j--
	}
	// If only whitespace separated us from the start, there is no word.
	if j == 0 {
		return 0
	}
	// The completion use case wants the partial word touching the cursor;
	// whitespace in between means the word ended already.
	if j != i {
		return 0
	}
	for j > 0 && !unicode.IsSpace(d.runes[j-1]) {
		j--
	}
	return j - i
}

// FindEndOfCurrentWord returns the relative offset (>= 0) from the cursor to
// the end of the word at or after it, skipping leading whitespace.
func (d *Document) FindEndOfCurrentWord() int {
	i := d.cursorPosition
	j := i
	for j < len(d.runes) && unicode.IsSpace(d.runes[j]) {
		j++
	}
	for j < len(d.runes) && !unicode.IsSpace(d.runes[j]) {
		j++
	}
	return j - i
}

// FindPreviousWordBeginning returns the relative offset (<= 0) from the
// cursor to the beginning of the previous word, crossing whitespace.
func (d *Document) FindPreviousWordBeginning() int {
	j := d.cursorPosition
	for j > 0 && unicode.IsSpace(d.runes[j-1]) {
		j--
	}
	for j > 0 && !unicode.IsSpace(d.runes[j-1]) {
		j--
	}
	return j - d.cursorPosition
}

// Selection queries

// SelectionRanges returns the rune ranges covered by the active selection,
// ordered by start position. Character selections produce one range from
// anchor to cursor (exclusive of the later endpoint); line selections cover
// whole lines including the joining newlines; block selections produce one
// range per spanned line. Returns nil when no selection is active.
func (d *Document) SelectionRanges() []Range {
	if d.selection == nil {
		return nil
	}

	from, to := d.selection.Anchor, d.cursorPosition
	if from > to {
		from, to = to, from
	}

	switch d.selection.Type {
	case SelectionCharacters:
		return []Range{{Start: from, End: to}}

	case SelectionLines:
		fromRow, _ := d.TranslateIndexToPosition(from)
		toRow, _ := d.TranslateIndexToPosition(to)
		start := d.LineStartIndex(fromRow)
		end := d.LineEndIndex(toRow)
		return []Range{{Start: start, End: end}}

	case SelectionBlock:
		fromRow, fromCol := d.TranslateIndexToPosition(from)
		toRow, toCol := d.TranslateIndexToPosition(to)
		if fromCol > toCol {
			fromCol, toCol = toCol, fromCol
		}
		ranges := make([]Range, 0, toRow-fromRow+1)
		for row := fromRow; row <= toRow; row++ {
			lineLen := len([]rune(d.lines[row]))
			s := clamp(fromCol, 0, lineLen)
			e := clamp(toCol, 0, lineLen)
			ranges = append(ranges, Range{
				Start: d.lineStarts[row] + s,
				End:   d.lineStarts[row] + e,
			})
		}
		return ranges

	default:
		return nil
	}
}

// Search

// Find returns the relative offset from the cursor to the next occurrence of
// sub strictly after the cursor, or 0 when not found.
func (d *Document) Find(sub string) int {
	if sub == "" {
		return 0
	}
	start := min(d.cursorPosition+1, len(d.runes))
	after := string(d.runes[start:])
	idx := strings.Index(after, sub)
	if idx < 0 {
		return 0
	}
	return (start - d.cursorPosition) + len([]rune(after[:idx]))
}

// FindBackwards returns the relative offset (< 0) from the cursor to the
// previous occurrence of sub before the cursor, or 0 when not found.
func (d *Document) FindBackwards(sub string) int {
	if sub == "" {
		return 0
	}
	before := d.TextBeforeCursor()
	idx := strings.LastIndex(before, sub)
	if idx < 0 {
		return 0
	}
	return len([]rune(before[:idx])) - len([]rune(before))
}
