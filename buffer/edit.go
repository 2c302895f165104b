package buffer

import (
	"strings"

	"github.com/dshills/lineedit/completion"
)

// Editing operations. Every operation here checks the read-only predicate,
// builds a replacement document, and installs it through the invalidation
// machinery. Positions passed in are clamped, never rejected.

// InsertText inserts text at the cursor and moves the cursor past it. In
// overwrite mode the inserted text replaces existing characters up to the
// end of the current line.
func (b *Buffer) InsertText(text string) error {
	return b.insertText(text, true)
}

// InsertTextKeepCursor inserts text at the cursor and leaves the cursor
// where it was, in front of the inserted text.
func (b *Buffer) InsertTextKeepCursor(text string) error {
	return b.insertText(text, false)
}

func (b *Buffer) insertText(text string, moveCursor bool) error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	doc := b.doc
	before := []rune(doc.TextBeforeCursor())
	after := []rune(doc.TextAfterCursor())
	ins := []rune(text)

	if b.mode == ModeOverwrite {
		// Overwriting stops at the end of the line.
		n := len(ins)
		if nl := indexRune(after, '\n'); nl >= 0 && nl < n {
			n = nl
		}
		if n > len(after) {
			n = len(after)
		}
		after = after[n:]
	}

	cursor := len(before)
	if moveCursor {
		cursor += len(ins)
	}
	newText := string(before) + text + string(after)
	flags := b.setDocumentLocked(b.docLocked(newText, cursor))
	b.mu.Unlock()
	b.notify(flags)

	if flags&notifyText != 0 {
		b.afterInsert()
	}
	return nil
}

// afterInsert triggers the implicit background refreshes that follow a text
// insertion.
func (b *Buffer) afterInsert() {
	if b.completeWhileTyping && b.completer != nil {
		b.RefreshCompletions(b.ctx, completion.Trigger{TextInserted: true})
	}
	if b.suggester != nil {
		b.RefreshSuggestion(b.ctx)
	}
}

// Delete removes up to count runes after the cursor and returns the removed
// text.
func (b *Buffer) Delete(count int) (string, error) {
	if err := b.checkWritable(); err != nil {
		return "", err
	}
	if count < 1 {
		count = 1
	}

	b.mu.Lock()
	doc := b.doc
	after := []rune(doc.TextAfterCursor())
	if count > len(after) {
		count = len(after)
	}
	deleted := string(after[:count])
	newText := doc.TextBeforeCursor() + string(after[count:])
	flags := b.setDocumentLocked(b.docLocked(newText, doc.CursorPosition()))
	b.mu.Unlock()
	b.notify(flags)
	return deleted, nil
}

// DeleteBeforeCursor removes up to count runes before the cursor and returns
// the removed text.
func (b *Buffer) DeleteBeforeCursor(count int) (string, error) {
	if err := b.checkWritable(); err != nil {
		return "", err
	}
	if count < 1 {
		count = 1
	}

	b.mu.Lock()
	doc := b.doc
	before := []rune(doc.TextBeforeCursor())
	if count > len(before) {
		count = len(before)
	}
	deleted := string(before[len(before)-count:])
	newText := string(before[:len(before)-count]) + doc.TextAfterCursor()
	flags := b.setDocumentLocked(b.docLocked(newText, len(before)-count))
	b.mu.Unlock()
	b.notify(flags)
	return deleted, nil
}

// DeleteWord removes from the cursor to the end of the current word,
// skipping any whitespace in between, and returns the removed text.
func (b *Buffer) DeleteWord() (string, error) {
	b.mu.Lock()
	n := b.doc.FindEndOfCurrentWord()
	b.mu.Unlock()
	if n == 0 {
		return "", nil
	}
	return b.Delete(n)
}

// DeleteWordBefore removes from the beginning of the previous word to the
// cursor and returns the removed text.
func (b *Buffer) DeleteWordBefore() (string, error) {
	b.mu.Lock()
	n := -b.doc.FindPreviousWordBeginning()
	b.mu.Unlock()
	if n == 0 {
		return "", nil
	}
	return b.DeleteBeforeCursor(n)
}

// Newline inserts a line break at the cursor. With copyMargin the new line
// starts with the leading whitespace of the current line.
func (b *Buffer) Newline(copyMargin bool) error {
	margin := ""
	if copyMargin {
		b.mu.Lock()
		margin = b.doc.LeadingWhitespaceInCurrentLine()
		b.mu.Unlock()
	}
	return b.InsertText("\n" + margin)
}

// InsertLineAbove opens a new line above the current one and moves the
// cursor to its end.
func (b *Buffer) InsertLineAbove(copyMargin bool) error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	doc := b.doc
	margin := ""
	if copyMargin {
		margin = doc.LeadingWhitespaceInCurrentLine()
	}
	start := doc.LineStartIndex(doc.CursorPositionRow())
	runes := []rune(doc.Text())
	newText := string(runes[:start]) + margin + "\n" + string(runes[start:])
	flags := b.setDocumentLocked(b.docLocked(newText, start+len([]rune(margin))))
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// InsertLineBelow opens a new line below the current one and moves the
// cursor to its end.
func (b *Buffer) InsertLineBelow(copyMargin bool) error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	doc := b.doc
	margin := ""
	if copyMargin {
		margin = doc.LeadingWhitespaceInCurrentLine()
	}
	end := doc.LineEndIndex(doc.CursorPositionRow())
	runes := []rune(doc.Text())
	newText := string(runes[:end]) + "\n" + margin + string(runes[end:])
	flags := b.setDocumentLocked(b.docLocked(newText, end+1+len([]rune(margin))))
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// JoinNextLine joins the current line with the following one, replacing the
// newline and surrounding whitespace with separator. The cursor lands on
// the join point.
func (b *Buffer) JoinNextLine(separator string) error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	doc := b.doc
	row := doc.CursorPositionRow()
	if row >= doc.LineCount()-1 {
		b.mu.Unlock()
		return nil
	}
	line := strings.TrimRight(doc.Line(row), " \t")
	next := strings.TrimLeft(doc.Line(row+1), " \t")

	lines := doc.Lines()
	joined := line + separator + next
	newLines := append(append(append([]string{}, lines[:row]...), joined), lines[row+2:]...)
	newText := strings.Join(newLines, "\n")

	cursor := doc.LineStartIndex(row) + len([]rune(line))
	flags := b.setDocumentLocked(b.docLocked(newText, cursor))
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// SwapCharactersBeforeCursor swaps the two runes before the cursor, the
// readline transpose operation. It is a no-op when fewer than two runes
// precede the cursor.
func (b *Buffer) SwapCharactersBeforeCursor() error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	doc := b.doc
	pos := doc.CursorPosition()
	if pos < 2 {
		b.mu.Unlock()
		return nil
	}
	runes := []rune(doc.Text())
	swapped := make([]rune, len(runes))
	copy(swapped, runes)
	swapped[pos-2], swapped[pos-1] = swapped[pos-1], swapped[pos-2]
	flags := b.setDocumentLocked(b.docLocked(string(swapped), pos))
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// TransformRegion applies fn to the text between two rune positions. The
// positions are clamped and may be given in either order. The cursor is
// clamped into the transformed text.
func (b *Buffer) TransformRegion(from, to int, fn func(string) string) error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	doc := b.doc
	runes := []rune(doc.Text())
	if from > to {
		from, to = to, from
	}
	from = clampInt(from, 0, len(runes))
	to = clampInt(to, 0, len(runes))

	newText := string(runes[:from]) + fn(string(runes[from:to])) + string(runes[to:])
	flags := b.setDocumentLocked(b.docLocked(newText, doc.CursorPosition()))
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// TransformLines applies fn to each line in the inclusive row range. Rows
// out of range are clamped. The cursor keeps its (row, column) position,
// clamped into the transformed line.
func (b *Buffer) TransformLines(fromRow, toRow int, fn func(string) string) error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	doc := b.doc
	lines := doc.Lines()
	if fromRow > toRow {
		fromRow, toRow = toRow, fromRow
	}
	fromRow = clampInt(fromRow, 0, len(lines)-1)
	toRow = clampInt(toRow, 0, len(lines)-1)

	for i := fromRow; i <= toRow; i++ {
		lines[i] = fn(lines[i])
	}
	row, col := doc.TranslateIndexToPosition(doc.CursorPosition())
	newText := strings.Join(lines, "\n")

	newDoc := b.docLocked(newText, 0)
	flags := b.setDocumentLocked(newDoc.WithCursor(newDoc.TranslateRowColToIndex(row, col)))
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

func indexRune(runes []rune, r rune) int {
	for i, c := range runes {
		if c == r {
			return i
		}
	}
	return -1
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
