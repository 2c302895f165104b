package buffer

import "unicode"

// Cursor motion. Motion never fails: positions are clamped and read-only
// buffers still allow the cursor to move.

// CursorLeft moves the cursor up to count runes left, stopping at the start
// of the current line.
func (b *Buffer) CursorLeft(count int) {
	if count < 1 {
		count = 1
	}
	b.mu.Lock()
	doc := b.doc
	col := doc.CursorPositionCol()
	if count > col {
		count = col
	}
	flags := b.setDocumentLocked(doc.WithCursor(doc.CursorPosition() - count))
	b.mu.Unlock()
	b.notify(flags)
}

// CursorRight moves the cursor up to count runes right, stopping at the end
// of the current line.
func (b *Buffer) CursorRight(count int) {
	if count < 1 {
		count = 1
	}
	b.mu.Lock()
	doc := b.doc
	rest := len([]rune(doc.CurrentLineAfterCursor()))
	if count > rest {
		count = rest
	}
	flags := b.setDocumentLocked(doc.WithCursor(doc.CursorPosition() + count))
	b.mu.Unlock()
	b.notify(flags)
}

// CursorUp moves the cursor up count lines. Repeated vertical motion keeps
// aiming for the column the run started in, even across shorter lines.
func (b *Buffer) CursorUp(count int) {
	b.mu.Lock()
	doc := b.doc
	preferred := b.preferredColumn
	if preferred < 0 {
		preferred = doc.CursorPositionCol()
	}
	flags := b.setDocumentLocked(doc.WithCursor(doc.CursorUpPosition(count, preferred)))
	b.preferredColumn = preferred
	b.mu.Unlock()
	b.notify(flags)
}

// CursorDown moves the cursor down count lines, keeping the preferred
// column the way CursorUp does.
func (b *Buffer) CursorDown(count int) {
	b.mu.Lock()
	doc := b.doc
	preferred := b.preferredColumn
	if preferred < 0 {
		preferred = doc.CursorPositionCol()
	}
	flags := b.setDocumentLocked(doc.WithCursor(doc.CursorDownPosition(count, preferred)))
	b.preferredColumn = preferred
	b.mu.Unlock()
	b.notify(flags)
}

// GoToStartOfLine moves the cursor to the start of the current line. With
// afterWhitespace it lands on the first non-whitespace character instead.
func (b *Buffer) GoToStartOfLine(afterWhitespace bool) {
	b.mu.Lock()
	doc := b.doc
	pos := doc.LineStartIndex(doc.CursorPositionRow())
	if afterWhitespace {
		pos += len([]rune(doc.LeadingWhitespaceInCurrentLine()))
	}
	flags := b.setDocumentLocked(doc.WithCursor(pos))
	b.mu.Unlock()
	b.notify(flags)
}

// GoToEndOfLine moves the cursor past the last character of the current
// line.
func (b *Buffer) GoToEndOfLine() {
	b.mu.Lock()
	doc := b.doc
	flags := b.setDocumentLocked(doc.WithCursor(doc.LineEndIndex(doc.CursorPositionRow())))
	b.mu.Unlock()
	b.notify(flags)
}

// AutoUp is the up-arrow dispatcher: it walks the completion menu when one
// is open, moves up a line in multiline text, and otherwise navigates
// history backward.
func (b *Buffer) AutoUp(count int) error {
	b.mu.Lock()
	hasCompletions := b.completions != nil && b.completions.loadState == CompletionsLoaded && len(b.completions.completions) > 0
	onFirst := b.doc.OnFirstLine()
	b.mu.Unlock()

	switch {
	case hasCompletions:
		b.CompletePrevious(count)
		return nil
	case !onFirst:
		b.CursorUp(count)
		return nil
	default:
		return b.HistoryBackward(count)
	}
}

// AutoDown is the down-arrow dispatcher, mirroring AutoUp.
func (b *Buffer) AutoDown(count int) error {
	b.mu.Lock()
	hasCompletions := b.completions != nil && b.completions.loadState == CompletionsLoaded && len(b.completions.completions) > 0
	onLast := b.doc.OnLastLine()
	b.mu.Unlock()

	switch {
	case hasCompletions:
		b.CompleteNext(count)
		return nil
	case !onLast:
		b.CursorDown(count)
		return nil
	default:
		return b.HistoryForward(count)
	}
}

// AcceptSuggestion inserts the current auto-suggestion at the cursor. It
// returns true when a suggestion was applied.
func (b *Buffer) AcceptSuggestion() (bool, error) {
	b.mu.Lock()
	s := b.suggestion
	b.mu.Unlock()
	if s == nil || s.Text == "" {
		return false, nil
	}
	if err := b.InsertText(s.Text); err != nil {
		return false, err
	}
	return true, nil
}

// AcceptSuggestionWord inserts only the first word of the current
// auto-suggestion, including the whitespace that precedes it. It returns
// true when a suggestion was applied.
func (b *Buffer) AcceptSuggestionWord() (bool, error) {
	b.mu.Lock()
	s := b.suggestion
	b.mu.Unlock()
	if s == nil || s.Text == "" {
		return false, nil
	}
	text := firstSuggestionWord(s.Text)
	if err := b.InsertText(text); err != nil {
		return false, err
	}
	return true, nil
}

func firstSuggestionWord(text string) string {
	runes := []rune(text)
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	return string(runes[:i])
}
