package buffer

import (
	"strings"

	"github.com/dshills/lineedit/clipboard"
	"github.com/dshills/lineedit/document"
)

// Selection and clipboard operations.

// StartSelection anchors a selection of the given type at the cursor.
// Moving the cursor afterwards extends it; any text change drops it.
func (b *Buffer) StartSelection(t document.SelectionType) {
	b.mu.Lock()
	flags := b.setDocumentLocked(b.doc.WithSelection(&document.SelectionState{
		Anchor: b.doc.CursorPosition(),
		Type:   t,
	}))
	b.mu.Unlock()
	b.notify(flags)
}

// ExitSelection drops the active selection without changing text or cursor.
func (b *Buffer) ExitSelection() {
	b.mu.Lock()
	flags := b.setDocumentLocked(b.doc.WithSelection(nil))
	b.mu.Unlock()
	b.notify(flags)
}

// HasSelection reports whether a selection is active.
func (b *Buffer) HasSelection() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Selection() != nil
}

// CopySelection returns the selected text as clipboard data and stores it
// on the clipboard. The selection stays active. The zero Data is returned
// when no selection is active.
func (b *Buffer) CopySelection() clipboard.Data {
	b.mu.Lock()
	data, _ := selectionData(b.doc)
	b.mu.Unlock()

	if data.Text != "" {
		b.clip.SetData(data)
	}
	return data
}

// CutSelection removes the selected text, stores it on the clipboard, and
// leaves the cursor at the start of the removed span.
func (b *Buffer) CutSelection() (clipboard.Data, error) {
	if err := b.checkWritable(); err != nil {
		return clipboard.Data{}, err
	}

	b.mu.Lock()
	doc := b.doc
	data, ranges := selectionData(doc)
	if len(ranges) == 0 {
		b.mu.Unlock()
		return clipboard.Data{}, nil
	}

	runes := []rune(doc.Text())
	for i := len(ranges) - 1; i >= 0; i-- {
		r := ranges[i]
		runes = append(runes[:r.Start], runes[r.End:]...)
	}
	flags := b.setDocumentLocked(b.docLocked(string(runes), ranges[0].Start))
	b.mu.Unlock()
	b.notify(flags)

	if data.Text != "" {
		b.clip.SetData(data)
	}
	return data, nil
}

// selectionData extracts the selected text and the covered ranges.
func selectionData(doc *document.Document) (clipboard.Data, []document.Range) {
	sel := doc.Selection()
	ranges := doc.SelectionRanges()
	if sel == nil || len(ranges) == 0 {
		return clipboard.Data{}, nil
	}

	runes := []rune(doc.Text())
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = string(runes[r.Start:r.End])
	}
	return clipboard.Data{Text: strings.Join(parts, "\n"), Type: sel.Type}, ranges
}

// PasteClipboardData inserts clipboard data count times using the given
// placement mode. Placement depends on the selection type the data was
// produced from: character data inserts inline, line data inserts whole
// lines above or below, block data inserts one segment per line at the
// cursor column.
func (b *Buffer) PasteClipboardData(data clipboard.Data, mode document.PasteMode, count int) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	if count < 1 {
		count = 1
	}
	if data.Text == "" {
		return nil
	}

	b.mu.Lock()
	before := b.doc
	flags := b.setDocumentLocked(pasteDocument(before, data, mode, count))
	b.lastPaste = &pasteMarker{doc: before, mode: mode, count: count}
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// Paste pastes the most recent clipboard entry in emacs mode.
func (b *Buffer) Paste() error {
	return b.PasteClipboardData(b.clip.Data(), document.PasteEmacs, 1)
}

// RotatePaste replaces the text inserted by the most recent paste with the
// next-older kill ring entry, the emacs yank-pop operation. It returns true
// when a rotation happened; it does nothing unless the last buffer change
// was a paste.
func (b *Buffer) RotatePaste() (bool, error) {
	if err := b.checkWritable(); err != nil {
		return false, err
	}

	b.mu.Lock()
	marker := b.lastPaste
	b.mu.Unlock()
	if marker == nil {
		return false, nil
	}

	b.clip.Rotate()
	data := b.clip.Data()

	b.mu.Lock()
	flags := b.setDocumentLocked(marker.doc)
	if data.Text != "" {
		flags |= b.setDocumentLocked(pasteDocument(marker.doc, data, marker.mode, marker.count))
	}
	b.lastPaste = marker
	b.mu.Unlock()
	b.notify(flags)
	return true, nil
}

// pasteDocument computes the document resulting from a paste.
func pasteDocument(doc *document.Document, data clipboard.Data, mode document.PasteMode, count int) *document.Document {
	switch data.Type {
	case document.SelectionLines:
		if mode == document.PasteEmacs {
			break
		}
		return pasteLines(doc, data.Text, mode, count)
	case document.SelectionBlock:
		return pasteBlock(doc, data.Text, mode, count)
	}
	return pasteCharacters(doc, data.Text, mode, count)
}

func pasteCharacters(doc *document.Document, text string, mode document.PasteMode, count int) *document.Document {
	runes := []rune(doc.Text())
	insertAt := doc.CursorPosition()
	if mode == document.PasteViAfter && doc.CurrentLineAfterCursor() != "" {
		insertAt++
	}
	ins := strings.Repeat(text, count)
	newText := string(runes[:insertAt]) + ins + string(runes[insertAt:])

	cursor := insertAt + len([]rune(ins))
	if mode != document.PasteEmacs {
		// Vi leaves the cursor on the last pasted character.
		cursor--
	}
	return document.New(newText, cursor)
}

func pasteLines(doc *document.Document, text string, mode document.PasteMode, count int) *document.Document {
	row := doc.CursorPositionRow()
	insertRow := row
	if mode == document.PasteViAfter {
		insertRow = row + 1
	}

	var block []string
	for i := 0; i < count; i++ {
		block = append(block, strings.Split(text, "\n")...)
	}

	lines := doc.Lines()
	newLines := make([]string, 0, len(lines)+len(block))
	newLines = append(newLines, lines[:insertRow]...)
	newLines = append(newLines, block...)
	newLines = append(newLines, lines[insertRow:]...)

	newDoc := document.New(strings.Join(newLines, "\n"), 0)
	return newDoc.WithCursor(newDoc.LineStartIndex(insertRow))
}

func pasteBlock(doc *document.Document, text string, mode document.PasteMode, count int) *document.Document {
	startRow, startCol := doc.TranslateIndexToPosition(doc.CursorPosition())
	if mode != document.PasteViBefore && doc.CurrentLineAfterCursor() != "" {
		startCol++
	}

	lines := doc.Lines()
	for i, pl := range strings.Split(text, "\n") {
		r := startRow + i
		for r >= len(lines) {
			lines = append(lines, "")
		}
		lr := []rune(lines[r])
		for len(lr) < startCol {
			lr = append(lr, ' ')
		}
		seg := strings.Repeat(pl, count)
		lines[r] = string(lr[:startCol]) + seg + string(lr[startCol:])
	}

	newDoc := document.New(strings.Join(lines, "\n"), 0)
	return newDoc.WithCursor(newDoc.TranslateRowColToIndex(startRow, startCol))
}
