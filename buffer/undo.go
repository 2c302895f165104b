package buffer

// defaultMaxUndo bounds the undo stack when no option overrides it.
const defaultMaxUndo = 1000

// SaveToUndoStack pushes the current (text, cursor) snapshot. A push whose
// text matches the top of the stack is dropped, so callers can checkpoint
// freely around operations that may turn out to be no-ops. Saving a new
// checkpoint discards the redo stack.
func (b *Buffer) SaveToUndoStack() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveToUndoStackLocked(true)
}

func (b *Buffer) saveToUndoStackLocked(clearRedo bool) {
	entry := undoEntry{text: b.doc.Text(), cursor: b.doc.CursorPosition()}

	if n := len(b.undoStack); n == 0 || b.undoStack[n-1].text != entry.text {
		b.undoStack = append(b.undoStack, entry)
		if len(b.undoStack) > b.maxUndo {
			b.undoStack = b.undoStack[len(b.undoStack)-b.maxUndo:]
		}
	}
	if clearRedo {
		b.redoStack = nil
	}
}

// Undo restores the most recent checkpoint whose text differs from the
// current text, pushing the current state onto the redo stack. It returns
// true when a state was restored.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	var flags notifyFlags
	restored := false

	for len(b.undoStack) > 0 {
		top := b.undoStack[len(b.undoStack)-1]
		b.undoStack = b.undoStack[:len(b.undoStack)-1]
		if top.text == b.doc.Text() {
			continue
		}
		b.redoStack = append(b.redoStack, undoEntry{
			text:   b.doc.Text(),
			cursor: b.doc.CursorPosition(),
		})
		b.restoring = true
		flags = b.setDocumentLocked(b.docLocked(top.text, top.cursor))
		b.restoring = false
		restored = true
		break
	}
	b.mu.Unlock()
	b.notify(flags)
	return restored
}

// Redo reapplies the most recently undone state. It returns true when a
// state was restored.
func (b *Buffer) Redo() bool {
	b.mu.Lock()
	var flags notifyFlags
	restored := false

	if len(b.redoStack) > 0 {
		top := b.redoStack[len(b.redoStack)-1]
		b.redoStack = b.redoStack[:len(b.redoStack)-1]
		b.saveToUndoStackLocked(false)
		b.restoring = true
		flags = b.setDocumentLocked(b.docLocked(top.text, top.cursor))
		b.restoring = false
		restored = true
	}
	b.mu.Unlock()
	b.notify(flags)
	return restored
}

// UndoDepth returns the number of checkpoints on the undo stack.
func (b *Buffer) UndoDepth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.undoStack)
}
