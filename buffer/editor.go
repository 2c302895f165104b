package buffer

// OpenInEditor hands the current text to the external editor and replaces
// the buffer content with the result. The cursor moves to the end of the
// edited text. Nothing changes when the editor exits without modifying the
// text.
func (b *Buffer) OpenInEditor() error {
	if b.ed == nil {
		return ErrNoEditor
	}
	if err := b.checkWritable(); err != nil {
		return err
	}

	edited, changed, err := b.ed.Edit(b.Text())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	b.mu.Lock()
	flags := b.setDocumentLocked(b.docLocked(edited, len([]rune(edited))))
	b.mu.Unlock()
	b.notify(flags)
	return nil
}
