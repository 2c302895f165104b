package buffer

import "strings"

// History navigation works on a working copy: the stored entries plus the
// current input, each editable without touching the History store. The
// store is consulted lazily on the first navigation.

func (b *Buffer) loadHistoryLocked() error {
	if b.historyLoaded {
		return nil
	}
	entries, err := b.hist.Entries()
	if err != nil {
		return err
	}
	b.historyLoaded = true
	if len(entries) == 0 {
		return nil
	}
	lines := make([]string, 0, len(entries)+len(b.workingLines))
	lines = append(lines, entries...)
	lines = append(lines, b.workingLines...)
	b.workingLines = lines
	b.workingIndex += len(entries)
	return nil
}

// historySearchPrefixLocked returns the active search prefix. Only backward
// navigation starts a session, capturing the text before the cursor; forward
// navigation outside a session matches everything.
func (b *Buffer) historySearchPrefixLocked(start bool) string {
	if !b.historySearch {
		return ""
	}
	if b.historySearchText == nil {
		if !start {
			return ""
		}
		prefix := b.doc.TextBeforeCursor()
		b.historySearchText = &prefix
	}
	return *b.historySearchText
}

// HistoryBackward moves count entries back through history. With history
// search enabled only entries matching the session prefix are visited. The
// cursor lands at the end of the recalled text.
func (b *Buffer) HistoryBackward(count int) error {
	if count < 1 {
		count = 1
	}
	b.mu.Lock()
	if err := b.loadHistoryLocked(); err != nil {
		b.mu.Unlock()
		return err
	}
	prefix := b.historySearchPrefixLocked(true)

	found := b.workingIndex
	for i := b.workingIndex - 1; i >= 0 && count > 0; i-- {
		if strings.HasPrefix(b.workingLines[i], prefix) {
			found = i
			count--
		}
	}
	flags := b.goToHistoryLocked(found)
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// HistoryForward is the mirror of HistoryBackward, moving toward the
// current input.
func (b *Buffer) HistoryForward(count int) error {
	if count < 1 {
		count = 1
	}
	b.mu.Lock()
	if err := b.loadHistoryLocked(); err != nil {
		b.mu.Unlock()
		return err
	}
	prefix := b.historySearchPrefixLocked(false)

	found := b.workingIndex
	for i := b.workingIndex + 1; i < len(b.workingLines) && count > 0; i++ {
		if strings.HasPrefix(b.workingLines[i], prefix) {
			found = i
			count--
		}
	}
	flags := b.goToHistoryLocked(found)
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// goToHistoryLocked switches the working index and installs that entry as
// the document. The search session survives the text change.
func (b *Buffer) goToHistoryLocked(index int) notifyFlags {
	if index == b.workingIndex || index < 0 || index >= len(b.workingLines) {
		return 0
	}
	search := b.historySearchText
	b.workingIndex = index
	text := b.workingLines[index]
	flags := b.setDocumentLocked(b.docLocked(text, len([]rune(text))))
	b.historySearchText = search
	return flags
}

// WorkingIndex returns the position within the history working copy; the
// last index is the current input.
func (b *Buffer) WorkingIndex() (index, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.workingIndex, len(b.workingLines)
}

// AppendToHistory stores the current text in the history store. Empty text
// and text equal to the most recent entry are skipped.
func (b *Buffer) AppendToHistory() error {
	b.mu.Lock()
	text := b.doc.Text()
	b.mu.Unlock()
	if text == "" {
		return nil
	}

	entries, err := b.hist.Entries()
	if err != nil {
		return err
	}
	if len(entries) > 0 && entries[len(entries)-1] == text {
		return nil
	}
	return b.hist.Append(text)
}

// Argument yank, the readline Alt-. family. Repeated invocations replace
// the previously inserted token with the same argument from one entry
// older.

// YankLastArg inserts the last word of the previous history entry. Passing
// n > 0 selects the n-th word instead, counted from zero.
func (b *Buffer) YankLastArg(n int) error {
	if n <= 0 {
		n = -1
	}
	return b.yankArg(n)
}

// YankNthArg inserts the n-th word of the previous history entry, counted
// from zero. Values below 1 select the first argument after the command
// word.
func (b *Buffer) YankNthArg(n int) error {
	if n < 1 {
		n = 1
	}
	return b.yankArg(n)
}

func (b *Buffer) yankArg(n int) error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	if err := b.loadHistoryLocked(); err != nil {
		b.mu.Unlock()
		return err
	}

	// workingIndex-1 is the most recent real entry; repeats walk older.
	pos := b.workingIndex - 1
	previous := ""
	if st := b.yankState; st != nil {
		pos = st.historyPos - 1
		previous = st.previous
		if n < 0 {
			n = st.n
		}
	}
	if pos < 0 {
		b.mu.Unlock()
		return nil
	}

	words := strings.Fields(b.workingLines[pos])
	if len(words) == 0 {
		b.mu.Unlock()
		return nil
	}
	idx := n
	if idx < 0 || idx >= len(words) {
		idx = len(words) - 1
	}
	word := words[idx]

	doc := b.doc
	before := []rune(doc.TextBeforeCursor())
	if drop := len([]rune(previous)); drop <= len(before) {
		before = before[:len(before)-drop]
	}
	newText := string(before) + word + doc.TextAfterCursor()

	flags := b.setDocumentLocked(b.docLocked(newText, len(before)+len([]rune(word))))
	b.yankState = &yankArgState{historyPos: pos, n: n, previous: word}
	b.mu.Unlock()
	b.notify(flags)
	return nil
}
