package buffer

import (
	"github.com/dshills/lineedit/completion"
	"github.com/dshills/lineedit/document"
)

// LoadState is the lifecycle phase of a completion run.
type LoadState uint8

const (
	// CompletionsNotStarted means no run has produced candidates yet.
	CompletionsNotStarted LoadState = iota
	// CompletionsLoading means a background run is producing candidates.
	CompletionsLoading
	// CompletionsLoaded means candidates are available.
	CompletionsLoaded
)

// String returns the load state name.
func (s LoadState) String() string {
	switch s {
	case CompletionsNotStarted:
		return "not-started"
	case CompletionsLoading:
		return "loading"
	case CompletionsLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// CompletionState is an open completion menu: the document the run started
// from, the candidates, and which one is currently inserted. Index -1 means
// no candidate is inserted and the original text shows.
type CompletionState struct {
	originalDoc   *document.Document
	completions   []completion.Completion
	completeIndex int
	loadState     LoadState
}

// OriginalDocument returns the document the completion run started from.
func (s *CompletionState) OriginalDocument() *document.Document { return s.originalDoc }

// Completions returns the candidate list.
func (s *CompletionState) Completions() []completion.Completion { return s.completions }

// CompleteIndex returns the inserted candidate index, or -1.
func (s *CompletionState) CompleteIndex() int { return s.completeIndex }

// LoadState returns the lifecycle phase.
func (s *CompletionState) LoadState() LoadState { return s.loadState }

// Current returns the inserted candidate, or false when none is inserted.
func (s *CompletionState) Current() (completion.Completion, bool) {
	if s.completeIndex < 0 || s.completeIndex >= len(s.completions) {
		return completion.Completion{}, false
	}
	return s.completions[s.completeIndex], true
}

// CompletionState returns the open completion menu, or nil.
func (b *Buffer) CompletionState() *CompletionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.completions
}

// StartCompletion runs the completer synchronously and opens the menu with
// no candidate inserted. Use RefreshCompletions for providers that block.
func (b *Buffer) StartCompletion(trigger completion.Trigger) error {
	if b.completer == nil {
		return nil
	}

	b.mu.Lock()
	doc := b.doc
	rev := b.revision
	b.mu.Unlock()

	items, err := b.completer.Complete(doc, trigger)
	if err != nil {
		return err
	}

	b.mu.Lock()
	if b.revision != rev {
		// The text changed while the completer ran; the candidates no
		// longer apply.
		b.mu.Unlock()
		return nil
	}
	b.completions = &CompletionState{
		originalDoc:   doc,
		completions:   items,
		completeIndex: -1,
		loadState:     CompletionsLoaded,
	}
	b.mu.Unlock()
	b.notify(notifyCompletions)
	return nil
}

// CompleteNext inserts the candidate count past the current one, cycling
// through a no-candidate slot back to the original text. With wrap-around
// disabled it stops at the last candidate instead.
func (b *Buffer) CompleteNext(count int) {
	if count < 1 {
		count = 1
	}
	b.mu.Lock()
	var flags notifyFlags
	if st := b.completions; st != nil && st.loadState == CompletionsLoaded && len(st.completions) > 0 {
		last := len(st.completions) - 1
		switch {
		case b.completionWrap:
			// Cycle positions: -1 (original), 0 .. n-1.
			span := len(st.completions) + 1
			next := (st.completeIndex+1+count)%span - 1
			flags = b.goToCompletionLocked(next)
		case st.completeIndex < last:
			next := st.completeIndex + count
			if next > last {
				next = last
			}
			flags = b.goToCompletionLocked(next)
		}
	}
	b.mu.Unlock()
	b.notify(flags)
}

// CompletePrevious inserts the candidate count before the current one,
// cycling the same way CompleteNext does.
func (b *Buffer) CompletePrevious(count int) {
	if count < 1 {
		count = 1
	}
	b.mu.Lock()
	var flags notifyFlags
	if st := b.completions; st != nil && st.loadState == CompletionsLoaded && len(st.completions) > 0 {
		switch {
		case b.completionWrap:
			span := len(st.completions) + 1
			pos := st.completeIndex + 1 - count
			pos = ((pos % span) + span) % span
			flags = b.goToCompletionLocked(pos - 1)
		case st.completeIndex != 0:
			// From the original text, step to the last candidate;
			// otherwise move back, stopping at the first.
			if st.completeIndex < 0 {
				flags = b.goToCompletionLocked(len(st.completions) - 1)
			} else {
				next := st.completeIndex - count
				if next < 0 {
					next = 0
				}
				flags = b.goToCompletionLocked(next)
			}
		}
	}
	b.mu.Unlock()
	b.notify(flags)
}

// GoToCompletion inserts the candidate at the given index; -1 restores the
// original text. The menu stays open.
func (b *Buffer) GoToCompletion(index int) {
	b.mu.Lock()
	flags := b.goToCompletionLocked(index)
	b.mu.Unlock()
	b.notify(flags)
}

// goToCompletionLocked previews a candidate. The preview is computed from
// the original document, so switching candidates replaces the previous
// preview instead of stacking. The menu state is stashed across the
// document change that would otherwise close it.
func (b *Buffer) goToCompletionLocked(index int) notifyFlags {
	st := b.completions
	if st == nil || st.loadState != CompletionsLoaded || len(st.completions) == 0 {
		return 0
	}
	if index >= len(st.completions) {
		index = len(st.completions) - 1
	}

	var newDoc *document.Document
	if index < 0 {
		index = -1
		newDoc = st.originalDoc
	} else {
		newDoc = completionPreview(st.originalDoc, st.completions[index])
	}

	flags := b.setDocumentLocked(newDoc)
	st.completeIndex = index
	b.completions = st
	return flags | notifyCompletions
}

// completionPreview builds the document showing a candidate inserted into
// the original document.
func completionPreview(orig *document.Document, c completion.Completion) *document.Document {
	runes := []rune(orig.Text())
	start := orig.CursorPosition() + c.StartPosition
	if start < 0 {
		start = 0
	}
	ins := []rune(c.Text)
	newText := string(runes[:start]) + c.Text + string(runes[orig.CursorPosition():])
	return document.New(newText, start+len(ins))
}

// ApplyCompletion inserts a candidate as a real edit: the menu closes and
// the change participates in undo like any other insertion.
func (b *Buffer) ApplyCompletion(c completion.Completion) error {
	if err := b.checkWritable(); err != nil {
		return err
	}

	b.mu.Lock()
	doc := b.doc
	base := doc
	if st := b.completions; st != nil {
		base = st.originalDoc
	}
	flags := b.setDocumentLocked(completionPreview(base, c))
	b.completions = nil
	b.mu.Unlock()
	b.notify(flags | notifyCompletions)
	return nil
}

// CancelCompletion closes the menu and restores the exact original
// document, including its cursor position.
func (b *Buffer) CancelCompletion() {
	b.mu.Lock()
	st := b.completions
	var flags notifyFlags
	if st != nil {
		if st.completeIndex >= 0 {
			flags = b.setDocumentLocked(st.originalDoc)
		}
		b.completions = nil
		flags |= notifyCompletions
	}
	b.mu.Unlock()
	b.notify(flags)
}
