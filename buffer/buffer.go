package buffer

import (
	"context"
	"sync"

	"github.com/dshills/lineedit/autosuggest"
	"github.com/dshills/lineedit/clipboard"
	"github.com/dshills/lineedit/completion"
	"github.com/dshills/lineedit/document"
	"github.com/dshills/lineedit/editor"
	"github.com/dshills/lineedit/history"
	"github.com/dshills/lineedit/validate"
)

// Buffer is the mutable editing core for one input field. It wraps an
// immutable document.Document and keeps the dependent state (undo, history,
// selection, completion, validation, suggestion) consistent across every
// mutation.
//
// All exported methods are safe for concurrent use. Change listeners run
// after the internal lock is released, so they may call back into the
// buffer.
type Buffer struct {
	mu sync.Mutex

	doc      *document.Document
	cache    *docCache
	revision uint64

	// History entries plus a working copy of the current input.
	// workingLines[workingIndex] is always the current text; navigating
	// history edits copies, never the History store itself.
	hist          history.History
	historyLoaded bool
	workingLines  []string
	workingIndex  int

	undoStack []undoEntry
	redoStack []undoEntry
	maxUndo   int
	restoring bool // true while Undo/Redo installs a document

	// Cross-call state cleared by the invalidation rules in
	// setDocumentLocked.
	preferredColumn   int // -1 when unset
	validationStatus  ValidationStatus
	validationError   *validate.ValidationError
	suggestion        *autosuggest.Suggestion
	completions       *CompletionState
	yankState         *yankArgState
	lastPaste         *pasteMarker
	historySearchText *string

	mode      InputMode
	recording *RecordingState

	advisors [advisorKinds]advisorState

	// Collaborators and policy, fixed at construction.
	clip                clipboard.Clipboard
	completer           completion.Completer
	validator           validate.Validator
	suggester           autosuggest.AutoSuggest
	ed                  editor.Editor
	readOnly            func() bool
	multiline           bool
	historySearch       bool
	completeWhileTyping bool
	completionWrap      bool
	acceptHandler       func(*Buffer) bool
	advisorErrors       func(kind AdvisorKind, err error)
	ctx                 context.Context

	onTextChanged        []func(*Buffer)
	onCursorChanged      []func(*Buffer)
	onCompletionsChanged []func(*Buffer)
	onSuggestionSet      []func(*Buffer)
}

// New creates a buffer configured by the given options. Without options the
// buffer starts empty, keeps history in memory, and uses an in-memory
// clipboard.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		doc:             document.New("", 0),
		maxUndo:         defaultMaxUndo,
		preferredColumn: -1,
		completionWrap:  true,
		ctx:             context.Background(),
	}
	cacheSize := defaultCacheSize

	cfg := &config{buf: b, cacheSize: &cacheSize}
	for _, opt := range opts {
		opt(cfg)
	}

	b.cache = newDocCache(cacheSize)
	b.cache.put(b.doc)
	if b.hist == nil {
		b.hist = history.NewMemory()
	}
	if b.clip == nil {
		b.clip = clipboard.NewInMemory()
	}
	b.workingLines = []string{b.doc.Text()}
	b.workingIndex = 0
	return b
}

// Snapshot accessors

// Document returns the current immutable document snapshot.
func (b *Buffer) Document() *document.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc
}

// Text returns the current text.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Text()
}

// CursorPosition returns the current cursor position as a rune index.
func (b *Buffer) CursorPosition() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.CursorPosition()
}

// Revision returns a counter that increments on every text change. Equal
// revisions imply equal text.
func (b *Buffer) Revision() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revision
}

// Suggestion returns the current auto-suggestion, or nil.
func (b *Buffer) Suggestion() *autosuggest.Suggestion {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.suggestion
}

// ValidationState returns the validation status for the current text and the
// validation error when the status is ValidationInvalid.
func (b *Buffer) ValidationState() (ValidationStatus, *validate.ValidationError) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validationStatus, b.validationError
}

// IsReadOnly reports whether the read-only predicate currently rejects text
// mutations.
func (b *Buffer) IsReadOnly() bool {
	if b.readOnly == nil {
		return false
	}
	return b.readOnly()
}

// Multiline reports whether the buffer was configured for multiline input.
func (b *Buffer) Multiline() bool { return b.multiline }

// Clipboard returns the clipboard collaborator.
func (b *Buffer) Clipboard() clipboard.Clipboard { return b.clip }

// InputMode returns the current modal editing mode.
func (b *Buffer) InputMode() InputMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

// SetInputMode switches the modal editing mode.
func (b *Buffer) SetInputMode(mode InputMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mode = mode
}

// Change listeners. Each registration appends; listeners run in
// registration order after the triggering mutation releases the lock.

// OnTextChanged registers a listener for text changes.
func (b *Buffer) OnTextChanged(fn func(*Buffer)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onTextChanged = append(b.onTextChanged, fn)
}

// OnCursorPositionChanged registers a listener for cursor moves.
func (b *Buffer) OnCursorPositionChanged(fn func(*Buffer)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onCursorChanged = append(b.onCursorChanged, fn)
}

// OnCompletionsChanged registers a listener for completion state changes.
func (b *Buffer) OnCompletionsChanged(fn func(*Buffer)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onCompletionsChanged = append(b.onCompletionsChanged, fn)
}

// OnSuggestionSet registers a listener for auto-suggestion updates.
func (b *Buffer) OnSuggestionSet(fn func(*Buffer)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onSuggestionSet = append(b.onSuggestionSet, fn)
}

// Core mutation machinery

// setDocumentLocked installs a new document snapshot and applies the
// invalidation rules. A text change invalidates validation state, the
// suggestion, the history search session, the redo stack (except from
// inside Undo/Redo), and all cursor-dependent state;
// a cursor-only change invalidates completion, argument-yank, and paste
// state but keeps validation and the suggestion. Returns the notifications
// to fire once the lock is released.
//
// Callers needing to survive a mutation (completion navigation, history
// search, repeated argument yank, paste rotation) stash their state and
// restore it after this returns.
func (b *Buffer) setDocumentLocked(newDoc *document.Document) notifyFlags {
	old := b.doc
	if newDoc.Equal(old) {
		return 0
	}
	textChanged := newDoc.Text() != old.Text()
	cursorChanged := newDoc.CursorPosition() != old.CursorPosition()

	b.doc = newDoc
	b.cache.put(newDoc)

	var flags notifyFlags
	if b.completions != nil {
		b.completions = nil
		flags |= notifyCompletions
	}
	b.yankState = nil
	b.lastPaste = nil
	b.preferredColumn = -1

	if textChanged {
		b.revision++
		b.workingLines[b.workingIndex] = newDoc.Text()
		b.validationStatus = ValidationUnknown
		b.validationError = nil
		b.historySearchText = nil
		if !b.restoring {
			b.redoStack = nil
		}
		if b.suggestion != nil {
			b.suggestion = nil
			flags |= notifySuggestion
		}
		flags |= notifyText
	}
	if cursorChanged {
		flags |= notifyCursor
	}
	return flags
}

// docLocked builds a document through the cache.
func (b *Buffer) docLocked(text string, cursor int) *document.Document {
	return b.cache.get(text, cursor, nil)
}

// notify fires the listeners selected by flags.
func (b *Buffer) notify(flags notifyFlags) {
	if flags == 0 {
		return
	}
	b.mu.Lock()
	var fns []func(*Buffer)
	if flags&notifyText != 0 {
		fns = append(fns, b.onTextChanged...)
	}
	if flags&notifyCursor != 0 {
		fns = append(fns, b.onCursorChanged...)
	}
	if flags&notifyCompletions != 0 {
		fns = append(fns, b.onCompletionsChanged...)
	}
	if flags&notifySuggestion != 0 {
		fns = append(fns, b.onSuggestionSet...)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(b)
	}
}

// checkWritable evaluates the read-only predicate. It runs outside the
// buffer lock so the predicate may consult locked caller state.
func (b *Buffer) checkWritable() error {
	if b.readOnly != nil && b.readOnly() {
		return ErrReadOnly
	}
	return nil
}

// Whole-document setters

// SetDocument replaces the document in one step. Out-of-range cursor and
// anchor positions in the given document have already been clamped by the
// document package.
func (b *Buffer) SetDocument(doc *document.Document) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	b.mu.Lock()
	flags := b.setDocumentLocked(doc)
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// SetDocumentBypassReadOnly replaces the document without consulting the
// read-only predicate. Use it to load content into a buffer that rejects
// user edits; every other mutation path honors the predicate.
func (b *Buffer) SetDocumentBypassReadOnly(doc *document.Document) {
	b.mu.Lock()
	flags := b.setDocumentLocked(doc)
	b.mu.Unlock()
	b.notify(flags)
}

// SetText replaces the text, keeping the cursor position clamped into the
// new text.
func (b *Buffer) SetText(text string) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	b.mu.Lock()
	flags := b.setDocumentLocked(b.docLocked(text, b.doc.CursorPosition()))
	b.mu.Unlock()
	b.notify(flags)
	return nil
}

// SetCursorPosition moves the cursor, clamped to the text boundaries.
// Cursor motion is allowed on read-only buffers.
func (b *Buffer) SetCursorPosition(pos int) {
	b.mu.Lock()
	flags := b.setDocumentLocked(b.doc.WithCursor(pos))
	b.mu.Unlock()
	b.notify(flags)
}

// Reset restores the buffer to an empty document and discards all derived
// state, including the undo and redo stacks. History reloads lazily on the
// next navigation, so entries appended since the last load become visible.
func (b *Buffer) Reset() {
	b.mu.Lock()
	flags := b.setDocumentLocked(b.docLocked("", 0))
	b.undoStack = nil
	b.redoStack = nil
	b.historyLoaded = false
	b.workingLines = []string{""}
	b.workingIndex = 0
	b.validationStatus = ValidationUnknown
	b.validationError = nil
	if b.suggestion != nil {
		b.suggestion = nil
		flags |= notifySuggestion
	}
	b.mu.Unlock()
	b.notify(flags)
}

// Accept runs the accept cycle: validate, append to history, hand the text
// to the accept handler, and reset. It returns false with a nil error when
// validation rejected the input; the buffer keeps the text and moves the
// cursor to the reported position. A handler returning true keeps the text
// in the buffer instead of resetting.
func (b *Buffer) Accept() (bool, error) {
	ok, err := b.Validate()
	if err != nil || !ok {
		return false, err
	}
	if err := b.AppendToHistory(); err != nil {
		return false, err
	}
	keep := false
	if b.acceptHandler != nil {
		keep = b.acceptHandler(b)
	}
	if !keep {
		b.Reset()
	}
	return true, nil
}

// Macro recording

// StartRecording begins capturing key sequences into the given register.
// Any recording in progress is discarded.
func (b *Buffer) StartRecording(register rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recording = &RecordingState{Register: register}
}

// RecordKey appends a key sequence to the recording in progress. It is a
// no-op when nothing is recording.
func (b *Buffer) RecordKey(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.recording != nil {
		b.recording.Keys = append(b.recording.Keys, key)
	}
}

// StopRecording ends the recording and returns it, or nil when nothing was
// recording.
func (b *Buffer) StopRecording() *RecordingState {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec := b.recording
	b.recording = nil
	return rec
}

// Recording returns the register being recorded into and whether a
// recording is in progress.
func (b *Buffer) Recording() (rune, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.recording == nil {
		return 0, false
	}
	return b.recording.Register, true
}
