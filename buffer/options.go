package buffer

import (
	"context"

	"github.com/dshills/lineedit/autosuggest"
	"github.com/dshills/lineedit/clipboard"
	"github.com/dshills/lineedit/completion"
	"github.com/dshills/lineedit/document"
	"github.com/dshills/lineedit/editor"
	"github.com/dshills/lineedit/history"
	"github.com/dshills/lineedit/validate"
)

// config collects option values before the buffer finishes construction.
type config struct {
	buf       *Buffer
	cacheSize *int
}

// Option configures a Buffer at construction time.
type Option func(*config)

// WithText sets the initial text with the cursor at the end.
func WithText(text string) Option {
	return func(c *config) {
		c.buf.doc = document.New(text, len([]rune(text)))
	}
}

// WithDocument sets the initial document.
func WithDocument(doc *document.Document) Option {
	return func(c *config) {
		if doc != nil {
			c.buf.doc = doc
		}
	}
}

// WithHistory sets the history store. Entries load lazily on the first
// history navigation.
func WithHistory(h history.History) Option {
	return func(c *config) { c.buf.hist = h }
}

// WithClipboard sets the clipboard. The default is an in-memory kill ring.
func WithClipboard(cb clipboard.Clipboard) Option {
	return func(c *config) { c.buf.clip = cb }
}

// WithCompleter sets the completion provider. A provider that also
// implements completion.AsyncCompleter runs on a background goroutine for
// RefreshCompletions.
func WithCompleter(cp completion.Completer) Option {
	return func(c *config) { c.buf.completer = cp }
}

// WithValidator sets the input validator.
func WithValidator(v validate.Validator) Option {
	return func(c *config) { c.buf.validator = v }
}

// WithAutoSuggest sets the suggestion provider.
func WithAutoSuggest(s autosuggest.AutoSuggest) Option {
	return func(c *config) { c.buf.suggester = s }
}

// WithEditor sets the external editor used by OpenInEditor.
func WithEditor(e editor.Editor) Option {
	return func(c *config) { c.buf.ed = e }
}

// WithReadOnly sets the read-only predicate. When it returns true, text
// mutations fail with ErrReadOnly; cursor motion stays allowed.
func WithReadOnly(pred func() bool) Option {
	return func(c *config) { c.buf.readOnly = pred }
}

// WithMultiline marks the buffer as accepting multiline input.
func WithMultiline(multiline bool) Option {
	return func(c *config) { c.buf.multiline = multiline }
}

// WithHistorySearch enables prefix-filtered history navigation: the text
// before the cursor at the start of a navigation session filters which
// entries HistoryBackward and HistoryForward visit.
func WithHistorySearch(enabled bool) Option {
	return func(c *config) { c.buf.historySearch = enabled }
}

// WithCompleteWhileTyping triggers an asynchronous completion refresh after
// every text insertion.
func WithCompleteWhileTyping(enabled bool) Option {
	return func(c *config) { c.buf.completeWhileTyping = enabled }
}

// WithCompletionWrapAround controls whether CompleteNext and
// CompletePrevious cycle past the ends of the candidate list. Enabled by
// default; when disabled, navigation stops at the first and last candidate.
func WithCompletionWrapAround(enabled bool) Option {
	return func(c *config) { c.buf.completionWrap = enabled }
}

// WithAcceptHandler sets the handler invoked by Accept after validation and
// history append. Returning true keeps the text in the buffer instead of
// resetting it.
func WithAcceptHandler(fn func(*Buffer) bool) Option {
	return func(c *config) { c.buf.acceptHandler = fn }
}

// WithAdvisorErrorHook sets the hook that receives errors from background
// completion, validation, and suggestion runs. Without a hook those errors
// are dropped.
func WithAdvisorErrorHook(fn func(kind AdvisorKind, err error)) Option {
	return func(c *config) { c.buf.advisorErrors = fn }
}

// WithContext sets the context used for background runs triggered
// implicitly (complete-while-typing, suggestion refresh after insertion).
// Explicit Refresh calls carry their own context.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.buf.ctx = ctx
		}
	}
}

// WithMaxUndoEntries bounds the undo stack. Values below 1 keep the
// default.
func WithMaxUndoEntries(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.buf.maxUndo = n
		}
	}
}

// WithCacheSize sets the document cache capacity.
func WithCacheSize(n int) Option {
	return func(c *config) {
		if n >= 1 {
			*c.cacheSize = n
		}
	}
}

// WithInputMode sets the initial modal editing mode.
func WithInputMode(mode InputMode) Option {
	return func(c *config) { c.buf.mode = mode }
}
