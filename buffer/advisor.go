package buffer

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/lineedit/autosuggest"
	"github.com/dshills/lineedit/completion"
	"github.com/dshills/lineedit/document"
	"github.com/dshills/lineedit/validate"
)

// AdvisorKind names one of the background providers.
type AdvisorKind uint8

const (
	// AdvisorCompletion is the completion provider.
	AdvisorCompletion AdvisorKind = iota
	// AdvisorValidation is the validator.
	AdvisorValidation
	// AdvisorSuggestion is the auto-suggestion provider.
	AdvisorSuggestion

	advisorKinds = 3
)

// String returns the advisor name.
func (k AdvisorKind) String() string {
	switch k {
	case AdvisorCompletion:
		return "completion"
	case AdvisorValidation:
		return "validation"
	case AdvisorSuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// advisorState is the single-flight bookkeeping for one advisor kind: at
// most one goroutine runs per kind, and a refresh requested while one is
// running re-runs it once more with the latest document.
type advisorState struct {
	inFlight bool
	retry    bool
	ctx      context.Context
	trigger  completion.Trigger // completion advisor only
}

// triggerAdvisorLocked requests a background run. Called under the lock.
func (b *Buffer) triggerAdvisorLocked(kind AdvisorKind, ctx context.Context) {
	st := &b.advisors[kind]
	st.ctx = ctx
	if st.inFlight {
		st.retry = true
		return
	}
	st.inFlight = true
	go b.advisorLoop(kind)
}

// advisorLoop runs the provider until the result it committed was computed
// from the document that is still current.
func (b *Buffer) advisorLoop(kind AdvisorKind) {
	for {
		b.mu.Lock()
		doc := b.doc
		rev := b.revision
		ctx := b.advisors[kind].ctx
		trigger := b.advisors[kind].trigger
		b.mu.Unlock()

		b.runAdvisor(kind, ctx, doc, rev, trigger)

		b.mu.Lock()
		st := &b.advisors[kind]
		if st.retry || b.revision != rev {
			st.retry = false
			b.mu.Unlock()
			continue
		}
		st.inFlight = false
		b.mu.Unlock()
		return
	}
}

// runAdvisor calls one provider and commits its result if the text has not
// changed since the input document was snapshotted. Provider panics are
// converted to advisor errors.
func (b *Buffer) runAdvisor(kind AdvisorKind, ctx context.Context, doc *document.Document, rev uint64, trigger completion.Trigger) {
	defer func() {
		if r := recover(); r != nil {
			b.advisorError(kind, fmt.Errorf("provider panic: %v", r))
		}
	}()

	switch kind {
	case AdvisorCompletion:
		b.runCompletion(ctx, doc, rev, trigger)
	case AdvisorValidation:
		b.runValidation(ctx, doc, rev)
	case AdvisorSuggestion:
		b.runSuggestion(ctx, doc, rev)
	}
}

func (b *Buffer) advisorError(kind AdvisorKind, err error) {
	if b.advisorErrors != nil {
		b.advisorErrors(kind, err)
	}
}

// RefreshCompletions starts a background completion run. The menu opens in
// the loading phase immediately; candidates arrive when the provider
// finishes, unless the text changed in between.
func (b *Buffer) RefreshCompletions(ctx context.Context, trigger completion.Trigger) {
	if b.completer == nil {
		return
	}
	b.mu.Lock()
	b.completions = &CompletionState{
		originalDoc:   b.doc,
		completeIndex: -1,
		loadState:     CompletionsLoading,
	}
	b.advisors[AdvisorCompletion].trigger = trigger
	b.triggerAdvisorLocked(AdvisorCompletion, ctx)
	b.mu.Unlock()
	b.notify(notifyCompletions)
}

func (b *Buffer) runCompletion(ctx context.Context, doc *document.Document, rev uint64, trigger completion.Trigger) {
	var items []completion.Completion
	var err error
	if ac, ok := b.completer.(completion.AsyncCompleter); ok {
		items, err = ac.CompleteAsync(ctx, doc, trigger)
	} else {
		items, err = b.completer.Complete(doc, trigger)
	}
	if err != nil {
		b.advisorError(AdvisorCompletion, err)
		return
	}

	b.mu.Lock()
	st := b.completions
	stale := b.revision != rev || st == nil || st.loadState != CompletionsLoading
	if !stale {
		st.completions = items
		st.loadState = CompletionsLoaded
	}
	b.mu.Unlock()
	if !stale {
		b.notify(notifyCompletions)
	}
}

// RefreshSuggestion starts a background auto-suggestion run.
func (b *Buffer) RefreshSuggestion(ctx context.Context) {
	if b.suggester == nil {
		return
	}
	b.mu.Lock()
	b.triggerAdvisorLocked(AdvisorSuggestion, ctx)
	b.mu.Unlock()
}

func (b *Buffer) runSuggestion(ctx context.Context, doc *document.Document, rev uint64) {
	var s *autosuggest.Suggestion
	var err error
	if as, ok := b.suggester.(autosuggest.AsyncAutoSuggest); ok {
		s, err = as.SuggestAsync(ctx, doc)
	} else {
		s, err = b.suggester.Suggest(doc)
	}
	if err != nil {
		b.advisorError(AdvisorSuggestion, err)
		return
	}

	b.mu.Lock()
	stale := b.revision != rev
	if !stale {
		b.suggestion = s
	}
	b.mu.Unlock()
	if !stale {
		b.notify(notifySuggestion)
	}
}

// RefreshValidation starts a background validation run. The status moves
// from ValidationUnknown once the validator finishes, unless the text
// changed in between.
func (b *Buffer) RefreshValidation(ctx context.Context) {
	if b.validator == nil {
		return
	}
	b.mu.Lock()
	b.triggerAdvisorLocked(AdvisorValidation, ctx)
	b.mu.Unlock()
}

func (b *Buffer) runValidation(ctx context.Context, doc *document.Document, rev uint64) {
	var err error
	if av, ok := b.validator.(validate.AsyncValidator); ok {
		err = av.ValidateAsync(ctx, doc)
	} else {
		err = b.validator.Validate(doc)
	}

	var verr *validate.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
	default:
		b.advisorError(AdvisorValidation, err)
		return
	}

	b.mu.Lock()
	if b.revision == rev {
		if verr != nil {
			b.validationStatus = ValidationInvalid
			b.validationError = verr
		} else {
			b.validationStatus = ValidationValid
			b.validationError = nil
		}
	}
	b.mu.Unlock()
}

// Validate runs the validator synchronously. It returns true for valid
// input. Rejected input returns false with a nil error; the buffer records
// the validation error and moves the cursor to the reported position. A
// validator fault is returned as the error and leaves the status unknown.
// Results are cached until the text changes.
func (b *Buffer) Validate() (bool, error) {
	b.mu.Lock()
	if b.validationStatus != ValidationUnknown {
		ok := b.validationStatus == ValidationValid
		b.mu.Unlock()
		return ok, nil
	}
	doc := b.doc
	rev := b.revision
	b.mu.Unlock()

	if b.validator == nil {
		b.mu.Lock()
		if b.revision == rev {
			b.validationStatus = ValidationValid
		}
		b.mu.Unlock()
		return true, nil
	}

	err := b.validator.Validate(doc)
	var verr *validate.ValidationError
	switch {
	case err == nil:
		b.mu.Lock()
		if b.revision == rev {
			b.validationStatus = ValidationValid
			b.validationError = nil
		}
		b.mu.Unlock()
		return true, nil

	case errors.As(err, &verr):
		b.mu.Lock()
		var flags notifyFlags
		if b.revision == rev {
			flags = b.setDocumentLocked(b.doc.WithCursor(verr.CursorPosition))
			b.validationStatus = ValidationInvalid
			b.validationError = verr
		}
		b.mu.Unlock()
		b.notify(flags)
		return false, nil

	default:
		return false, err
	}
}
