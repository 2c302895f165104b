package buffer

import (
	"github.com/dshills/lineedit/document"
)

// InputMode is the modal editing mode the surrounding key bindings are in.
// The buffer does not interpret modes; it only keeps dependent sub-state
// (recording, argument-yank) consistent across transitions.
type InputMode uint8

const (
	// ModeInsert is ordinary insertion.
	ModeInsert InputMode = iota
	// ModeOverwrite replaces characters instead of inserting.
	ModeOverwrite
	// ModeNavigation is a Vi-style normal mode.
	ModeNavigation
)

// String returns the mode name.
func (m InputMode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeOverwrite:
		return "overwrite"
	case ModeNavigation:
		return "navigation"
	default:
		return "unknown"
	}
}

// ValidationStatus is the tri-state outcome of input validation.
type ValidationStatus uint8

const (
	// ValidationUnknown means the current text has not been validated.
	ValidationUnknown ValidationStatus = iota
	// ValidationValid means the current text passed validation.
	ValidationValid
	// ValidationInvalid means the current text was rejected.
	ValidationInvalid
)

// String returns the status name.
func (s ValidationStatus) String() string {
	switch s {
	case ValidationUnknown:
		return "unknown"
	case ValidationValid:
		return "valid"
	case ValidationInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// RecordingState captures keys for macro recording into a register.
type RecordingState struct {
	// Register is the register the recording will be stored in.
	Register rune
	// Keys are the recorded key sequences, in order.
	Keys []string
}

// undoEntry is one (text, cursor) snapshot on the undo or redo stack.
type undoEntry struct {
	text   string
	cursor int
}

// yankArgState tracks repeated yank-last-arg / yank-nth-arg invocations so
// each repeat replaces the previously inserted token instead of accumulating.
type yankArgState struct {
	historyPos int    // index into working lines of the entry yanked from
	n          int    // requested argument index; -1 means last
	previous   string // token inserted by the previous invocation
}

// pasteMarker remembers the document that existed before the most recent
// paste, so kill-ring rotation can replace the pasted text.
type pasteMarker struct {
	doc   *document.Document
	mode  document.PasteMode
	count int
}

// notifyFlags records which change notifications a mutation produced. They
// are collected under the lock and fired after it is released.
type notifyFlags uint8

const (
	notifyText notifyFlags = 1 << iota
	notifyCursor
	notifyCompletions
	notifySuggestion
)
