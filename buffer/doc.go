// Package buffer provides the mutable editing core for one input field: the
// text and cursor wrapped in immutable document snapshots, plus selection,
// undo/redo, history navigation, clipboard, completion, validation, and
// suggestion state.
//
// The buffer package provides:
//
//   - Thread-safe access via a single mutex; change notifications fire after
//     the lock is released
//   - Editing, navigation, selection, and clipboard operations for modal
//     (Vi/Emacs-style) key bindings
//   - Undo/redo with snapshot deduplication
//   - Lazy history loading with prefix-filtered navigation
//   - A completion state machine with exact cancel semantics
//   - Single-flight, restart-on-change coordination for asynchronous
//     completion, validation, and suggestion providers
//
// Every mutation replaces the current immutable document.Document; background
// readers holding an old snapshot are never affected. Out-of-range positions
// are clamped rather than rejected, so interactive callers cannot corrupt
// state with off-by-one key-binding bugs. The only surfaced error class from
// editing calls is ErrReadOnly.
package buffer
