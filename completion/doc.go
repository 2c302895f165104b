// Package completion defines the completion collaborators consumed by the
// editing core: the Completion candidate value, the Completer interfaces,
// and ready-made word and fuzzy completers.
//
// Completers are advisory and best-effort. They receive an immutable
// document snapshot and return candidate values; they never hold a reference
// back into buffer state.
package completion
