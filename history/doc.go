// Package history provides the persistent-history collaborators consumed by
// the editing core: an in-memory store, an append-only file store that can
// pick up entries written by other sessions, and a SQLite-backed store.
//
// A History holds previously accepted input lines, oldest first. The buffer
// pulls entries once, lazily, on the first history navigation and appends
// accepted input through the same interface.
package history
