// Package document provides the immutable text-plus-cursor snapshot used by
// the editing core. A Document is a frozen (text, cursor position, selection)
// triple with derived line and word queries.
//
// Documents are never mutated. Every editing operation on a buffer produces a
// new Document; holders of an old Document can keep reading it safely from any
// goroutine.
//
// Positions are rune indices into the text. The cursor position is always in
// the range [0, RuneCount]; out-of-range values passed to New are clamped.
package document
