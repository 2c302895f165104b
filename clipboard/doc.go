// Package clipboard provides the clipboard collaborators used by the editing
// core: an in-memory implementation with an Emacs-style kill ring and
// Vi-style named registers, and a system clipboard backed by the OS.
//
// Clipboard values are opaque to the buffer; it only constructs and reads
// Data values and never interprets their contents.
package clipboard
