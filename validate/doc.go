// Package validate defines the input-validation collaborators consumed by
// the editing core. A Validator inspects an immutable document snapshot and
// reports whether the input is acceptable; a failed validation carries the
// cursor position of the problem and a message for the UI.
package validate
