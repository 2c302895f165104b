// Package editor provides the external-editor collaborator: it hands the
// current input to $VISUAL/$EDITOR through a temporary file and returns the
// edited text. The buffer applies the result as a single document
// replacement.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Editor edits a piece of text out of band. It returns the replacement text
// and whether the text changed.
type Editor interface {
	Edit(text string) (string, bool, error)
}

// External runs an editor command on a temporary file. The command is
// executed with the terminal attached, so the caller must suspend its own
// terminal handling around the call.
type External struct {
	// Command overrides the editor command. When empty, $VISUAL then
	// $EDITOR are consulted, falling back to vi.
	Command string
	// Suffix is appended to the temp file name so editors can pick a
	// syntax mode. Defaults to ".txt".
	Suffix string
}

// Edit implements Editor.
func (e *External) Edit(text string) (string, bool, error) {
	command := e.Command
	if command == "" {
		command = os.Getenv("VISUAL")
	}
	if command == "" {
		command = os.Getenv("EDITOR")
	}
	if command == "" {
		command = "vi"
	}

	suffix := e.Suffix
	if suffix == "" {
		suffix = ".txt"
	}

	path := filepath.Join(os.TempDir(), "lineedit-"+uuid.New().String()+suffix)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", false, fmt.Errorf("writing editor temp file: %w", err)
	}
	defer os.Remove(path)

	// The command may carry arguments ("code --wait", "vim -u NONE").
	parts := strings.Fields(command)
	args := append(parts[1:], path)

	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("running editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading editor temp file: %w", err)
	}

	// Editors commonly append a trailing newline on save.
	result := strings.TrimRight(string(edited), "\n")
	return result, result != text, nil
}
