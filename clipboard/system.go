package clipboard

import (
	"sync"

	"github.com/zyedidia/clipboard"

	"github.com/dshills/lineedit/document"
)

// System is a Clipboard backed by the OS clipboard. The selection type of
// the last stored entry is kept locally, since the OS clipboard only carries
// text. If the OS clipboard is unavailable the System clipboard falls back
// to an internal single slot.
type System struct {
	mu       sync.Mutex
	external bool
	fallback string
	lastType document.SelectionType
}

// NewSystem initializes the OS clipboard. The returned error is not fatal:
// the clipboard still works through the internal fallback slot.
func NewSystem() (*System, error) {
	err := clipboard.Initialize()
	return &System{external: err == nil}, err
}

// SetData writes the entry text to the OS clipboard.
func (c *System) SetData(data Data) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastType = data.Type
	if !c.external {
		c.fallback = data.Text
		return
	}
	if err := clipboard.WriteAll(data.Text, "clipboard"); err != nil {
		c.external = false
		c.fallback = data.Text
	}
}

// Data reads the current OS clipboard contents.
func (c *System) Data() Data {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.external {
		return Data{Text: c.fallback, Type: c.lastType}
	}
	text, err := clipboard.ReadAll("clipboard")
	if err != nil {
		return Data{Text: c.fallback, Type: c.lastType}
	}
	return Data{Text: text, Type: c.lastType}
}

// Rotate is a no-op; the OS clipboard holds a single slot.
func (c *System) Rotate() {}
