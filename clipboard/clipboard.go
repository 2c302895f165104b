package clipboard

import (
	"errors"
	"sync"
	"unicode"

	"github.com/dshills/lineedit/document"
)

// ErrInvalidRegister is returned for register names outside a-z, A-Z, 0-9.
var ErrInvalidRegister = errors.New("invalid register name")

// ringMax bounds the kill ring size.
const ringMax = 30

// Data is one clipboard entry: the text plus the selection type it was
// produced from, which controls paste placement.
type Data struct {
	Text string
	Type document.SelectionType
}

// Clipboard stores clipboard entries for a buffer.
type Clipboard interface {
	// SetData stores a new entry as the most recent one.
	SetData(data Data)
	// Data returns the most recent entry. The zero Data is returned when
	// the clipboard is empty.
	Data() Data
	// Rotate makes the next-older entry the most recent one, cycling
	// through stored entries. Implementations without a ring may no-op.
	Rotate()
}

// InMemory is a Clipboard backed by a bounded kill ring plus named
// registers. The zero value is not usable; use NewInMemory.
type InMemory struct {
	mu        sync.Mutex
	ring      []Data          // ring[0] is the most recent entry
	registers map[rune]Data
}

// NewInMemory creates an empty in-memory clipboard.
func NewInMemory() *InMemory {
	return &InMemory{
		registers: make(map[rune]Data),
	}
}

// SetData pushes an entry onto the front of the kill ring.
func (c *InMemory) SetData(data Data) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ring = append([]Data{data}, c.ring...)
	if len(c.ring) > ringMax {
		c.ring = c.ring[:ringMax]
	}
}

// Data returns the most recent entry.
func (c *InMemory) Data() Data {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.ring) == 0 {
		return Data{}
	}
	return c.ring[0]
}

// Rotate cycles the kill ring one step: the most recent entry moves to the
// back and the next-older entry becomes current.
func (c *InMemory) Rotate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.ring) < 2 {
		return
	}
	head := c.ring[0]
	copy(c.ring, c.ring[1:])
	c.ring[len(c.ring)-1] = head
}

// Len returns the number of entries in the kill ring.
func (c *InMemory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ring)
}

// Named registers
//
// Valid register names are a-z and 0-9. Uppercase A-Z append to the
// corresponding lowercase register instead of replacing it.

// SetRegister stores an entry in a named register. Uppercase names append
// text to the lowercase register of the same letter.
func (c *InMemory) SetRegister(name rune, data Data) error {
	isAppend := false
	if name >= 'A' && name <= 'Z' {
		name = unicode.ToLower(name)
		isAppend = true
	}
	if !validRegister(name) {
		return ErrInvalidRegister
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if isAppend {
		prev := c.registers[name]
		data.Text = prev.Text + data.Text
	}
	c.registers[name] = data
	return nil
}

// Register returns a copy of the entry in a named register. The second
// return value is false when the register is empty or the name invalid.
func (c *InMemory) Register(name rune) (Data, bool) {
	if name >= 'A' && name <= 'Z' {
		name = unicode.ToLower(name)
	}
	if !validRegister(name) {
		return Data{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.registers[name]
	return data, ok
}

func validRegister(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
