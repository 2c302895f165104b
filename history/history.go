package history

import "sync"

// History stores accepted input lines, oldest first.
type History interface {
	// Entries returns all stored entries, oldest first.
	Entries() ([]string, error)
	// Append stores a new entry as the most recent one.
	Append(entry string) error
}

// Memory is an in-process History. The zero value is ready to use.
type Memory struct {
	mu      sync.Mutex
	entries []string
}

// NewMemory creates an in-memory history preloaded with the given entries,
// oldest first.
func NewMemory(entries ...string) *Memory {
	m := &Memory{}
	m.entries = append(m.entries, entries...)
	return m
}

// Entries returns a copy of all stored entries.
func (m *Memory) Entries() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Append stores a new entry.
func (m *Memory) Append(entry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	return nil
}
