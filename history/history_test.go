package history

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestMemoryHistory(t *testing.T) {
	m := NewMemory("one", "two")
	if err := m.Append("three"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := m.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Entries() = %v, want %v", entries, want)
	}

	// Entries returns a copy.
	entries[0] = "mutated"
	entries2, _ := m.Entries()
	if entries2[0] != "one" {
		t.Error("Entries() exposed internal state")
	}
}

func TestFileHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	entries := []string{
		"plain entry",
		"multi\nline\nentry",
		"trailing backslash \\",
		"tabs\tand spaces",
	}
	for _, e := range entries {
		if err := f.Append(e); err != nil {
			t.Fatalf("Append(%q): %v", e, err)
		}
	}

	// A fresh reader sees the same entries.
	f2, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile reopen: %v", err)
	}
	defer f2.Close()

	got, err := f2.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Errorf("Entries() = %q, want %q", got, entries)
	}
}

func TestFileHistoryMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist-yet")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	entries, err := f.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Entries() = %v, want empty", entries)
	}
}

func TestFileHistoryWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	writer, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer writer.Close()
	if err := writer.Append("first"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reader, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile reader: %v", err)
	}
	defer reader.Close()

	changed := make(chan struct{}, 8)
	if err := reader.Watch(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := writer.Append("second"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	entries, err := reader.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 || entries[1] != "second" {
		t.Errorf("Entries() = %v, want appended entry visible", entries)
	}
}
