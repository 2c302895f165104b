package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when a closed FileHistory watcher is used.
var ErrWatcherClosed = errors.New("history watcher closed")

// File is an append-only file-backed History. Entries are stored one per
// line; newlines and backslashes inside an entry are escaped so multiline
// input round-trips.
//
// A File can additionally watch its backing path so that entries appended by
// other sessions become visible without reopening.
type File struct {
	mu      sync.Mutex
	path    string
	entries []string

	watcher  *fsnotify.Watcher
	closeCh  chan struct{}
	closedWg sync.WaitGroup
	onChange func()
}

// NewFile opens (or creates) a file-backed history at path and loads its
// entries.
func NewFile(path string) (*File, error) {
	f := &File{path: path}
	if err := f.reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Entries returns a copy of the loaded entries, oldest first.
func (f *File) Entries() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

// Append stores a new entry in memory and appends it to the backing file.
func (f *File) Append(entry string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(encodeEntry(entry) + "\n"); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}

	f.entries = append(f.entries, entry)
	return nil
}

// Watch starts watching the backing file for external modifications and
// reloads entries when one is detected. The optional onChange callback is
// invoked after each reload. Watch may be called at most once; call Close
// to stop watching.
func (f *File) Watch(onChange func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watcher != nil {
		return errors.New("history file already watched")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(f.path); err != nil {
		w.Close()
		return err
	}

	f.watcher = w
	f.onChange = onChange
	f.closeCh = make(chan struct{})

	f.closedWg.Add(1)
	go f.processLoop(w)
	return nil
}

// Close stops the watcher, if any.
func (f *File) Close() error {
	f.mu.Lock()
	w := f.watcher
	f.watcher = nil
	if w != nil {
		close(f.closeCh)
	}
	f.mu.Unlock()

	if w == nil {
		return nil
	}
	err := w.Close()
	f.closedWg.Wait()
	return err
}

func (f *File) processLoop(w *fsnotify.Watcher) {
	defer f.closedWg.Done()

	for {
		select {
		case <-f.closeCh:
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			f.mu.Lock()
			_ = f.reload()
			onChange := f.onChange
			f.mu.Unlock()
			if onChange != nil {
				onChange()
			}

		case _, ok := <-w.Errors:
			if !ok {
				return
			}
		}
	}
}

// reload reads the backing file into memory. Caller holds the lock when the
// watcher is running; at construction time no lock is needed.
func (f *File) reload() error {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.entries = nil
			return nil
		}
		return fmt.Errorf("reading history file: %w", err)
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		entries = append(entries, decodeEntry(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading history file: %w", err)
	}

	f.entries = entries
	return nil
}

// encodeEntry escapes backslashes and newlines so an entry fits on one line.
func encodeEntry(entry string) string {
	entry = strings.ReplaceAll(entry, `\`, `\\`)
	return strings.ReplaceAll(entry, "\n", `\n`)
}

// decodeEntry reverses encodeEntry.
func decodeEntry(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '\\' || i+1 >= len(line) {
			b.WriteByte(c)
			continue
		}
		switch line[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
