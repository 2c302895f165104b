package buffer

import "github.com/dshills/lineedit/document"

// defaultCacheSize is the default capacity of the per-buffer document cache.
const defaultCacheSize = 8

// docCache memoizes recently constructed documents keyed by their value
// tuple, so repeated reads of the same (text, cursor, selection) do not
// rebuild line-index structures. It is owned by one Buffer and accessed only
// under the buffer lock, so it needs no locking of its own.
//
// Recency eviction: hits move to the front, inserts push at the front, the
// last entry falls off when over capacity.
type docCache struct {
	capacity int
	entries  []*document.Document
}

func newDocCache(capacity int) *docCache {
	if capacity <= 0 {
		capacity = defaultCacheSize
	}
	return &docCache{capacity: capacity}
}

// get returns a document for the given value tuple, constructing one only on
// a cache miss.
func (c *docCache) get(text string, cursor int, sel *document.SelectionState) *document.Document {
	for i, d := range c.entries {
		if d.Text() == text && d.CursorPosition() == cursor && selectionEqual(d.Selection(), sel) {
			if i != 0 {
				copy(c.entries[1:i+1], c.entries[:i])
				c.entries[0] = d
			}
			return d
		}
	}

	d := document.NewWithSelection(text, cursor, sel)
	c.put(d)
	return d
}

// put inserts an externally constructed document at the front.
func (c *docCache) put(d *document.Document) {
	c.entries = append([]*document.Document{d}, c.entries...)
	if len(c.entries) > c.capacity {
		c.entries = c.entries[:c.capacity]
	}
}

func selectionEqual(a, b *document.SelectionState) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return *a == *b
	}
}
