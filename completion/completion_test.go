package completion

import (
	"testing"

	"github.com/dshills/lineedit/document"
)

func TestDisplayText(t *testing.T) {
	c := Completion{Text: "value"}
	if got := c.DisplayText(); got != "value" {
		t.Errorf("DisplayText() = %q, want %q", got, "value")
	}
	c.Display = "shown"
	if got := c.DisplayText(); got != "shown" {
		t.Errorf("DisplayText() = %q, want %q", got, "shown")
	}
}

func TestWordCompleter(t *testing.T) {
	w := NewWordCompleter([]string{"apple", "apricot", "banana", "Apex"}, false)
	doc := document.New("eat ap", 6)

	out, err := w.Complete(doc, Trigger{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d candidates, want 2: %v", len(out), out)
	}
	for _, c := range out {
		if c.StartPosition != -2 {
			t.Errorf("StartPosition = %d, want -2", c.StartPosition)
		}
	}
}

func TestWordCompleterIgnoreCase(t *testing.T) {
	w := NewWordCompleter([]string{"Apple", "apricot"}, true)
	doc := document.New("AP", 2)

	out, err := w.Complete(doc, Trigger{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("got %d candidates, want 2: %v", len(out), out)
	}
	// The original casing is preserved in the candidate text.
	if out[0].Text != "Apple" {
		t.Errorf("Text = %q, want %q", out[0].Text, "Apple")
	}
}

func TestWordCompleterAfterWhitespace(t *testing.T) {
	w := NewWordCompleter([]string{"apple"}, false)
	doc := document.New("word ", 5)

	out, _ := w.Complete(doc, Trigger{})
	// An empty word matches every candidate inserted at the cursor.
	if len(out) != 1 || out[0].StartPosition != 0 {
		t.Errorf("out = %+v", out)
	}
}

func TestFuzzyWordCompleterRanking(t *testing.T) {
	f := NewFuzzyWordCompleter([]string{"container", "count", "cnt", "other"})
	doc := document.New("cnt", 3)

	out, err := f.Complete(doc, Trigger{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d candidates, want 3: %v", len(out), out)
	}
	// The exact match ranks first; "other" is not a subsequence match.
	if out[0].Text != "cnt" {
		t.Errorf("first = %q, want %q", out[0].Text, "cnt")
	}
	for _, c := range out {
		if c.Text == "other" {
			t.Error("non-subsequence candidate included")
		}
	}
}

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		text   string
		zero   bool
	}{
		{"exact", "abc", "abc", false},
		{"prefix", "ab", "abcdef", false},
		{"subsequence", "ace", "abcde", false},
		{"not subsequence", "xyz", "abc", true},
		{"empty text", "a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fuzzyScore(tt.query, tt.text)
			if tt.zero && got != 0 {
				t.Errorf("fuzzyScore(%q, %q) = %d, want 0", tt.query, tt.text, got)
			}
			if !tt.zero && got <= 0 {
				t.Errorf("fuzzyScore(%q, %q) = %d, want > 0", tt.query, tt.text, got)
			}
		})
	}

	if exact, prefix := fuzzyScore("abc", "abc"), fuzzyScore("abc", "abcdef"); exact <= prefix {
		t.Errorf("exact score %d should beat prefix score %d", exact, prefix)
	}
}

func TestFuncAdapter(t *testing.T) {
	called := false
	f := Func(func(doc *document.Document, trigger Trigger) ([]Completion, error) {
		called = true
		return nil, nil
	})
	f.Complete(document.New("", 0), Trigger{})
	if !called {
		t.Error("adapter did not call through")
	}
}
