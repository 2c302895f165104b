package buffer

import (
	"testing"

	"github.com/dshills/lineedit/clipboard"
	"github.com/dshills/lineedit/document"
)

func TestCopySelection(t *testing.T) {
	b := New(WithText("hello world"))
	b.SetCursorPosition(0)
	b.StartSelection(document.SelectionCharacters)
	b.SetCursorPosition(5)

	data := b.CopySelection()
	if data.Text != "hello" || data.Type != document.SelectionCharacters {
		t.Errorf("data = %+v", data)
	}
	if got := b.Clipboard().Data().Text; got != "hello" {
		t.Errorf("clipboard = %q, want %q", got, "hello")
	}
	if got := b.Text(); got != "hello world" {
		t.Errorf("copy modified text: %q", got)
	}
	if !b.HasSelection() {
		t.Error("copy dropped the selection")
	}
}

func TestCutSelection(t *testing.T) {
	b := New(WithText("hello world"))
	b.SetCursorPosition(5)
	b.StartSelection(document.SelectionCharacters)
	b.SetCursorPosition(11)

	data, err := b.CutSelection()
	if err != nil {
		t.Fatalf("CutSelection: %v", err)
	}
	if data.Text != " world" {
		t.Errorf("data.Text = %q, want %q", data.Text, " world")
	}
	if got := b.Text(); got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}
	if got := b.CursorPosition(); got != 5 {
		t.Errorf("cursor = %d, want 5", got)
	}
	if b.HasSelection() {
		t.Error("selection survived the cut")
	}
}

func TestCutBlockSelection(t *testing.T) {
	b := New(WithText("abcd\nefgh\nijkl"))
	b.SetCursorPosition(1)
	b.StartSelection(document.SelectionBlock)
	b.SetCursorPosition(b.Document().TranslateRowColToIndex(2, 3))

	data, err := b.CutSelection()
	if err != nil {
		t.Fatalf("CutSelection: %v", err)
	}
	if data.Text != "bc\nfg\njk" {
		t.Errorf("data.Text = %q, want %q", data.Text, "bc\nfg\njk")
	}
	if got := b.Text(); got != "ad\neh\nil" {
		t.Errorf("Text() = %q, want %q", got, "ad\neh\nil")
	}
}

func TestPasteCharacters(t *testing.T) {
	data := clipboard.Data{Text: "XY", Type: document.SelectionCharacters}
	tests := []struct {
		name       string
		mode       document.PasteMode
		count      int
		wantText   string
		wantCursor int
	}{
		{"emacs", document.PasteEmacs, 1, "abXYcd", 4},
		{"emacs count", document.PasteEmacs, 2, "abXYXYcd", 6},
		{"vi before", document.PasteViBefore, 1, "abXYcd", 3},
		{"vi after", document.PasteViAfter, 1, "abcXYd", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(WithText("abcd"))
			b.SetCursorPosition(2)
			if err := b.PasteClipboardData(data, tt.mode, tt.count); err != nil {
				t.Fatalf("PasteClipboardData: %v", err)
			}
			if got := b.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			if got := b.CursorPosition(); got != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", got, tt.wantCursor)
			}
		})
	}
}

func TestPasteLines(t *testing.T) {
	data := clipboard.Data{Text: "new line", Type: document.SelectionLines}

	b := New(WithText("one\ntwo"))
	b.SetCursorPosition(1) // on "one"
	b.PasteClipboardData(data, document.PasteViAfter, 1)
	if got := b.Text(); got != "one\nnew line\ntwo" {
		t.Errorf("Text() = %q, want %q", got, "one\nnew line\ntwo")
	}
	if got := b.CursorPosition(); got != 4 {
		t.Errorf("cursor = %d, want start of pasted line", got)
	}

	b2 := New(WithText("one\ntwo"))
	b2.SetCursorPosition(1)
	b2.PasteClipboardData(data, document.PasteViBefore, 1)
	if got := b2.Text(); got != "new line\none\ntwo" {
		t.Errorf("Text() = %q, want %q", got, "new line\none\ntwo")
	}
	if got := b2.CursorPosition(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
}

func TestPasteBlock(t *testing.T) {
	data := clipboard.Data{Text: "XX\nYY", Type: document.SelectionBlock}
	b := New(WithText("abcd\nefgh"))
	b.SetCursorPosition(1)
	b.PasteClipboardData(data, document.PasteViAfter, 1)
	if got := b.Text(); got != "abXXcd\nefYYgh" {
		t.Errorf("Text() = %q, want %q", got, "abXXcd\nefYYgh")
	}
}

func TestPasteBlockPadsShortLines(t *testing.T) {
	data := clipboard.Data{Text: "X\nY\nZ", Type: document.SelectionBlock}
	b := New(WithText("abcd\ne"))
	b.SetCursorPosition(2)
	b.PasteClipboardData(data, document.PasteViAfter, 1)
	if got := b.Text(); got != "abcXd\ne  Y\n   Z" {
		t.Errorf("Text() = %q, want %q", got, "abcXd\ne  Y\n   Z")
	}
}

func TestRotatePaste(t *testing.T) {
	b := New(WithText("start "))
	b.Clipboard().SetData(clipboard.Data{Text: "old", Type: document.SelectionCharacters})
	b.Clipboard().SetData(clipboard.Data{Text: "new", Type: document.SelectionCharacters})

	b.Paste()
	if got := b.Text(); got != "start new" {
		t.Fatalf("Text() = %q", got)
	}

	rotated, err := b.RotatePaste()
	if err != nil || !rotated {
		t.Fatalf("RotatePaste() = %v, %v", rotated, err)
	}
	if got := b.Text(); got != "start old" {
		t.Errorf("Text() = %q, want %q", got, "start old")
	}

	// Rotating again cycles back.
	b.RotatePaste()
	if got := b.Text(); got != "start new" {
		t.Errorf("Text() = %q, want %q", got, "start new")
	}
}

func TestRotatePasteNeedsFreshPaste(t *testing.T) {
	b := New(WithText("ab"))
	b.Clipboard().SetData(clipboard.Data{Text: "x", Type: document.SelectionCharacters})

	if rotated, _ := b.RotatePaste(); rotated {
		t.Error("RotatePaste() rotated without a paste")
	}

	b.Paste()
	b.InsertText("!")
	if rotated, _ := b.RotatePaste(); rotated {
		t.Error("RotatePaste() rotated after an intervening edit")
	}
}
