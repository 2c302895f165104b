package buffer

import (
	"testing"

	"github.com/dshills/lineedit/document"
)

// Core editing

func TestInsertText(t *testing.T) {
	b := New()
	if err := b.InsertText("hello"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if got := b.Text(); got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}
	if got := b.CursorPosition(); got != 5 {
		t.Errorf("CursorPosition() = %d, want 5", got)
	}
}

func TestInsertTextMidline(t *testing.T) {
	b := New(WithText("held"))
	b.SetCursorPosition(2)
	b.InsertText("llo wor")
	if got := b.Text(); got != "hello world" {
		t.Errorf("Text() = %q, want %q", got, "hello world")
	}
}

func TestInsertTextKeepCursor(t *testing.T) {
	b := New(WithText("abcd"))
	b.SetCursorPosition(2)
	if err := b.InsertTextKeepCursor("XY"); err != nil {
		t.Fatalf("InsertTextKeepCursor: %v", err)
	}
	if got := b.Text(); got != "abXYcd" {
		t.Errorf("Text() = %q, want %q", got, "abXYcd")
	}
	if got := b.CursorPosition(); got != 2 {
		t.Errorf("CursorPosition() = %d, want 2", got)
	}
}

func TestInsertTextOverwrite(t *testing.T) {
	b := New(WithText("hello\nworld"), WithInputMode(ModeOverwrite))
	b.SetCursorPosition(3)
	b.InsertText("XYZ")
	// Overwriting stops at the end of the line.
	if got := b.Text(); got != "helXYZ\nworld" {
		t.Errorf("Text() = %q, want %q", got, "helXYZ\nworld")
	}
}

func TestDelete(t *testing.T) {
	b := New(WithText("hello"))
	b.SetCursorPosition(2)

	deleted, err := b.Delete(2)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != "ll" {
		t.Errorf("deleted = %q, want %q", deleted, "ll")
	}
	if got := b.Text(); got != "heo" {
		t.Errorf("Text() = %q, want %q", got, "heo")
	}

	// Deleting past the end clamps.
	deleted, _ = b.Delete(99)
	if deleted != "o" {
		t.Errorf("deleted = %q, want %q", deleted, "o")
	}
}

func TestDeleteBeforeCursor(t *testing.T) {
	b := New(WithText("hello"))
	deleted, err := b.DeleteBeforeCursor(2)
	if err != nil {
		t.Fatalf("DeleteBeforeCursor: %v", err)
	}
	if deleted != "lo" {
		t.Errorf("deleted = %q, want %q", deleted, "lo")
	}
	if got, want := b.Text(), "hel"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := b.CursorPosition(); got != 3 {
		t.Errorf("CursorPosition() = %d, want 3", got)
	}
}

func TestDeleteWordBefore(t *testing.T) {
	b := New(WithText("one two three"))
	deleted, _ := b.DeleteWordBefore()
	if deleted != "three" {
		t.Errorf("deleted = %q, want %q", deleted, "three")
	}
	if got := b.Text(); got != "one two " {
		t.Errorf("Text() = %q, want %q", got, "one two ")
	}
}

func TestNewlineCopyMargin(t *testing.T) {
	b := New(WithText("    indented"))
	b.Newline(true)
	if got := b.Text(); got != "    indented\n    " {
		t.Errorf("Text() = %q, want %q", got, "    indented\n    ")
	}
}

func TestJoinNextLine(t *testing.T) {
	b := New(WithText("one  \n\t two\nthree"))
	b.SetCursorPosition(0)
	b.JoinNextLine(" ")
	if got := b.Text(); got != "one two\nthree" {
		t.Errorf("Text() = %q, want %q", got, "one two\nthree")
	}
	if got := b.CursorPosition(); got != 3 {
		t.Errorf("CursorPosition() = %d, want 3", got)
	}
}

func TestSwapCharactersBeforeCursor(t *testing.T) {
	b := New(WithText("ab"))
	b.SwapCharactersBeforeCursor()
	if got := b.Text(); got != "ba" {
		t.Errorf("Text() = %q, want %q", got, "ba")
	}

	// Fewer than two runes before the cursor is a no-op.
	b2 := New(WithText("ab"))
	b2.SetCursorPosition(1)
	b2.SwapCharactersBeforeCursor()
	if got := b2.Text(); got != "ab" {
		t.Errorf("Text() = %q, want %q", got, "ab")
	}
}

func TestTransformRegion(t *testing.T) {
	b := New(WithText("hello world"))
	b.TransformRegion(6, 11, func(s string) string { return "THERE" })
	if got := b.Text(); got != "hello THERE" {
		t.Errorf("Text() = %q, want %q", got, "hello THERE")
	}
}

func TestSetCursorPositionClamps(t *testing.T) {
	b := New(WithText("abc"))
	b.SetCursorPosition(99)
	if got := b.CursorPosition(); got != 3 {
		t.Errorf("CursorPosition() = %d, want 3", got)
	}
	b.SetCursorPosition(-5)
	if got := b.CursorPosition(); got != 0 {
		t.Errorf("CursorPosition() = %d, want 0", got)
	}

	// Clamping to the same effective position changes nothing.
	b.SetCursorPosition(0)
	rev := b.Revision()
	b.SetCursorPosition(-1)
	if got := b.Revision(); got != rev {
		t.Errorf("Revision changed on a no-op cursor move")
	}
}

func TestReadOnly(t *testing.T) {
	locked := true
	b := New(WithText("abc"), WithReadOnly(func() bool { return locked }))

	if err := b.InsertText("x"); err != ErrReadOnly {
		t.Errorf("InsertText err = %v, want ErrReadOnly", err)
	}
	if _, err := b.Delete(1); err != ErrReadOnly {
		t.Errorf("Delete err = %v, want ErrReadOnly", err)
	}
	if got := b.Text(); got != "abc" {
		t.Errorf("Text() = %q, want %q", got, "abc")
	}

	// Cursor motion stays allowed.
	b.SetCursorPosition(1)
	if got := b.CursorPosition(); got != 1 {
		t.Errorf("CursorPosition() = %d, want 1", got)
	}

	locked = false
	if err := b.InsertText("x"); err != nil {
		t.Errorf("InsertText after unlock: %v", err)
	}
}

func TestSetDocumentBypassReadOnly(t *testing.T) {
	b := New(WithText("display"), WithReadOnly(func() bool { return true }))

	if err := b.SetDocument(document.New("new value", 0)); err != ErrReadOnly {
		t.Errorf("SetDocument err = %v, want ErrReadOnly", err)
	}
	if got := b.Text(); got != "display" {
		t.Errorf("Text() = %q, want %q", got, "display")
	}

	b.SetDocumentBypassReadOnly(document.New("new value", 3))
	if got := b.Text(); got != "new value" {
		t.Errorf("Text() = %q, want %q", got, "new value")
	}
	if got := b.CursorPosition(); got != 3 {
		t.Errorf("CursorPosition() = %d, want 3", got)
	}
}

func TestRevisionTracksTextOnly(t *testing.T) {
	b := New(WithText("abc"))
	rev := b.Revision()

	b.SetCursorPosition(1)
	if got := b.Revision(); got != rev {
		t.Error("cursor move changed the revision")
	}
	b.InsertText("x")
	if got := b.Revision(); got == rev {
		t.Error("text change kept the revision")
	}
}

// Change notifications

func TestListeners(t *testing.T) {
	b := New()
	var textCount, cursorCount int
	b.OnTextChanged(func(*Buffer) { textCount++ })
	b.OnCursorPositionChanged(func(*Buffer) { cursorCount++ })

	b.InsertText("ab")
	if textCount != 1 {
		t.Errorf("textCount = %d, want 1", textCount)
	}
	if cursorCount != 1 {
		t.Errorf("cursorCount = %d, want 1", cursorCount)
	}

	b.SetCursorPosition(0)
	if textCount != 1 {
		t.Errorf("textCount = %d after cursor move, want 1", textCount)
	}
	if cursorCount != 2 {
		t.Errorf("cursorCount = %d, want 2", cursorCount)
	}
}

func TestListenersRunOutsideLock(t *testing.T) {
	b := New()
	var inner string
	b.OnTextChanged(func(buf *Buffer) {
		// Calling back into the buffer must not deadlock.
		inner = buf.Text()
	})
	b.InsertText("x")
	if inner != "x" {
		t.Errorf("listener saw %q, want %q", inner, "x")
	}
}

// Cursor motion

func TestCursorLeftRightStopAtLineBoundary(t *testing.T) {
	b := New(WithText("ab\ncd"))
	b.SetCursorPosition(3) // start of "cd"
	b.CursorLeft(5)
	if got := b.CursorPosition(); got != 3 {
		t.Errorf("CursorLeft crossed the line: pos = %d, want 3", got)
	}
	b.SetCursorPosition(1)
	b.CursorRight(5)
	if got := b.CursorPosition(); got != 2 {
		t.Errorf("CursorRight crossed the line: pos = %d, want 2", got)
	}
}

func TestCursorUpDownKeepsPreferredColumn(t *testing.T) {
	b := New(WithText("long line\nab\nanother end"))
	b.SetCursorPosition(b.Document().TranslateRowColToIndex(2, 7))

	b.CursorUp(1)
	if row, col := cursorRowCol(b); row != 1 || col != 2 {
		t.Errorf("after up: (%d, %d), want (1, 2)", row, col)
	}
	b.CursorUp(1)
	if row, col := cursorRowCol(b); row != 0 || col != 7 {
		t.Errorf("after up twice: (%d, %d), want (0, 7)", row, col)
	}
	b.CursorDown(1)
	if row, col := cursorRowCol(b); row != 1 || col != 2 {
		t.Errorf("after down: (%d, %d), want (1, 2)", row, col)
	}

	// A horizontal move ends the run; the column preference resets.
	b.CursorLeft(1)
	b.CursorDown(1)
	if row, col := cursorRowCol(b); row != 2 || col != 1 {
		t.Errorf("after left+down: (%d, %d), want (2, 1)", row, col)
	}
}

func cursorRowCol(b *Buffer) (int, int) {
	doc := b.Document()
	return doc.TranslateIndexToPosition(doc.CursorPosition())
}

func TestGoToStartEndOfLine(t *testing.T) {
	b := New(WithText("  hello\nworld"))
	b.SetCursorPosition(5)

	b.GoToStartOfLine(false)
	if got := b.CursorPosition(); got != 0 {
		t.Errorf("start of line = %d, want 0", got)
	}
	b.GoToStartOfLine(true)
	if got := b.CursorPosition(); got != 2 {
		t.Errorf("start after whitespace = %d, want 2", got)
	}
	b.GoToEndOfLine()
	if got := b.CursorPosition(); got != 7 {
		t.Errorf("end of line = %d, want 7", got)
	}
}

// Reset and accept

func TestReset(t *testing.T) {
	b := New(WithText("something"))
	b.SaveToUndoStack()
	b.InsertText("x")
	b.Reset()

	if got := b.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
	if got := b.UndoDepth(); got != 0 {
		t.Errorf("UndoDepth() = %d, want 0", got)
	}
	if b.Undo() {
		t.Error("Undo() succeeded after reset")
	}
}

func TestAcceptRunsHandlerAndResets(t *testing.T) {
	var got string
	b := New(WithAcceptHandler(func(buf *Buffer) bool {
		got = buf.Text()
		return false
	}))
	b.InsertText("hello")

	ok, err := b.Accept()
	if err != nil || !ok {
		t.Fatalf("Accept() = %v, %v", ok, err)
	}
	if got != "hello" {
		t.Errorf("handler saw %q, want %q", got, "hello")
	}
	if b.Text() != "" {
		t.Errorf("Text() = %q after accept, want empty", b.Text())
	}

	// The accepted line is in history now.
	b.HistoryBackward(1)
	if b.Text() != "hello" {
		t.Errorf("history recall = %q, want %q", b.Text(), "hello")
	}
}

func TestAcceptHandlerKeepsText(t *testing.T) {
	b := New(WithAcceptHandler(func(*Buffer) bool { return true }))
	b.InsertText("keep me")
	if ok, err := b.Accept(); err != nil || !ok {
		t.Fatalf("Accept() = %v, %v", ok, err)
	}
	if got := b.Text(); got != "keep me" {
		t.Errorf("Text() = %q, want %q", got, "keep me")
	}
}

// Recording

func TestRecording(t *testing.T) {
	b := New()
	if _, ok := b.Recording(); ok {
		t.Error("Recording() true before StartRecording")
	}

	b.StartRecording('q')
	b.RecordKey("i")
	b.RecordKey("hello")
	rec := b.StopRecording()
	if rec == nil || rec.Register != 'q' {
		t.Fatalf("StopRecording() = %+v", rec)
	}
	if len(rec.Keys) != 2 || rec.Keys[1] != "hello" {
		t.Errorf("Keys = %v", rec.Keys)
	}
	if b.StopRecording() != nil {
		t.Error("second StopRecording() returned a recording")
	}
}

// Selection survives cursor motion, dies on edit

func TestSelectionLifecycle(t *testing.T) {
	b := New(WithText("hello world"))
	b.SetCursorPosition(0)
	b.StartSelection(document.SelectionCharacters)
	b.SetCursorPosition(5)

	if !b.HasSelection() {
		t.Fatal("selection lost on cursor move")
	}
	if got := b.Document().SelectionRanges()[0]; got.Start != 0 || got.End != 5 {
		t.Errorf("range = %+v, want {0 5}", got)
	}

	b.InsertText("x")
	if b.HasSelection() {
		t.Error("selection survived a text change")
	}
}
