package document

import "testing"

func TestNewClampsCursor(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		want   int
	}{
		{"negative", "hello", -3, 0},
		{"past end", "hello", 99, 5},
		{"in range", "hello", 2, 2},
		{"empty text", "", 5, 0},
		{"rune boundary", "héllo", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.text, tt.cursor)
			if got := d.CursorPosition(); got != tt.want {
				t.Errorf("CursorPosition() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewWithSelectionClampsAnchor(t *testing.T) {
	d := NewWithSelection("abc", 1, &SelectionState{Anchor: 99})
	if got := d.Selection().Anchor; got != 3 {
		t.Errorf("Anchor = %d, want 3", got)
	}
}

func TestSelectionReturnsCopy(t *testing.T) {
	d := NewWithSelection("abc", 1, &SelectionState{Anchor: 0})
	s := d.Selection()
	s.Anchor = 2
	if got := d.Selection().Anchor; got != 0 {
		t.Errorf("Anchor = %d after mutating copy, want 0", got)
	}
}

func TestEqual(t *testing.T) {
	sel := &SelectionState{Anchor: 1}
	tests := []struct {
		name string
		a, b *Document
		want bool
	}{
		{"same value", New("abc", 1), New("abc", 1), true},
		{"different text", New("abc", 1), New("abd", 1), false},
		{"different cursor", New("abc", 1), New("abc", 2), false},
		{"selection vs none", NewWithSelection("abc", 1, sel), New("abc", 1), false},
		{"same selection", NewWithSelection("abc", 1, sel), NewWithSelection("abc", 1, sel), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslateIndexToPosition(t *testing.T) {
	d := New("ab\ncde\n\nf", 0)
	tests := []struct {
		index     int
		row, col  int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{6, 1, 3},
		{7, 2, 0},
		{8, 3, 0},
		{9, 3, 1},
		{99, 3, 1}, // clamped
	}

	for _, tt := range tests {
		row, col := d.TranslateIndexToPosition(tt.index)
		if row != tt.row || col != tt.col {
			t.Errorf("TranslateIndexToPosition(%d) = (%d, %d), want (%d, %d)",
				tt.index, row, col, tt.row, tt.col)
		}
	}
}

func TestTranslateRowColToIndexRoundTrip(t *testing.T) {
	d := New("ab\ncde\n\nf", 0)
	for i := 0; i <= d.RuneCount(); i++ {
		row, col := d.TranslateIndexToPosition(i)
		if got := d.TranslateRowColToIndex(row, col); got != i {
			t.Errorf("round trip of %d gave %d", i, got)
		}
	}
}

func TestCurrentLineQueries(t *testing.T) {
	d := New("hello\nworld", 8)
	if got := d.CurrentLine(); got != "world" {
		t.Errorf("CurrentLine() = %q, want %q", got, "world")
	}
	if got := d.CurrentLineBeforeCursor(); got != "wo" {
		t.Errorf("CurrentLineBeforeCursor() = %q, want %q", got, "wo")
	}
	if got := d.CurrentLineAfterCursor(); got != "rld" {
		t.Errorf("CurrentLineAfterCursor() = %q, want %q", got, "rld")
	}
	if d.OnFirstLine() {
		t.Error("OnFirstLine() should be false")
	}
	if !d.OnLastLine() {
		t.Error("OnLastLine() should be true")
	}
}

func TestLeadingWhitespace(t *testing.T) {
	d := New("  \tindented", 5)
	if got := d.LeadingWhitespaceInCurrentLine(); got != "  \t" {
		t.Errorf("LeadingWhitespaceInCurrentLine() = %q, want %q", got, "  \t")
	}
}

func TestCursorUpDownPreferredColumn(t *testing.T) {
	d := New("long line\nab\nanother", 0)

	// From the end of "another", up lands at the end of "ab" and the
	// preferred column carries to the long first line.
	d = d.WithCursor(d.TranslateRowColToIndex(2, 7))
	up := d.WithCursor(d.CursorUpPosition(1, 7))
	if row, col := up.TranslateIndexToPosition(up.CursorPosition()); row != 1 || col != 2 {
		t.Errorf("up = (%d, %d), want (1, 2)", row, col)
	}
	up2 := up.WithCursor(up.CursorUpPosition(1, 7))
	if row, col := up2.TranslateIndexToPosition(up2.CursorPosition()); row != 0 || col != 7 {
		t.Errorf("up twice = (%d, %d), want (0, 7)", row, col)
	}
}

func TestWordBeforeCursor(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		want   string
	}{
		{"mid word", "hello wor", 9, "wor"},
		{"after space", "hello ", 6, ""},
		{"start", "hello", 0, ""},
		{"whole word", "hello", 5, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.text, tt.cursor)
			if got := d.WordBeforeCursor(); got != tt.want {
				t.Errorf("WordBeforeCursor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectionRangesCharacters(t *testing.T) {
	d := NewWithSelection("hello world", 8, &SelectionState{Anchor: 2, Type: SelectionCharacters})
	ranges := d.SelectionRanges()
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, want 1", len(ranges))
	}
	if ranges[0].Start != 2 || ranges[0].End != 8 {
		t.Errorf("range = %+v, want {2 8}", ranges[0])
	}
}

func TestSelectionRangesLines(t *testing.T) {
	d := NewWithSelection("aa\nbb\ncc", 4, &SelectionState{Anchor: 1, Type: SelectionLines})
	ranges := d.SelectionRanges()
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, want 1", len(ranges))
	}
	if ranges[0].Start != 0 || ranges[0].End != 5 {
		t.Errorf("range = %+v, want {0 5}", ranges[0])
	}
}

func TestSelectionRangesBlock(t *testing.T) {
	d := NewWithSelection("abcd\nef\nghij", 11, &SelectionState{Anchor: 1, Type: SelectionBlock})
	ranges := d.SelectionRanges()
	if len(ranges) != 3 {
		t.Fatalf("got %d ranges, want 3", len(ranges))
	}
	// Columns 1..3 on each row; the short middle line clamps.
	want := []Range{{1, 3}, {6, 7}, {9, 11}}
	for i, r := range ranges {
		if r != want[i] {
			t.Errorf("range[%d] = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestFind(t *testing.T) {
	d := New("one two one", 0)
	if got := d.Find("one"); got != 8 {
		t.Errorf("Find() = %d, want 8", got)
	}
	if got := d.Find("missing"); got != 0 {
		t.Errorf("Find(missing) = %d, want 0", got)
	}

	end := New("one two one", 11)
	if got := end.FindBackwards("one"); got != -3 {
		t.Errorf("FindBackwards() = %d, want -3", got)
	}
}
