package main

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/lineedit/buffer"
	"github.com/dshills/lineedit/clipboard"
	"github.com/dshills/lineedit/completion"
	"github.com/dshills/lineedit/document"
)

const prompt = "> "

// maxMenuRows bounds the completion menu height.
const maxMenuRows = 8

// ui drives one tcell screen around a buffer.
type ui struct {
	screen tcell.Screen
	buf    *buffer.Buffer
	ctx    context.Context
	redraw chan struct{}
}

func newUI(buf *buffer.Buffer) (*ui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)

	u := &ui{
		screen: screen,
		buf:    buf,
		ctx:    context.Background(),
		redraw: make(chan struct{}, 1),
	}

	// Background advisors commit on their own goroutines; poke the event
	// loop so their results show up.
	wake := func(*buffer.Buffer) {
		select {
		case u.redraw <- struct{}{}:
		default:
		}
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
	buf.OnCompletionsChanged(wake)
	buf.OnSuggestionSet(wake)

	return u, nil
}

func (u *ui) Close() {
	u.screen.Fini()
}

// Run processes events until Ctrl-C or Ctrl-D on an empty buffer. Accepted
// lines arrive on the accepted channel and are collected for the caller.
func (u *ui) Run(accepted <-chan string) ([]string, error) {
	var lines []string
	for {
		u.render()

		ev := u.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventInterrupt:
		case *tcell.EventKey:
			quit, err := u.handleKey(ev)
			if err != nil {
				return lines, err
			}
			if quit {
				return lines, nil
			}
		}

		select {
		case line := <-accepted:
			lines = append(lines, line)
		default:
		}
	}
}

func (u *ui) handleKey(ev *tcell.EventKey) (bool, error) {
	b := u.buf

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true, nil

	case tcell.KeyCtrlD:
		if b.Text() == "" {
			return true, nil
		}
		b.Delete(1)

	case tcell.KeyEnter:
		if ev.Modifiers()&tcell.ModAlt != 0 || !b.Multiline() {
			if _, err := b.Accept(); err != nil {
				return false, err
			}
		} else {
			b.SaveToUndoStack()
			b.Newline(true)
		}

	case tcell.KeyTab:
		if st := b.CompletionState(); st != nil && st.LoadState() == buffer.CompletionsLoaded {
			b.CompleteNext(1)
		} else {
			b.RefreshCompletions(u.ctx, completion.Trigger{Requested: true})
		}

	case tcell.KeyBacktab:
		b.CompletePrevious(1)

	case tcell.KeyEscape:
		b.CancelCompletion()
		b.ExitSelection()

	case tcell.KeyLeft:
		b.CursorLeft(1)

	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			if b.Suggestion() != nil {
				b.SaveToUndoStack()
				b.AcceptSuggestionWord()
			}
			break
		}
		if applied, _ := u.acceptSuggestionAtEnd(); !applied {
			b.CursorRight(1)
		}

	case tcell.KeyUp:
		b.AutoUp(1)

	case tcell.KeyDown:
		b.AutoDown(1)

	case tcell.KeyHome, tcell.KeyCtrlA:
		b.GoToStartOfLine(false)

	case tcell.KeyEnd, tcell.KeyCtrlE:
		if applied, _ := u.acceptSuggestionAtEnd(); !applied {
			b.GoToEndOfLine()
		}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		b.DeleteBeforeCursor(1)

	case tcell.KeyDelete:
		b.Delete(1)

	case tcell.KeyCtrlK:
		u.killToEndOfLine()

	case tcell.KeyCtrlU:
		u.killToStartOfLine()

	case tcell.KeyCtrlW:
		b.SaveToUndoStack()
		if text, err := b.DeleteWordBefore(); err == nil && text != "" {
			b.Clipboard().SetData(clipData(text))
		}

	case tcell.KeyCtrlY:
		b.SaveToUndoStack()
		b.Paste()

	case tcell.KeyCtrlT:
		b.SaveToUndoStack()
		b.SwapCharactersBeforeCursor()

	case tcell.KeyCtrlZ:
		b.Undo()

	case tcell.KeyCtrlR:
		b.Redo()

	case tcell.KeyCtrlO:
		u.screen.Suspend()
		err := b.OpenInEditor()
		u.screen.Resume()
		if err != nil && err != buffer.ErrNoEditor {
			return false, err
		}

	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			switch ev.Rune() {
			case '.':
				b.SaveToUndoStack()
				b.YankLastArg(0)
			case 'y':
				b.RotatePaste()
			}
			break
		}
		b.SaveToUndoStack()
		if err := b.InsertText(string(ev.Rune())); err != nil {
			u.screen.Beep()
		}
	}
	return false, nil
}

// acceptSuggestionAtEnd applies the ghost suggestion when the cursor sits
// at the end of the text.
func (u *ui) acceptSuggestionAtEnd() (bool, error) {
	if !u.buf.Document().IsCursorAtEnd() {
		return false, nil
	}
	u.buf.SaveToUndoStack()
	return u.buf.AcceptSuggestion()
}

func (u *ui) killToEndOfLine() {
	b := u.buf
	b.SaveToUndoStack()
	doc := b.Document()
	n := len([]rune(doc.CurrentLineAfterCursor()))
	if n == 0 {
		n = 1 // kill the newline instead
	}
	if text, err := b.Delete(n); err == nil && text != "" {
		b.Clipboard().SetData(clipData(text))
	}
}

func (u *ui) killToStartOfLine() {
	b := u.buf
	b.SaveToUndoStack()
	doc := b.Document()
	n := len([]rune(doc.CurrentLineBeforeCursor()))
	if n == 0 {
		return
	}
	if text, err := b.DeleteBeforeCursor(n); err == nil && text != "" {
		b.Clipboard().SetData(clipData(text))
	}
}

func clipData(text string) clipboard.Data {
	return clipboard.Data{Text: text, Type: document.SelectionCharacters}
}

// Rendering

func (u *ui) render() {
	s := u.screen
	s.Clear()

	doc := u.buf.Document()
	lines := doc.Lines()
	row, col := doc.TranslateIndexToPosition(doc.CursorPosition())

	style := tcell.StyleDefault
	ghost := tcell.StyleDefault.Foreground(tcell.ColorGray)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	selStyle := tcell.StyleDefault.Reverse(true)

	selected := map[int]bool{}
	for _, r := range doc.SelectionRanges() {
		for i := r.Start; i < r.End; i++ {
			selected[i] = true
		}
	}

	y := 0
	runeIndex := 0
	for li, line := range lines {
		x := 0
		if li == 0 {
			x = drawString(s, 0, y, prompt, style)
		} else {
			x = drawString(s, 0, y, padding(len(prompt)), style)
		}

		g := uniseg.NewGraphemes(line)
		for g.Next() {
			cl := g.Str()
			st := style
			if selected[runeIndex] {
				st = selStyle
			}
			x = drawString(s, x, y, cl, st)
			runeIndex += len(g.Runes())
		}
		runeIndex++ // the newline

		// Ghost suggestion after the last line.
		if li == len(lines)-1 {
			if sg := u.buf.Suggestion(); sg != nil && doc.IsCursorAtEnd() {
				drawString(s, x, y, sg.Text, ghost)
			}
		}
		y++
	}

	// Completion menu.
	menuRow := y + 1
	if st := u.buf.CompletionState(); st != nil {
		switch st.LoadState() {
		case buffer.CompletionsLoading:
			drawString(s, 2, menuRow, "...", ghost)
		case buffer.CompletionsLoaded:
			for i, c := range st.Completions() {
				if i >= maxMenuRows {
					break
				}
				itemStyle := style
				if i == st.CompleteIndex() {
					itemStyle = selStyle
				}
				drawString(s, 2, menuRow+i, c.DisplayText(), itemStyle)
			}
		}
	}

	// Validation message.
	if status, verr := u.buf.ValidationState(); status == buffer.ValidationInvalid && verr != nil {
		_, height := s.Size()
		drawString(s, 0, height-1, verr.Message, errStyle)
	}

	cursorX := len(prompt) + runewidth.StringWidth(string([]rune(doc.Line(row))[:col]))
	s.ShowCursor(cursorX, row)
	s.Show()
}

// drawString draws a string and returns the x position after it, using
// display widths so wide runes occupy two cells.
func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += runewidth.StringWidth(g.Str())
	}
	return x
}

func padding(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
