package editor

import (
	"unicode/utf8"
)

// State is an editor session: a buffer, a cursor and a viewport of whole lines.
// It implements View. All methods run on the caller's goroutine; extensions
// are notified synchronously before a mutating call returns.
type State struct {
	buf    *Buffer
	cursor int
	top    int // first visible line, 1-based
	height int // visible line count
	exts   []Extension
}

// NewState creates a state over text with the cursor at the start.
func NewState(text string) *State {
	return &State{buf: NewBuffer(text), top: 1, height: 1}
}

// Doc returns the current document.
func (s *State) Doc() Document { return s.buf }

// Buffer returns the current buffer.
func (s *State) Buffer() *Buffer { return s.buf }

// Text returns the full document text.
func (s *State) Text() string { return s.buf.String() }

// Cursor returns the cursor offset.
func (s *State) Cursor() int { return s.cursor }

// Top returns the first visible line number.
func (s *State) Top() int { return s.top }

// Height returns the number of visible lines.
func (s *State) Height() int { return s.height }

// AddExtension attaches ext to the view.
func (s *State) AddExtension(ext Extension) {
	s.exts = append(s.exts, ext)
	ext.Attach(s)
}

// VisibleRanges returns the single span covered by the viewport.
func (s *State) VisibleRanges() []Range {
	first := s.buf.Line(s.top)
	last := s.buf.Line(s.top + s.height - 1)
	return []Range{{From: first.From, To: last.To}}
}

// Dispatch applies c, maps the cursor through it and notifies extensions.
func (s *State) Dispatch(c Change) {
	s.buf = s.buf.Apply(c)
	s.cursor = clampPos(MapPos(s.cursor, c), s.buf.Len())
	s.notify(Update{View: s, DocChanged: true})
}

// Replace swaps in new text, e.g. after an external reload.
func (s *State) Replace(text string) {
	s.buf = NewBuffer(text)
	s.cursor = clampPos(s.cursor, s.buf.Len())
	s.clampTop()
	s.notify(Update{View: s, DocChanged: true})
}

// SetViewport sets the first visible line and the visible height.
func (s *State) SetViewport(top, height int) {
	if height < 1 {
		height = 1
	}
	oldTop, oldHeight := s.top, s.height
	s.top, s.height = top, height
	s.clampTop()
	if s.top != oldTop || s.height != oldHeight {
		s.notify(Update{View: s, ViewportChanged: true})
	}
}

// SetCursor moves the cursor to pos and scrolls it into view.
func (s *State) SetCursor(pos int) {
	pos = clampPos(pos, s.buf.Len())
	if pos == s.cursor {
		return
	}
	s.cursor = pos
	viewport := s.scrollToCursor()
	s.notify(Update{View: s, SelectionSet: true, ViewportChanged: viewport})
}

// CursorLineCol returns the cursor line number and byte column.
func (s *State) CursorLineCol() (int, int) {
	line := s.buf.LineAt(s.cursor)
	return line.Number, s.cursor - line.From
}

// MoveLeft moves the cursor back one rune.
func (s *State) MoveLeft() {
	if s.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.buf.Slice(0, s.cursor))
	s.SetCursor(s.cursor - size)
}

// MoveRight moves the cursor forward one rune.
func (s *State) MoveRight() {
	if s.cursor >= s.buf.Len() {
		return
	}
	_, size := utf8.DecodeRuneInString(s.buf.Slice(s.cursor, s.buf.Len()))
	s.SetCursor(s.cursor + size)
}

// MoveLines moves the cursor delta lines, keeping the byte column where possible.
func (s *State) MoveLines(delta int) {
	n, col := s.CursorLineCol()
	target := s.buf.Line(n + delta)
	s.SetCursor(target.From + runeFloor(target.Text, col))
}

// LineStart moves the cursor to the start of its line.
func (s *State) LineStart() { s.SetCursor(s.buf.LineAt(s.cursor).From) }

// LineEnd moves the cursor to the end of its line.
func (s *State) LineEnd() { s.SetCursor(s.buf.LineAt(s.cursor).To) }

// InsertAtCursor inserts text at the cursor.
func (s *State) InsertAtCursor(text string) {
	s.Dispatch(Change{From: s.cursor, To: s.cursor, Insert: text})
	if s.scrollToCursor() {
		s.notify(Update{View: s, ViewportChanged: true})
	}
}

// DeleteBackward removes the rune before the cursor.
func (s *State) DeleteBackward() {
	if s.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.buf.Slice(0, s.cursor))
	s.Dispatch(Change{From: s.cursor - size, To: s.cursor})
	if s.scrollToCursor() {
		s.notify(Update{View: s, ViewportChanged: true})
	}
}

// DeleteForward removes the rune after the cursor.
func (s *State) DeleteForward() {
	if s.cursor >= s.buf.Len() {
		return
	}
	_, size := utf8.DecodeRuneInString(s.buf.Slice(s.cursor, s.buf.Len()))
	s.Dispatch(Change{From: s.cursor, To: s.cursor + size})
}

// scrollToCursor adjusts top so the cursor line is visible.
func (s *State) scrollToCursor() bool {
	n := s.buf.LineAt(s.cursor).Number
	old := s.top
	if n < s.top {
		s.top = n
	} else if n >= s.top+s.height {
		s.top = n - s.height + 1
	}
	s.clampTop()
	return s.top != old
}

func (s *State) clampTop() {
	maxTop := s.buf.Lines() - s.height + 1
	if s.top > maxTop {
		s.top = maxTop
	}
	if s.top < 1 {
		s.top = 1
	}
}

func (s *State) notify(u Update) {
	for _, ext := range s.exts {
		ext.Update(u)
	}
}

func clampPos(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// runeFloor returns the largest rune boundary in text at or before col.
func runeFloor(text string, col int) int {
	if col >= len(text) {
		return len(text)
	}
	for col > 0 && !utf8.RuneStart(text[col]) {
		col--
	}
	return col
}
