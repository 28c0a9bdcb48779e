package editor

import "testing"

type recorder struct {
	attached int
	updates  []Update
}

func (r *recorder) Attach(View)     { r.attached++ }
func (r *recorder) Update(u Update) { r.updates = append(r.updates, u) }

func TestState_DispatchNotifies(t *testing.T) {
	s := NewState("done:: true")
	rec := &recorder{}
	s.AddExtension(rec)

	if rec.attached != 1 {
		t.Fatalf("attached = %d, want 1", rec.attached)
	}

	s.Dispatch(Change{From: 7, To: 11, Insert: "false"})
	if got := s.Text(); got != "done:: false" {
		t.Errorf("Text() = %q", got)
	}
	if len(rec.updates) != 1 || !rec.updates[0].DocChanged {
		t.Errorf("updates = %+v, want one doc change", rec.updates)
	}
	if rec.updates[0].View != s {
		t.Error("update should carry the view")
	}
}

func TestState_ViewportAndVisibleRanges(t *testing.T) {
	s := NewState("l1\nl2\nl3\nl4\nl5")
	rec := &recorder{}
	s.AddExtension(rec)

	s.SetViewport(2, 2)
	got := s.VisibleRanges()
	if len(got) != 1 || got[0] != (Range{From: 3, To: 8}) {
		t.Errorf("VisibleRanges() = %+v, want [{3 8}]", got)
	}
	if len(rec.updates) != 1 || !rec.updates[0].ViewportChanged {
		t.Errorf("updates = %+v, want one viewport change", rec.updates)
	}

	// Same viewport again is not a change.
	s.SetViewport(2, 2)
	if len(rec.updates) != 1 {
		t.Errorf("unchanged viewport notified: %d updates", len(rec.updates))
	}

	// Top is clamped so the viewport stays filled.
	s.SetViewport(10, 2)
	if s.Top() != 4 {
		t.Errorf("Top() = %d, want 4", s.Top())
	}
}

func TestState_CursorMovement(t *testing.T) {
	s := NewState("abc\nde\nfghij")
	s.SetViewport(1, 1)

	s.SetCursor(2)
	s.MoveLines(1)
	if n, col := s.CursorLineCol(); n != 2 || col != 2 {
		t.Errorf("after down: line %d col %d, want 2 2", n, col)
	}
	if s.Top() != 2 {
		t.Errorf("viewport should follow cursor, top = %d", s.Top())
	}

	s.LineEnd()
	s.MoveRight()
	if n, col := s.CursorLineCol(); n != 3 || col != 0 {
		t.Errorf("after right at eol: line %d col %d, want 3 0", n, col)
	}

	s.MoveLeft()
	s.LineStart()
	if s.Cursor() != 4 {
		t.Errorf("Cursor() = %d, want 4", s.Cursor())
	}
}

func TestState_Editing(t *testing.T) {
	s := NewState("ab")
	s.SetCursor(1)

	s.InsertAtCursor("é")
	if s.Text() != "aéb" || s.Cursor() != 3 {
		t.Errorf("insert: text %q cursor %d", s.Text(), s.Cursor())
	}

	s.DeleteBackward()
	if s.Text() != "ab" || s.Cursor() != 1 {
		t.Errorf("backspace: text %q cursor %d", s.Text(), s.Cursor())
	}

	s.DeleteForward()
	if s.Text() != "a" {
		t.Errorf("delete: text %q", s.Text())
	}
}

func TestState_CursorUpdateFlags(t *testing.T) {
	s := NewState("a\nb")
	rec := &recorder{}
	s.AddExtension(rec)

	s.SetCursor(2)
	if len(rec.updates) != 1 || !rec.updates[0].SelectionSet {
		t.Errorf("updates = %+v, want selection set", rec.updates)
	}
}
