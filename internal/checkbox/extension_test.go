package checkbox

import (
	"io"
	"log/slog"
	"testing"

	"github.com/marcus/inlinefields/internal/decoration"
	"github.com/marcus/inlinefields/internal/editor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtension_AttachBuilds(t *testing.T) {
	s := editor.NewState("a:: true\nb:: false\nc:: true")
	s.SetViewport(1, 2)

	ext := New(decoration.ModeRight, testLogger())
	s.AddExtension(ext)

	if ext.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", ext.Rebuilds())
	}
	// Only the two visible lines are decorated.
	if got := ext.Decorations().Len(); got != 2 {
		t.Errorf("Decorations().Len() = %d, want 2", got)
	}
}

func TestExtension_RebuildsOnViewportAndSelection(t *testing.T) {
	s := editor.NewState("a:: true\nb:: false\nc:: true")
	s.SetViewport(1, 1)
	ext := New(decoration.ModeRight, testLogger())
	s.AddExtension(ext)

	first := ext.Decorations()
	s.SetViewport(3, 1)
	if ext.Rebuilds() != 2 {
		t.Errorf("viewport change: Rebuilds() = %d, want 2", ext.Rebuilds())
	}
	if ext.Decorations() == first {
		t.Error("set should be replaced, not reused")
	}
	if got := ext.Decorations().At(0).From; got != s.Doc().Line(3).To {
		t.Errorf("decoration at %d, want end of line 3", got)
	}

	s.SetCursor(1)
	if ext.Rebuilds() < 3 {
		t.Errorf("selection change: Rebuilds() = %d, want >= 3", ext.Rebuilds())
	}
}

func TestExtension_IgnoresUnrelatedUpdates(t *testing.T) {
	s := editor.NewState("a:: true")
	ext := New(decoration.ModeRight, testLogger())
	s.AddExtension(ext)

	ext.Update(editor.Update{View: s})
	if ext.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", ext.Rebuilds())
	}
}

func TestExtension_HandleMouseDown(t *testing.T) {
	s := editor.NewState("- done:: true")
	s.SetViewport(1, 1)
	ext := New(decoration.ModeRight, testLogger())
	s.AddExtension(ext)

	pos := ext.Decorations().At(0).From
	if !ext.HandleMouseDown(s, editor.Target{Widget: true, Pos: pos}) {
		t.Fatal("press on checkbox should be handled")
	}
	if got := s.Text(); got != "- done:: false" {
		t.Errorf("Text() = %q, want toggled", got)
	}
	if ext.Decorations().At(0).Decoration.Widget.Checked {
		t.Error("decorations should reflect the new value")
	}

	if ext.HandleMouseDown(s, editor.Target{Widget: false, Pos: pos}) {
		t.Error("press outside a widget should not be handled")
	}
	if ext.HandleMouseDown(s, editor.Target{Widget: true, Pos: 2}) {
		t.Error("press with no adjacent value should not be handled")
	}
	if got := s.Text(); got != "- done:: false" {
		t.Errorf("unhandled presses changed text to %q", got)
	}
}

// reentrant presses the checkbox again from inside the change notification.
type reentrant struct {
	ext     *Extension
	target  editor.Target
	handled []bool
}

func (r *reentrant) Attach(editor.View) {}

func (r *reentrant) Update(u editor.Update) {
	if u.DocChanged {
		r.handled = append(r.handled, r.ext.HandleMouseDown(u.View, r.target))
	}
}

func TestExtension_NoReentrantToggle(t *testing.T) {
	s := editor.NewState("done:: true")
	ext := New(decoration.ModeRight, testLogger())
	s.AddExtension(ext)

	target := editor.Target{Widget: true, Pos: ext.Decorations().At(0).From}
	r := &reentrant{ext: ext, target: target}
	s.AddExtension(r)

	if !ext.HandleMouseDown(s, target) {
		t.Fatal("press should be handled")
	}
	if got := s.Text(); got != "done:: false" {
		t.Errorf("Text() = %q, want exactly one toggle", got)
	}
	if len(r.handled) != 1 || r.handled[0] {
		t.Errorf("nested press results = %v, want [false]", r.handled)
	}
}

func TestExtension_InvalidModeIsNone(t *testing.T) {
	s := editor.NewState("done:: true")
	ext := New(decoration.Mode("diagonal"), testLogger())
	s.AddExtension(ext)

	if ext.Mode() != decoration.ModeNone {
		t.Errorf("Mode() = %q, want none", ext.Mode())
	}
	if ext.Decorations().Len() != 0 {
		t.Error("invalid mode should produce no decorations")
	}
}
