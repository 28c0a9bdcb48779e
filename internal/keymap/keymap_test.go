package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestLookup(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		key     string
		context string
		want    string
		wantOK  bool
	}{
		{"editor binding", "ctrl+t", ContextEditor, "toggle-checkbox", true},
		{"global fallback", "ctrl+c", ContextEditor, "quit", true},
		{"suggest binding", "tab", ContextSuggest, "suggest-accept", true},
		{"suggest key not in editor", "tab", ContextEditor, "", false},
		{"unbound", "ctrl+z", ContextEditor, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.key, tt.context)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Lookup(%q, %q) = %q, %v; want %q, %v", tt.key, tt.context, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHandle(t *testing.T) {
	r := NewRegistry()
	got, ok := r.Handle(tea.KeyMsg{Type: tea.KeyCtrlS}, ContextEditor)
	if !ok || got != "save" {
		t.Errorf("Handle(ctrl+s) = %q, %v; want save", got, ok)
	}
}

func TestApplyOverrides(t *testing.T) {
	r := NewRegistry()
	unknown := r.ApplyOverrides(map[string]string{
		"ctrl+x": "toggle-checkbox",
		"ctrl+t": "save",
		"ctrl+b": "launch-rockets",
	})

	if len(unknown) != 1 || unknown[0] != "launch-rockets" {
		t.Errorf("unknown = %v", unknown)
	}
	if cmd, _ := r.Lookup("ctrl+x", ContextEditor); cmd != "toggle-checkbox" {
		t.Errorf("ctrl+x = %q, want toggle-checkbox", cmd)
	}
	if cmd, _ := r.Lookup("ctrl+t", ContextEditor); cmd != "save" {
		t.Errorf("ctrl+t = %q, want save after override", cmd)
	}
	if cmd, _ := r.Lookup("ctrl+s", ContextEditor); cmd != "save" {
		t.Errorf("ctrl+s = %q, default key should still work", cmd)
	}
}

func TestKeyBinding(t *testing.T) {
	r := NewRegistry()

	accept := r.KeyBinding("suggest-accept", ContextSuggest)
	if !key.Matches(tea.KeyMsg{Type: tea.KeyTab}, accept) {
		t.Error("tab should match suggest-accept")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, accept) {
		t.Error("enter should match suggest-accept")
	}
	if accept.Help().Key != "tab" {
		t.Errorf("help key = %q, want tab", accept.Help().Key)
	}

	missing := r.KeyBinding("nope", ContextSuggest)
	if missing.Enabled() || key.Matches(tea.KeyMsg{Type: tea.KeyTab}, missing) {
		t.Error("unbound command should give a disabled binding")
	}

	keys := r.KeysForCommand("line-start", ContextEditor)
	if len(keys) != 2 || keys[0] != "home" || keys[1] != "ctrl+a" {
		t.Errorf("KeysForCommand(line-start) = %v", keys)
	}
}

func TestBindingsForContext(t *testing.T) {
	r := NewRegistry()
	for _, b := range r.BindingsForContext(ContextSuggest) {
		if b.Context != ContextSuggest {
			t.Errorf("binding %+v in wrong context", b)
		}
	}
	if len(r.BindingsForContext("nowhere")) != 0 {
		t.Error("unknown context should have no bindings")
	}
}
