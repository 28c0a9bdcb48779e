package keymap

// Focus contexts.
const (
	ContextGlobal  = "global"
	ContextEditor  = "notes-editor"
	ContextSuggest = "notes-suggest"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+c", Command: "quit", Context: ContextGlobal},
		{Key: "ctrl+q", Command: "quit", Context: ContextGlobal},
		{Key: "ctrl+h", Command: "toggle-footer", Context: ContextGlobal},

		// Note editor
		{Key: "ctrl+s", Command: "save", Context: ContextEditor},
		{Key: "ctrl+t", Command: "toggle-checkbox", Context: ContextEditor},
		{Key: "ctrl+y", Command: "yank-line", Context: ContextEditor},
		{Key: "ctrl+r", Command: "reload", Context: ContextEditor},
		{Key: "pgup", Command: "page-up", Context: ContextEditor},
		{Key: "pgdown", Command: "page-down", Context: ContextEditor},
		{Key: "home", Command: "line-start", Context: ContextEditor},
		{Key: "ctrl+a", Command: "line-start", Context: ContextEditor},
		{Key: "end", Command: "line-end", Context: ContextEditor},
		{Key: "ctrl+e", Command: "line-end", Context: ContextEditor},

		// Suggestion popup
		{Key: "down", Command: "suggest-next", Context: ContextSuggest},
		{Key: "ctrl+n", Command: "suggest-next", Context: ContextSuggest},
		{Key: "up", Command: "suggest-prev", Context: ContextSuggest},
		{Key: "ctrl+p", Command: "suggest-prev", Context: ContextSuggest},
		{Key: "tab", Command: "suggest-accept", Context: ContextSuggest},
		{Key: "enter", Command: "suggest-accept", Context: ContextSuggest},
		{Key: "esc", Command: "suggest-dismiss", Context: ContextSuggest},
	}
}
