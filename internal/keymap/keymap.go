// Package keymap resolves key presses to command IDs per focus context.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string // bubbletea key string, e.g. "ctrl+s"
	Command string
	Context string
}

// Registry holds the active bindings.
type Registry struct {
	bindings []Binding
}

// NewRegistry creates a registry with the default bindings.
func NewRegistry() *Registry {
	return &Registry{bindings: DefaultBindings()}
}

// ApplyOverrides binds each key to its command in every context that
// already binds the command. Overrides naming unknown commands are ignored
// and reported back.
func (r *Registry) ApplyOverrides(overrides map[string]string) (unknown []string) {
	for k, cmd := range overrides {
		contexts := r.contextsFor(cmd)
		if len(contexts) == 0 {
			unknown = append(unknown, cmd)
			continue
		}
		for _, ctx := range contexts {
			r.unbind(k, ctx)
			r.bindings = append(r.bindings, Binding{Key: k, Command: cmd, Context: ctx})
		}
	}
	return unknown
}

// BindingsForContext returns the bindings declared for context.
func (r *Registry) BindingsForContext(context string) []Binding {
	var out []Binding
	for _, b := range r.bindings {
		if b.Context == context {
			out = append(out, b)
		}
	}
	return out
}

// Lookup returns the command bound to keyStr in context, falling back to
// global bindings.
func (r *Registry) Lookup(keyStr, context string) (string, bool) {
	for _, ctx := range []string{context, ContextGlobal} {
		for _, b := range r.bindings {
			if b.Context == ctx && b.Key == keyStr {
				return b.Command, true
			}
		}
	}
	return "", false
}

// Handle resolves a key message in context.
func (r *Registry) Handle(msg tea.KeyMsg, context string) (string, bool) {
	return r.Lookup(msg.String(), context)
}

// KeyBinding returns a bubbles key binding for command in context, with the
// first key as its help text. The binding is disabled when nothing is bound.
func (r *Registry) KeyBinding(command, context string) key.Binding {
	var keys []string
	for _, b := range r.bindings {
		if b.Context == context && b.Command == command {
			keys = append(keys, b.Key)
		}
	}
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], command))
}

// KeysForCommand returns the keys bound to command in context.
func (r *Registry) KeysForCommand(command, context string) []string {
	return r.KeyBinding(command, context).Keys()
}

func (r *Registry) contextsFor(command string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range r.bindings {
		if b.Command == command && !seen[b.Context] {
			seen[b.Context] = true
			out = append(out, b.Context)
		}
	}
	return out
}

func (r *Registry) unbind(keyStr, context string) {
	kept := r.bindings[:0]
	for _, b := range r.bindings {
		if b.Key == keyStr && b.Context == context {
			continue
		}
		kept = append(kept, b)
	}
	r.bindings = kept
}
