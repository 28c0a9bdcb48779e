package plugin

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry owns the plugins of a session. Plugins that fail to initialize
// are kept aside as unavailable instead of aborting startup.
type Registry struct {
	ctx         *Context
	plugins     []Plugin
	unavailable map[string]error
}

// NewRegistry creates a registry whose plugins share ctx.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{ctx: ctx, unavailable: make(map[string]error)}
}

// Register initializes p and adds it. A failed Init marks the plugin
// unavailable and returns the wrapped error.
func (r *Registry) Register(p Plugin) error {
	for _, existing := range r.plugins {
		if existing.ID() == p.ID() {
			return fmt.Errorf("plugin %s already registered", p.ID())
		}
	}
	if err := p.Init(r.ctx); err != nil {
		r.unavailable[p.ID()] = err
		if r.ctx != nil && r.ctx.Logger != nil {
			r.ctx.Logger.Warn("plugin unavailable", "plugin", p.ID(), "err", err)
		}
		return fmt.Errorf("init plugin %s: %w", p.ID(), err)
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	return r.plugins
}

// Get returns the plugin with id.
func (r *Registry) Get(id string) Plugin {
	for _, p := range r.plugins {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// Replace swaps in the updated value of a plugin after Update.
func (r *Registry) Replace(p Plugin) {
	for i, existing := range r.plugins {
		if existing.ID() == p.ID() {
			r.plugins[i] = p
			return
		}
	}
}

// Unavailable returns plugins that failed to initialize, keyed by ID.
func (r *Registry) Unavailable() map[string]error {
	return r.unavailable
}

// Start starts every plugin and collects their initial commands.
func (r *Registry) Start() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.plugins))
	for _, p := range r.plugins {
		cmds = append(cmds, p.Start())
	}
	return cmds
}

// Stop stops every plugin.
func (r *Registry) Stop() {
	for _, p := range r.plugins {
		p.Stop()
	}
}
