// Package app is the root bubbletea model: it routes input to the active
// plugin and draws the footer with key hints and toasts.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inlinefields/internal/config"
	"github.com/marcus/inlinefields/internal/keymap"
	"github.com/marcus/inlinefields/internal/plugin"
)

// Model is the application state.
type Model struct {
	cfg *config.Config

	registry     *plugin.Registry
	activePlugin int

	keymap        *keymap.Registry
	activeContext string

	width, height int
	showFooter    bool
	ready         bool

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	now func() time.Time
}

// New creates the root model.
func New(reg *plugin.Registry, km *keymap.Registry, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		cfg:           cfg,
		registry:      reg,
		keymap:        km,
		activeContext: keymap.ContextGlobal,
		showFooter:    cfg.UI.ShowFooter,
		now:           time.Now,
	}
	m.updateContext()
	return m
}

// Init starts the clock and every plugin.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	for _, cmd := range m.registry.Start() {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ActivePlugin returns the currently active plugin.
func (m Model) ActivePlugin() plugin.Plugin {
	plugins := m.registry.Plugins()
	if m.activePlugin < 0 || m.activePlugin >= len(plugins) {
		return nil
	}
	return plugins[m.activePlugin]
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration, isError bool) {
	m.statusMsg = msg
	m.statusExpiry = m.now().Add(duration)
	m.statusIsError = isError
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && m.now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// updateContext follows the focus context of the active plugin.
func (m *Model) updateContext() {
	if p := m.ActivePlugin(); p != nil {
		m.activeContext = p.FocusContext()
		return
	}
	m.activeContext = keymap.ContextGlobal
}

// contentHeight is the height left for the plugin.
func (m Model) contentHeight() int {
	h := m.height
	if m.showFooter {
		h -= footerHeight
	}
	if h < 1 {
		h = 1
	}
	return h
}
