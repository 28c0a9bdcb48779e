package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inlinefields/internal/keymap"
	"github.com/marcus/inlinefields/internal/msg"
)

// Update handles all messages.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m.forwardToActive(tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()})

	case tea.MouseMsg:
		if message.Y >= m.contentHeight() {
			return m, nil
		}
		return m.forwardToActive(message)

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil
	}

	// Plugin messages go to every plugin; each ignores what it does not own.
	var cmds []tea.Cmd
	for _, p := range m.registry.Plugins() {
		updated, cmd := p.Update(message)
		m.registry.Replace(updated)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.updateContext()
	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if command, ok := m.keymap.Lookup(k.String(), keymap.ContextGlobal); ok {
		switch command {
		case "quit":
			m.registry.Stop()
			return m, tea.Quit
		case "toggle-footer":
			m.showFooter = !m.showFooter
			return m.forwardToActive(tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()})
		}
	}
	return m.forwardToActive(k)
}

func (m Model) forwardToActive(message tea.Msg) (tea.Model, tea.Cmd) {
	p := m.ActivePlugin()
	if p == nil {
		return m, nil
	}
	updated, cmd := p.Update(message)
	m.registry.Replace(updated)
	m.updateContext()
	return m, cmd
}
