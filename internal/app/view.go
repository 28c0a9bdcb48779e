package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/inlinefields/internal/keymap"
	"github.com/marcus/inlinefields/internal/plugin"
	"github.com/marcus/inlinefields/internal/styles"
)

const footerHeight = 1

// View renders the active plugin above the footer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var content string
	if p := m.ActivePlugin(); p != nil {
		content = p.View(m.width, m.contentHeight())
	} else {
		content = m.renderUnavailable()
	}
	content = lipgloss.NewStyle().Width(m.width).Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)

	if !m.showFooter {
		return content
	}
	return content + "\n" + m.renderFooter()
}

func (m Model) renderUnavailable() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("No note open"))
	unavailable := m.registry.Unavailable()
	ids := make([]string, 0, len(unavailable))
	for id := range unavailable {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		sb.WriteString("\n")
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("%s: %v", id, unavailable[id])))
	}
	return sb.String()
}

// renderFooter renders the bottom bar with key hints and status.
func (m Model) renderFooter() string {
	var status string
	if m.statusMsg != "" {
		toastStyle := styles.ToastSuccess
		if m.statusIsError {
			toastStyle = styles.ToastError
		}
		status = toastStyle.Render(m.statusMsg)
	}

	statusWidth := lipgloss.Width(status)
	hints := renderHints(m.footerHints(), m.width-statusWidth-1)
	spacing := m.width - lipgloss.Width(hints) - statusWidth
	if spacing < 0 {
		spacing = 0
	}

	footer := hints + strings.Repeat(" ", spacing) + status
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(footer)
}

type footerHint struct {
	keys  string
	label string
}

func (m Model) footerHints() []footerHint {
	var hints []footerHint
	if p := m.ActivePlugin(); p != nil {
		hints = m.pluginFooterHints(p)
	}
	if keys := m.keymap.KeysForCommand("quit", keymap.ContextGlobal); len(keys) > 0 {
		hints = append(hints, footerHint{keys: keys[0], label: "quit"})
	}
	return hints
}

func (m Model) pluginFooterHints(p plugin.Plugin) []footerHint {
	cmds := p.Commands()
	sort.SliceStable(cmds, func(i, j int) bool {
		return priority(cmds[i]) < priority(cmds[j])
	})

	var hints []footerHint
	for _, c := range cmds {
		keys := m.keymap.KeysForCommand(c.ID, c.Context)
		if len(keys) == 0 {
			continue
		}
		hints = append(hints, footerHint{keys: keys[0], label: c.Name})
	}
	return hints
}

func priority(c plugin.Command) int {
	if c.Priority == 0 {
		return 99
	}
	return c.Priority
}

// renderHints joins hints until maxWidth is reached.
func renderHints(hints []footerHint, maxWidth int) string {
	var sb strings.Builder
	width := 0
	for _, h := range hints {
		part := styles.KeyHint.Render(h.keys) + " " + h.label + "  "
		w := ansi.StringWidth(part)
		if width+w > maxWidth {
			break
		}
		sb.WriteString(part)
		width += w
	}
	return sb.String()
}
