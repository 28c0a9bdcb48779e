package notes

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inlinefields/internal/editor"
	"github.com/marcus/inlinefields/internal/keymap"
	"github.com/marcus/inlinefields/internal/msg"
	"github.com/marcus/inlinefields/internal/suggest"
)

type popupKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Accept  key.Binding
	Dismiss key.Binding
}

func newPopupKeyMap(km *keymap.Registry) popupKeyMap {
	return popupKeyMap{
		Next:    km.KeyBinding("suggest-next", keymap.ContextSuggest),
		Prev:    km.KeyBinding("suggest-prev", keymap.ContextSuggest),
		Accept:  km.KeyBinding("suggest-accept", keymap.ContextSuggest),
		Dismiss: km.KeyBinding("suggest-dismiss", keymap.ContextSuggest),
	}
}

func (p *Plugin) popupOpen() bool {
	return p.trigger != nil && len(p.suggestions) > 0
}

func (p *Plugin) closePopup() {
	p.trigger = nil
	p.suggestions = nil
	p.selected = 0
	p.suggestSeq++
}

func (p *Plugin) handlePopupKey(k tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(k, p.popupKeys.Next):
		p.selected = (p.selected + 1) % len(p.suggestions)
	case key.Matches(k, p.popupKeys.Prev):
		p.selected = (p.selected + len(p.suggestions) - 1) % len(p.suggestions)
	case key.Matches(k, p.popupKeys.Accept):
		return p.acceptSuggestion(), true
	case key.Matches(k, p.popupKeys.Dismiss):
		p.closePopup()
	default:
		return nil, false
	}
	return nil, true
}

// updateTrigger checks the text before the cursor for a configured field and
// fetches suggestions when one is found.
func (p *Plugin) updateTrigger() tea.Cmd {
	if p.suggester == nil {
		return nil
	}
	n, col := p.editor.CursorLineCol()
	line := p.editor.Doc().Line(n)
	tr, ok := p.suggester.OnTrigger(line.Text, suggest.Pos{Line: n, Col: col})
	if !ok {
		if p.trigger != nil {
			p.closePopup()
		}
		return nil
	}
	p.trigger = &tr
	return p.fetchSuggestions()
}

func (p *Plugin) fetchSuggestions() tea.Cmd {
	if p.trigger == nil {
		return nil
	}
	p.suggestSeq++
	seq, tr, s := p.suggestSeq, *p.trigger, p.suggester
	return func() tea.Msg {
		items, err := s.Suggestions(context.Background(), tr)
		return SuggestionsMsg{Seq: seq, Items: items, Err: err}
	}
}

// acceptSuggestion replaces the typed value with a link to the selected page.
func (p *Plugin) acceptSuggestion() tea.Cmd {
	if !p.popupOpen() {
		return nil
	}
	tr, sg := *p.trigger, p.suggestions[p.selected]
	c, err := p.suggester.Select(context.Background(), tr, sg)
	p.closePopup()
	if err != nil {
		p.logger.Warn("completion failed", "field", tr.Field, "err", err)
		return msg.ShowError(err)
	}

	doc := p.editor.Doc()
	p.editor.Dispatch(editor.Change{
		From:   offsetOf(doc, c.From),
		To:     offsetOf(doc, c.To),
		Insert: c.Text,
	})
	p.editor.SetCursor(offsetOf(p.editor.Doc(), c.Cursor))
	return p.edited()
}

func offsetOf(doc editor.Document, pos suggest.Pos) int {
	line := doc.Line(pos.Line)
	col := pos.Col
	if col > len(line.Text) {
		col = len(line.Text)
	}
	if col < 0 {
		col = 0
	}
	return line.From + col
}
