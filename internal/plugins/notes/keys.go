package notes

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inlinefields/internal/decoration"
	"github.com/marcus/inlinefields/internal/editor"
	"github.com/marcus/inlinefields/internal/keymap"
	"github.com/marcus/inlinefields/internal/mouse"
	"github.com/marcus/inlinefields/internal/msg"
)

const tabText = "\t"

// handleKey routes a key press: popup navigation first, then editor
// commands, then text input.
func (p *Plugin) handleKey(k tea.KeyMsg) tea.Cmd {
	if p.popupOpen() {
		if cmd, handled := p.handlePopupKey(k); handled {
			return cmd
		}
	}

	if command, ok := p.keymap().Lookup(k.String(), keymap.ContextEditor); ok {
		if cmd, handled := p.runCommand(command); handled {
			return cmd
		}
	}

	switch k.Type {
	case tea.KeyRunes, tea.KeySpace:
		p.editor.InsertAtCursor(string(k.Runes))
		return p.edited()
	case tea.KeyEnter:
		p.editor.InsertAtCursor("\n")
		return p.edited()
	case tea.KeyTab:
		p.editor.InsertAtCursor(tabText)
		return p.edited()
	case tea.KeyBackspace:
		p.editor.DeleteBackward()
		return p.edited()
	case tea.KeyDelete:
		p.editor.DeleteForward()
		return p.edited()
	case tea.KeyLeft:
		p.editor.MoveLeft()
		return p.updateTrigger()
	case tea.KeyRight:
		p.editor.MoveRight()
		return p.updateTrigger()
	case tea.KeyUp:
		p.editor.MoveLines(-1)
		return p.updateTrigger()
	case tea.KeyDown:
		p.editor.MoveLines(1)
		return p.updateTrigger()
	}
	return nil
}

// runCommand executes an editor command. Commands owned by the app, such as
// quit, are reported as unhandled.
func (p *Plugin) runCommand(command string) (tea.Cmd, bool) {
	switch command {
	case "save":
		return p.saveNote(), true
	case "toggle-checkbox":
		if p.toggleOnCursorLine() {
			return p.edited(), true
		}
		return nil, true
	case "yank-line":
		return p.yankLine(), true
	case "reload":
		return p.reloadNote(), true
	case "page-up":
		p.editor.MoveLines(-p.editor.Height())
		return p.updateTrigger(), true
	case "page-down":
		p.editor.MoveLines(p.editor.Height())
		return p.updateTrigger(), true
	case "line-start":
		p.editor.LineStart()
		return p.updateTrigger(), true
	case "line-end":
		p.editor.LineEnd()
		return p.updateTrigger(), true
	}
	return nil, false
}

// toggleOnCursorLine presses the checkbox on the cursor line closest to the
// cursor, as if it had been clicked.
func (p *Plugin) toggleOnCursorLine() bool {
	doc := p.editor.Doc()
	line := doc.LineAt(p.editor.Cursor())
	cursor := p.editor.Cursor()

	best, found := decoration.Range{}, false
	p.boxes.Decorations().Between(line.From, line.To, func(r decoration.Range) bool {
		if !found || distance(r.From, cursor) < distance(best.From, cursor) {
			best, found = r, true
		}
		return true
	})
	if !found {
		return false
	}
	return p.boxes.HandleMouseDown(p.editor, editor.Target{Widget: true, Pos: best.From})
}

func (p *Plugin) yankLine() tea.Cmd {
	line := p.editor.Doc().LineAt(p.editor.Cursor())
	if err := clipboard.WriteAll(line.Text); err != nil {
		return msg.ShowError(err)
	}
	return msg.ShowToast("Copied line to clipboard", 2*time.Second)
}

// handleMouse presses checkboxes, places the cursor and scrolls.
func (p *Plugin) handleMouse(m tea.MouseMsg) tea.Cmd {
	action := p.mouseHandler.HandleMouse(m)
	switch action.Type {
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		p.editor.SetViewport(p.editor.Top()+action.Delta, p.editor.Height())
		return nil
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil {
			return nil
		}
		return p.handleClick(action)
	}
	return nil
}

func (p *Plugin) handleClick(action mouse.MouseAction) tea.Cmd {
	switch action.Region.ID {
	case regionCheckbox:
		pos, ok := action.Region.Data.(int)
		if !ok {
			return nil
		}
		if p.boxes.HandleMouseDown(p.editor, editor.Target{Widget: true, Pos: pos}) {
			return p.edited()
		}
		return nil

	case regionLine:
		row, ok := action.Region.Data.(lineRow)
		if !ok {
			return nil
		}
		p.editor.SetCursor(row.offsetAt(action.X - action.Region.Rect.X))
		return p.updateTrigger()

	case regionSuggestion:
		i, ok := action.Region.Data.(int)
		if !ok || i >= len(p.suggestions) {
			return nil
		}
		p.selected = i
		return p.acceptSuggestion()
	}
	return nil
}

func (p *Plugin) keymap() *keymap.Registry {
	if p.ctx != nil && p.ctx.Keymap != nil {
		return p.ctx.Keymap
	}
	return defaultKeymap
}

var defaultKeymap = keymap.NewRegistry()

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
