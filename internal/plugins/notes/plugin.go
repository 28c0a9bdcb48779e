// Package notes is the editor plugin: one vault note in an editor.State with
// clickable checkboxes and page-link autocomplete.
package notes

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/inlinefields/internal/checkbox"
	"github.com/marcus/inlinefields/internal/editor"
	"github.com/marcus/inlinefields/internal/keymap"
	"github.com/marcus/inlinefields/internal/mouse"
	"github.com/marcus/inlinefields/internal/msg"
	"github.com/marcus/inlinefields/internal/pageindex"
	"github.com/marcus/inlinefields/internal/plugin"
	"github.com/marcus/inlinefields/internal/state"
	"github.com/marcus/inlinefields/internal/suggest"
)

const (
	pluginID   = "notes"
	pluginName = "notes"

	headerRows    = 1
	maxPopupItems = 5

	defaultAutoSaveDelay = time.Second
)

// AutoSaveTickMsg fires when the debounce timer for an edit expires.
type AutoSaveTickMsg struct {
	ID int
}

// NoteSavedMsg reports the result of writing the note.
type NoteSavedMsg struct {
	Hash uint64
	Err  error
}

// NoteLoadedMsg carries note content read from disk.
type NoteLoadedMsg struct {
	Content string
	Hash    uint64
	Err     error
}

// IndexReadyMsg reports the initial page index rebuild.
type IndexReadyMsg struct {
	Err error
}

// VaultChangedMsg reports a page created, written or removed outside the editor.
type VaultChangedMsg struct {
	Path string
}

// SuggestionsMsg delivers completion choices for a trigger.
type SuggestionsMsg struct {
	Seq   int
	Items []suggest.Suggestion
	Err   error
}

// Plugin edits a single note.
type Plugin struct {
	ctx    *plugin.Context
	logger *slog.Logger

	notePath string // vault-relative
	absPath  string
	index    *pageindex.Index

	editor *editor.State
	boxes  *checkbox.Extension

	suggester   *suggest.Suggester
	trigger     *suggest.Trigger
	suggestions []suggest.Suggestion
	selected    int
	suggestSeq  int
	popupKeys   popupKeyMap

	mouseHandler *mouse.Handler
	width        int
	height       int

	savedHash  uint64
	dirty      bool
	autoSaveID int

	changes     <-chan string
	stopWatch   context.CancelFunc
	indexLoaded bool
}

// New creates the plugin for notePath, relative to the vault root. idx may
// be nil, which disables autocomplete and external reloads.
func New(notePath string, idx *pageindex.Index) *Plugin {
	return &Plugin{
		notePath:     filepath.ToSlash(filepath.Clean(notePath)),
		index:        idx,
		mouseHandler: mouse.NewHandler(),
	}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Init reads the note and attaches the checkbox extension.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.logger = ctx.Logger
	if p.logger == nil {
		p.logger = slog.Default()
	}

	root := ctx.Config.Vault.Root
	abs, err := notePathIn(root, p.notePath)
	if err != nil {
		return err
	}
	p.absPath = abs

	content, hash, err := readNote(abs)
	if err != nil {
		return err
	}
	p.savedHash = hash

	p.editor = editor.NewState(content)
	p.boxes = checkbox.New(ctx.Config.Checkbox.Position, p.logger)
	p.editor.AddExtension(p.boxes)

	if ns, ok := state.GetNoteState(p.notePath); ok {
		p.editor.SetViewport(ns.TopLine, p.editor.Height())
		p.editor.SetCursor(ns.Cursor)
	}

	if p.index != nil {
		p.suggester = suggest.New(ctx.Config.Autocomplete, p.index, p.index, p.logger)
	}

	km := ctx.Keymap
	if km == nil {
		km = keymap.NewRegistry()
	}
	p.popupKeys = newPopupKeyMap(km)

	p.logger.Debug("note opened", "path", p.notePath, "mode", p.boxes.Mode(), "bytes", len(content))
	return nil
}

// Start rebuilds the page index in the background.
func (p *Plugin) Start() tea.Cmd {
	if p.index == nil {
		return nil
	}
	idx := p.index
	return func() tea.Msg {
		return IndexReadyMsg{Err: idx.Rebuild(context.Background())}
	}
}

// Stop flushes unsaved edits and remembers where the cursor was.
func (p *Plugin) Stop() {
	if p.stopWatch != nil {
		p.stopWatch()
		p.stopWatch = nil
	}
	if p.editor == nil {
		return
	}
	if p.dirty {
		if _, err := writeNote(p.absPath, p.editor.Text()); err != nil {
			p.logger.Error("save on exit failed", "path", p.notePath, "err", err)
		}
	}
	if err := state.SetNoteState(p.notePath, state.NoteState{
		Cursor:  p.editor.Cursor(),
		TopLine: p.editor.Top(),
	}); err != nil {
		p.logger.Warn("save note state", "err", err)
	}
}

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case tea.WindowSizeMsg:
		p.resize(m.Width, m.Height)
		return p, nil

	case tea.KeyMsg:
		return p, p.handleKey(m)

	case tea.MouseMsg:
		return p, p.handleMouse(m)

	case AutoSaveTickMsg:
		if m.ID == p.autoSaveID && p.dirty {
			return p, p.saveNote()
		}
		return p, nil

	case NoteSavedMsg:
		if m.Err != nil {
			p.logger.Error("save failed", "path", p.notePath, "err", m.Err)
			return p, msg.ShowError(m.Err)
		}
		p.savedHash = m.Hash
		p.refreshDirty()
		return p, nil

	case NoteLoadedMsg:
		if m.Err != nil {
			return p, msg.ShowError(m.Err)
		}
		p.editor.Replace(m.Content)
		p.savedHash = m.Hash
		p.dirty = false
		p.closePopup()
		return p, msg.ShowToast("Reloaded "+p.notePath, 2*time.Second)

	case IndexReadyMsg:
		if m.Err != nil {
			p.logger.Warn("page index rebuild failed", "err", m.Err)
			return p, msg.ShowError(m.Err)
		}
		p.indexLoaded = true
		return p, p.startWatch()

	case VaultChangedMsg:
		return p, tea.Batch(p.handleVaultChange(m.Path), p.listenForChanges())

	case SuggestionsMsg:
		if m.Seq != p.suggestSeq || p.trigger == nil {
			return p, nil
		}
		if m.Err != nil {
			p.closePopup()
			return p, msg.ShowError(m.Err)
		}
		p.suggestions = m.Items
		p.selected = 0
		return p, nil

	case plugin.PluginFocusedMsg:
		return p, nil
	}
	return p, nil
}

// View renders the note.
func (p *Plugin) View(width, height int) string {
	p.resize(width, height)
	content := p.renderView()
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

// Commands returns the available commands.
func (p *Plugin) Commands() []plugin.Command {
	if p.popupOpen() {
		return []plugin.Command{
			{ID: "suggest-accept", Name: "Link", Description: "Insert the selected page link", Category: plugin.CategoryEdit, Context: keymap.ContextSuggest, Priority: 1},
			{ID: "suggest-next", Name: "Next", Description: "Select next suggestion", Category: plugin.CategoryNavigation, Context: keymap.ContextSuggest, Priority: 2},
			{ID: "suggest-dismiss", Name: "Close", Description: "Close suggestions", Category: plugin.CategoryActions, Context: keymap.ContextSuggest, Priority: 3},
		}
	}
	saveName := "Save"
	if p.dirty {
		saveName = "Save*"
	}
	return []plugin.Command{
		{ID: "save", Name: saveName, Description: "Write the note to disk", Category: plugin.CategoryActions, Context: keymap.ContextEditor, Priority: 1},
		{ID: "toggle-checkbox", Name: "Toggle", Description: "Toggle the checkbox on the cursor line", Category: plugin.CategoryEdit, Context: keymap.ContextEditor, Priority: 2},
		{ID: "yank-line", Name: "Yank", Description: "Copy the cursor line", Category: plugin.CategoryActions, Context: keymap.ContextEditor, Priority: 3},
		{ID: "reload", Name: "Reload", Description: "Discard edits and reload from disk", Category: plugin.CategoryActions, Context: keymap.ContextEditor, Priority: 4},
	}
}

// FocusContext returns the current focus context.
func (p *Plugin) FocusContext() string {
	if p.popupOpen() {
		return keymap.ContextSuggest
	}
	return keymap.ContextEditor
}

// Dirty reports whether the buffer differs from the last saved content.
func (p *Plugin) Dirty() bool { return p.dirty }

// Editor returns the editor state.
func (p *Plugin) Editor() *editor.State { return p.editor }

func (p *Plugin) resize(width, height int) {
	p.width, p.height = width, height
	rows := height - headerRows
	if rows < 1 {
		rows = 1
	}
	if p.editor != nil {
		p.editor.SetViewport(p.editor.Top(), rows)
	}
}

// edited marks the buffer changed, restarts the autosave timer and checks for
// an autocomplete trigger.
func (p *Plugin) edited() tea.Cmd {
	p.refreshDirty()
	var cmds []tea.Cmd
	if p.dirty {
		cmds = append(cmds, p.startAutoSaveTimer())
	}
	cmds = append(cmds, p.updateTrigger())
	return tea.Batch(cmds...)
}

func (p *Plugin) refreshDirty() {
	p.dirty = hashContent(p.editor.Text()) != p.savedHash
}

// startAutoSaveTimer starts the debounce timer for auto-save.
func (p *Plugin) startAutoSaveTimer() tea.Cmd {
	p.autoSaveID++
	id := p.autoSaveID
	delay := p.ctx.Config.Editor.AutoSaveDelay
	if delay <= 0 {
		delay = defaultAutoSaveDelay
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return AutoSaveTickMsg{ID: id}
	})
}

func (p *Plugin) saveNote() tea.Cmd {
	path, content := p.absPath, p.editor.Text()
	return func() tea.Msg {
		hash, err := writeNote(path, content)
		return NoteSavedMsg{Hash: hash, Err: err}
	}
}

func (p *Plugin) reloadNote() tea.Cmd {
	path := p.absPath
	return func() tea.Msg {
		content, hash, err := readNote(path)
		return NoteLoadedMsg{Content: content, Hash: hash, Err: err}
	}
}

func (p *Plugin) startWatch() tea.Cmd {
	if p.index == nil || p.stopWatch != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	changes, err := p.index.Watch(ctx)
	if err != nil {
		cancel()
		p.logger.Warn("vault watch unavailable", "err", err)
		return nil
	}
	p.stopWatch, p.changes = cancel, changes
	return p.listenForChanges()
}

func (p *Plugin) listenForChanges() tea.Cmd {
	ch := p.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return VaultChangedMsg{Path: path}
	}
}

// handleVaultChange reloads the note when another program rewrote it and the
// buffer has no unsaved edits.
func (p *Plugin) handleVaultChange(path string) tea.Cmd {
	if filepath.ToSlash(path) != p.notePath {
		if p.popupOpen() {
			return p.fetchSuggestions()
		}
		return nil
	}
	if _, err := os.Stat(p.absPath); err != nil {
		return nil
	}
	_, hash, err := readNote(p.absPath)
	if err != nil || hash == p.savedHash {
		return nil
	}
	if hash == hashContent(p.editor.Text()) {
		p.savedHash = hash
		p.refreshDirty()
		return nil
	}
	if p.dirty {
		return msg.ShowToast(p.notePath+" changed on disk; reload to discard edits", 4*time.Second)
	}
	return p.reloadNote()
}
