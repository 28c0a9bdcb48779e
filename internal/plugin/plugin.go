package plugin

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inlinefields/internal/config"
	"github.com/marcus/inlinefields/internal/keymap"
)

// Plugin defines the interface for all inlinefields plugins.
type Plugin interface {
	ID() string
	Name() string
	Init(ctx *Context) error
	Start() tea.Cmd
	Stop()
	Update(msg tea.Msg) (Plugin, tea.Cmd)
	View(width, height int) string
	Commands() []Command
	FocusContext() string
}

// Context is handed to plugins at Init.
type Context struct {
	WorkDir    string
	ConfigPath string
	Config     *config.Config
	Keymap     *keymap.Registry
	Logger     *slog.Logger
}

// Category represents a logical grouping of commands.
type Category string

const (
	CategoryNavigation Category = "Navigation"
	CategoryActions    Category = "Actions"
	CategoryEdit       Category = "Edit"
	CategorySystem     Category = "System"
)

// Command represents a keybinding command exposed by a plugin.
type Command struct {
	ID          string   // Unique identifier (e.g., "toggle-checkbox")
	Name        string   // Short name for footer (e.g., "Toggle")
	Description string   // Full description
	Category    Category // Logical grouping
	Context     string   // Activation context
	Priority    int      // Footer display priority: 1=highest, 0=default (treated as 99)
}

// PluginFocusedMsg is sent to a plugin when it becomes the active plugin.
type PluginFocusedMsg struct{}
