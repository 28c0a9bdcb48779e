package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/marcus/inlinefields/internal/decoration"
)

// Config is the root configuration structure.
type Config struct {
	Checkbox     CheckboxConfig      `json:"checkbox"`
	Autocomplete []AutocompleteField `json:"autocomplete"`
	Vault        VaultConfig         `json:"vault"`
	Editor       EditorConfig        `json:"editor"`
	Keymap       KeymapConfig        `json:"keymap"`
	UI           UIConfig            `json:"ui"`
}

// CheckboxConfig configures checkbox decorations.
type CheckboxConfig struct {
	Position decoration.Mode `json:"position"` // left, right, replace or none
}

// AutocompleteField links an inline field to the vault folder its values come from.
type AutocompleteField struct {
	Field  string `json:"field"`
	Folder string `json:"folder"`
}

// VaultConfig locates the notes and the page index.
type VaultConfig struct {
	Root      string `json:"root"`      // "." default
	IndexPath string `json:"indexPath"` // relative to Root unless absolute
}

// EditorConfig configures the note editor.
type EditorConfig struct {
	AutoSaveDelay time.Duration `json:"autoSaveDelay"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool              `json:"showFooter"`
	Theme      string            `json:"theme"`  // "default" or "light"
	Colors     map[string]string `json:"colors"` // palette overrides, hex values
}

const (
	defaultPosition      = decoration.ModeRight
	defaultIndexPath     = ".inlinefields/index.db"
	defaultAutoSaveDelay = time.Second
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Checkbox: CheckboxConfig{
			Position: defaultPosition,
		},
		Vault: VaultConfig{
			Root:      ".",
			IndexPath: defaultIndexPath,
		},
		Editor: EditorConfig{
			AutoSaveDelay: defaultAutoSaveDelay,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			Theme:      "default",
		},
	}
}

// Validate normalizes the configuration. Values that cannot be used are
// replaced rather than rejected.
func (c *Config) Validate() error {
	if _, ok := decoration.ParseMode(string(c.Checkbox.Position)); !ok {
		slog.Warn("unknown checkbox position, checkboxes disabled", "position", c.Checkbox.Position)
		c.Checkbox.Position = decoration.ModeNone
	}

	kept := c.Autocomplete[:0]
	for _, ac := range c.Autocomplete {
		ac.Field = strings.TrimSpace(ac.Field)
		ac.Folder = strings.Trim(strings.TrimSpace(ac.Folder), "/")
		if ac.Field == "" {
			continue
		}
		kept = append(kept, ac)
	}
	c.Autocomplete = kept

	if c.Vault.Root == "" {
		c.Vault.Root = "."
	}
	if c.Vault.IndexPath == "" {
		c.Vault.IndexPath = defaultIndexPath
	}
	if c.Editor.AutoSaveDelay <= 0 {
		c.Editor.AutoSaveDelay = defaultAutoSaveDelay
	}
	return nil
}

// FolderFor returns the folder configured for field.
func (c *Config) FolderFor(field string) (string, bool) {
	for _, ac := range c.Autocomplete {
		if ac.Field == field {
			return ac.Folder, true
		}
	}
	return "", false
}
