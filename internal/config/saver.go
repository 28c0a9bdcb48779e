package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/inlinefields/internal/decoration"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Checkbox     CheckboxConfig      `json:"checkbox"`
	Autocomplete []AutocompleteField `json:"autocomplete"`
	Vault        VaultConfig         `json:"vault"`
	Editor       saveEditorConfig    `json:"editor"`
	Keymap       KeymapConfig        `json:"keymap"`
	UI           saveUIConfig        `json:"ui"`
}

type saveEditorConfig struct {
	AutoSaveDelay string `json:"autoSaveDelay,omitempty"`
}

type saveUIConfig struct {
	ShowFooter *bool             `json:"showFooter,omitempty"`
	Theme      string            `json:"theme,omitempty"`
	Colors     map[string]string `json:"colors,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	autocomplete := cfg.Autocomplete
	if autocomplete == nil {
		autocomplete = []AutocompleteField{}
	}
	return saveConfig{
		Checkbox:     cfg.Checkbox,
		Autocomplete: autocomplete,
		Vault:        cfg.Vault,
		Editor: saveEditorConfig{
			AutoSaveDelay: cfg.Editor.AutoSaveDelay.String(),
		},
		Keymap: cfg.Keymap,
		UI: saveUIConfig{
			ShowFooter: &cfg.UI.ShowFooter,
			Theme:      cfg.UI.Theme,
			Colors:     cfg.UI.Colors,
		},
	}
}

// Save writes the config to ~/.config/inlinefields/config.json
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("no config path")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}

	// Keys this package does not manage survive a save.
	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(existing, &merged); err != nil {
			merged = make(map[string]json.RawMessage)
		}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetCheckboxPosition validates and stores the checkbox position.
func (c *Config) SetCheckboxPosition(position string) error {
	mode, ok := decoration.ParseMode(position)
	if !ok {
		return fmt.Errorf("unknown checkbox position: %q", position)
	}
	c.Checkbox.Position = mode
	return nil
}

// AddAutocomplete appends an autocomplete field.
func (c *Config) AddAutocomplete(field, folder string) error {
	if field == "" {
		return fmt.Errorf("field name required")
	}
	if _, ok := c.FolderFor(field); ok {
		return fmt.Errorf("field already configured: %s", field)
	}
	c.Autocomplete = append(c.Autocomplete, AutocompleteField{Field: field, Folder: folder})
	return nil
}

// UpdateAutocomplete changes the folder of a configured field.
func (c *Config) UpdateAutocomplete(field, folder string) error {
	for i := range c.Autocomplete {
		if c.Autocomplete[i].Field == field {
			c.Autocomplete[i].Folder = folder
			return nil
		}
	}
	return fmt.Errorf("field not configured: %s", field)
}

// RemoveAutocomplete deletes a configured field.
func (c *Config) RemoveAutocomplete(field string) error {
	for i := range c.Autocomplete {
		if c.Autocomplete[i].Field == field {
			c.Autocomplete = append(c.Autocomplete[:i], c.Autocomplete[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("field not configured: %s", field)
}
