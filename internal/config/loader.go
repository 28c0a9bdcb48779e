package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marcus/inlinefields/internal/decoration"
)

const (
	configDir  = ".config/inlinefields"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Checkbox     rawCheckboxConfig   `json:"checkbox"`
	Autocomplete []AutocompleteField `json:"autocomplete"`
	Vault        rawVaultConfig      `json:"vault"`
	Editor       rawEditorConfig     `json:"editor"`
	Keymap       KeymapConfig        `json:"keymap"`
	UI           rawUIConfig         `json:"ui"`
}

type rawCheckboxConfig struct {
	Position string `json:"position"`
}

type rawVaultConfig struct {
	Root      string `json:"root"`
	IndexPath string `json:"indexPath"`
}

type rawEditorConfig struct {
	AutoSaveDelay string `json:"autoSaveDelay"`
}

type rawUIConfig struct {
	ShowFooter *bool             `json:"showFooter"`
	Theme      string            `json:"theme"`
	Colors     map[string]string `json:"colors"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/inlinefields/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults when home is unknown
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	cfg.Vault.Root = ExpandPath(cfg.Vault.Root)
	cfg.Vault.IndexPath = ExpandPath(cfg.Vault.IndexPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Checkbox.Position != "" {
		cfg.Checkbox.Position = decoration.Mode(raw.Checkbox.Position)
	}

	if raw.Autocomplete != nil {
		cfg.Autocomplete = append([]AutocompleteField(nil), raw.Autocomplete...)
	}

	// Vault
	if raw.Vault.Root != "" {
		cfg.Vault.Root = raw.Vault.Root
	}
	if raw.Vault.IndexPath != "" {
		cfg.Vault.IndexPath = raw.Vault.IndexPath
	}

	// Editor
	if raw.Editor.AutoSaveDelay != "" {
		if d, err := time.ParseDuration(raw.Editor.AutoSaveDelay); err == nil {
			cfg.Editor.AutoSaveDelay = d
		}
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	if raw.UI.Colors != nil {
		cfg.UI.Colors = raw.UI.Colors
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// IndexPath returns the page index location, resolved against the vault root.
func (c *Config) IndexPath() string {
	if filepath.IsAbs(c.Vault.IndexPath) {
		return c.Vault.IndexPath
	}
	return filepath.Join(c.Vault.Root, c.Vault.IndexPath)
}
