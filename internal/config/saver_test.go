package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcus/inlinefields/internal/decoration"
)

func TestSaveTo_PreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	initial := []byte(`{
  "templates": ["daily"],
  "customKey": "should survive"
}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	if err := SaveTo(path, Default()); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}

	for _, key := range []string{"templates", "customKey", "checkbox", "autocomplete"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("saved config missing %q", key)
		}
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	if err := cfg.SetCheckboxPosition("left"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddAutocomplete("project", "Projects"); err != nil {
		t.Fatal(err)
	}
	cfg.Editor.AutoSaveDelay = 3 * time.Second
	cfg.UI.ShowFooter = false

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Checkbox.Position != decoration.ModeLeft {
		t.Errorf("got position %q, want 'left'", loaded.Checkbox.Position)
	}
	if folder, ok := loaded.FolderFor("project"); !ok || folder != "Projects" {
		t.Errorf("FolderFor(project) = %q, %v", folder, ok)
	}
	if loaded.Editor.AutoSaveDelay != 3*time.Second {
		t.Errorf("got autosave %v, want 3s", loaded.Editor.AutoSaveDelay)
	}
	if loaded.UI.ShowFooter {
		t.Error("showFooter should round-trip as false")
	}
}

func TestSaveTo_EmptyPath(t *testing.T) {
	if err := SaveTo("", Default()); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSetCheckboxPosition(t *testing.T) {
	cfg := Default()
	if err := cfg.SetCheckboxPosition("sideways"); err == nil {
		t.Error("expected error for unknown position")
	}
	if cfg.Checkbox.Position != decoration.ModeRight {
		t.Errorf("failed set changed position to %q", cfg.Checkbox.Position)
	}
	if err := cfg.SetCheckboxPosition("none"); err != nil {
		t.Fatal(err)
	}
	if cfg.Checkbox.Position != decoration.ModeNone {
		t.Errorf("got position %q, want 'none'", cfg.Checkbox.Position)
	}
}

func TestAutocompleteEditing(t *testing.T) {
	cfg := Default()

	if err := cfg.AddAutocomplete("", "x"); err == nil {
		t.Error("expected error for empty field")
	}
	if err := cfg.AddAutocomplete("project", "Projects"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddAutocomplete("project", "Other"); err == nil {
		t.Error("expected error for duplicate field")
	}
	if err := cfg.UpdateAutocomplete("project", "Work"); err != nil {
		t.Fatal(err)
	}
	if folder, _ := cfg.FolderFor("project"); folder != "Work" {
		t.Errorf("got folder %q, want 'Work'", folder)
	}
	if err := cfg.UpdateAutocomplete("missing", "x"); err == nil {
		t.Error("expected error updating missing field")
	}
	if err := cfg.RemoveAutocomplete("project"); err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.FolderFor("project"); ok {
		t.Error("field should be removed")
	}
	if err := cfg.RemoveAutocomplete("project"); err == nil {
		t.Error("expected error removing missing field")
	}
}
