package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent editor state across sessions.
type State struct {
	LastNote string               `json:"lastNote,omitempty"` // vault-relative path of the last open note
	Notes    map[string]NoteState `json:"notes,omitempty"`
}

// NoteState is the saved position within one note.
type NoteState struct {
	Cursor  int `json:"cursor,omitempty"`  // byte offset
	TopLine int `json:"topLine,omitempty"` // first visible line, 1-based
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "inlinefields"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetNoteState returns the saved position for a note.
func GetNoteState(note string) (NoteState, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return NoteState{}, false
	}
	ns, ok := current.Notes[note]
	return ns, ok
}

// SetNoteState saves the position for a note and records it as the last note.
func SetNoteState(note string, ns NoteState) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	if current.Notes == nil {
		current.Notes = make(map[string]NoteState)
	}
	current.Notes[note] = ns
	current.LastNote = note
	mu.Unlock()
	return Save()
}

// GetLastNote returns the note open when state was last saved.
func GetLastNote() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.LastNote
}

// ForgetNote drops the saved position for a note.
func ForgetNote(note string) error {
	mu.Lock()
	if current == nil {
		mu.Unlock()
		return nil
	}
	delete(current.Notes, note)
	if current.LastNote == note {
		current.LastNote = ""
	}
	mu.Unlock()
	return Save()
}
