package notes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// notePathIn resolves a vault-relative note path, refusing paths that leave
// the vault.
func notePathIn(root, rel string) (string, error) {
	if rel == "" || rel == "." {
		return "", errors.New("no note path given")
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("note path %q must be relative to the vault", rel)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("note path %q is outside the vault", rel)
	}
	return filepath.Join(root, clean), nil
}

// readNote returns the note content and its hash. A missing note reads as
// empty so it can be created on first save.
func readNote(path string) (string, uint64, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", hashContent(""), nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("read note: %w", err)
	}
	content := string(data)
	return content, hashContent(content), nil
}

// writeNote replaces the note through a temp file in the same directory.
func writeNote(path, content string) (uint64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create note dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".inlinefields-*")
	if err != nil {
		return 0, fmt.Errorf("save note: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("save note: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("save note: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("save note: %w", err)
	}
	return hashContent(content), nil
}

func hashContent(content string) uint64 {
	return xxhash.Sum64String(content)
}
