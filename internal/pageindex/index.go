// Package pageindex keeps a queryable index of the markdown pages in a vault.
package pageindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	_ "github.com/mattn/go-sqlite3"
)

// ErrPathEscape is returned when a page path resolves outside the vault root.
var ErrPathEscape = errors.New("path escapes vault root")

const pageExt = ".md"

// Folder listings are cached between writes. The TTL bounds staleness when
// the watcher misses an event.
const (
	cacheSize = 64
	cacheTTL  = 30 * time.Second
)

// Page is one indexed markdown file.
type Page struct {
	Path    string // slash-separated, relative to the vault root
	Name    string // base name without extension
	Folder  string // slash-separated parent folder, "" at the root
	ModTime time.Time
}

// Index stores vault pages in SQLite.
type Index struct {
	db     *sql.DB
	root   string
	logger *slog.Logger
	cache  *expirable.LRU[string, []Page]
}

// Open opens (creating if needed) the index database at dbPath for the vault at root.
func Open(root, dbPath string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	idx := &Index{
		db:     db,
		root:   absRoot,
		logger: logger,
		cache:  expirable.NewLRU[string, []Page](cacheSize, nil, cacheTTL),
	}
	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return idx, nil
}

// Root returns the absolute vault root.
func (x *Index) Root() string {
	return x.root
}

// Close closes the database connection.
func (x *Index) Close() error {
	if x.db != nil {
		return x.db.Close()
	}
	return nil
}

func (x *Index) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS pages (
    path TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    folder TEXT NOT NULL,
    mtime TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_folder ON pages(folder);
`
	_, err := x.db.Exec(schema)
	return err
}

// Rebuild replaces the index contents with a fresh walk of the vault.
// Hidden directories are skipped.
func (x *Index) Rebuild(ctx context.Context) error {
	var pages []Page
	err := filepath.WalkDir(x.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != x.root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPage(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(x.root, p)
		if err != nil {
			return nil
		}
		pages = append(pages, newPage(filepath.ToSlash(rel), info.ModTime()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk vault: %w", err)
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return fmt.Errorf("clear pages: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pages (path, name, folder, mtime) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, pg := range pages {
		if _, err := stmt.ExecContext(ctx, pg.Path, pg.Name, pg.Folder, pg.ModTime.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("insert page %s: %w", pg.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	x.cache.Purge()

	x.logger.Debug("page index rebuilt", "root", x.root, "pages", len(pages))
	return nil
}

// Pages returns the pages in folder and its subfolders, ordered by path.
// An empty folder selects the whole vault.
func (x *Index) Pages(ctx context.Context, folder string) ([]Page, error) {
	folder = strings.Trim(filepath.ToSlash(folder), "/")
	if pages, ok := x.cache.Get(folder); ok {
		return append([]Page(nil), pages...), nil
	}

	var (
		rows *sql.Rows
		err  error
	)
	if folder == "" {
		rows, err = x.db.QueryContext(ctx, `SELECT path, name, folder, mtime FROM pages ORDER BY path`)
	} else {
		rows, err = x.db.QueryContext(ctx, `
			SELECT path, name, folder, mtime FROM pages
			WHERE folder = ? OR substr(folder, 1, length(?) + 1) = ? || '/'
			ORDER BY path
		`, folder, folder, folder)
	}
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var pg Page
		var mtime string
		if err := rows.Scan(&pg.Path, &pg.Name, &pg.Folder, &mtime); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pg.ModTime, _ = time.Parse(time.RFC3339Nano, mtime)
		pages = append(pages, pg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read pages: %w", err)
	}
	x.cache.Add(folder, pages)
	return append([]Page(nil), pages...), nil
}

// CreatePage creates an empty page at relPath and indexes it. Missing parent
// folders are created. An existing file is left untouched.
func (x *Index) CreatePage(ctx context.Context, relPath string) error {
	abs, rel, err := x.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	switch {
	case err == nil:
		if err := f.Close(); err != nil {
			return fmt.Errorf("close page: %w", err)
		}
		x.logger.Info("page created", "path", rel)
	case errors.Is(err, fs.ErrExist):
	default:
		return fmt.Errorf("create page: %w", err)
	}

	return x.indexFile(ctx, abs)
}

// resolve maps a vault-relative path to an absolute path inside the root.
func (x *Index) resolve(relPath string) (abs, rel string, err error) {
	if relPath == "" || filepath.IsAbs(relPath) {
		return "", "", fmt.Errorf("%w: %q", ErrPathEscape, relPath)
	}
	abs = filepath.Join(x.root, filepath.FromSlash(relPath))
	r, err := filepath.Rel(x.root, abs)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %q", ErrPathEscape, relPath)
	}
	return abs, filepath.ToSlash(r), nil
}

// indexFile upserts the page at abs.
func (x *Index) indexFile(ctx context.Context, abs string) error {
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat page: %w", err)
	}
	rel, err := filepath.Rel(x.root, abs)
	if err != nil {
		return fmt.Errorf("relative path: %w", err)
	}
	pg := newPage(filepath.ToSlash(rel), info.ModTime())
	_, err = x.db.ExecContext(ctx, `
		INSERT INTO pages (path, name, folder, mtime) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET mtime = excluded.mtime
	`, pg.Path, pg.Name, pg.Folder, pg.ModTime.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("index page %s: %w", pg.Path, err)
	}
	x.cache.Purge()
	return nil
}

// removePath drops the page at abs, or every page below it when it was a folder.
func (x *Index) removePath(ctx context.Context, abs string) error {
	rel, err := filepath.Rel(x.root, abs)
	if err != nil {
		return fmt.Errorf("relative path: %w", err)
	}
	rel = filepath.ToSlash(rel)
	_, err = x.db.ExecContext(ctx, `
		DELETE FROM pages
		WHERE path = ? OR substr(path, 1, length(?) + 1) = ? || '/'
	`, rel, rel, rel)
	if err != nil {
		return fmt.Errorf("remove %s: %w", rel, err)
	}
	x.cache.Purge()
	return nil
}

func newPage(rel string, mtime time.Time) Page {
	folder := path.Dir(rel)
	if folder == "." {
		folder = ""
	}
	return Page{
		Path:    rel,
		Name:    strings.TrimSuffix(path.Base(rel), pageExt),
		Folder:  folder,
		ModTime: mtime,
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isPage(name string) bool {
	return strings.HasSuffix(name, pageExt) && !isHidden(name)
}
