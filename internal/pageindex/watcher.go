package pageindex

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch keeps the index current with changes under the vault root until ctx
// is done. Each changed page path (vault-relative, slash-separated) is sent on
// the returned channel; sends are dropped when the channel is full. The
// channel is closed when watching stops.
func (x *Index) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := x.addWatchTree(watcher, x.root); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan string, 32)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				x.handleEvent(ctx, watcher, event, changes)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				x.logger.Warn("vault watcher error", "err", err)
			}
		}
	}()

	return changes, nil
}

func (x *Index) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, changes chan<- string) {
	if isHidden(filepath.Base(event.Name)) {
		return
	}

	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if err := x.removePath(ctx, event.Name); err != nil {
			x.logger.Warn("unindex failed", "path", event.Name, "err", err)
			return
		}

	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if event.Op&fsnotify.Create != 0 {
				_ = x.addWatchTree(watcher, event.Name)
				// Pages may land before the watch is added.
				x.indexTree(ctx, event.Name, changes)
			}
			return
		}
		if !isPage(info.Name()) {
			return
		}
		if err := x.indexFile(ctx, event.Name); err != nil {
			x.logger.Warn("index failed", "path", event.Name, "err", err)
			return
		}

	default:
		return
	}

	x.notify(event.Name, changes)
}

func (x *Index) notify(abs string, changes chan<- string) {
	rel, err := filepath.Rel(x.root, abs)
	if err != nil {
		return
	}
	select {
	case changes <- filepath.ToSlash(rel):
	default:
	}
}

func (x *Index) indexTree(ctx context.Context, dir string, changes chan<- string) {
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != dir && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isPage(d.Name()) && x.indexFile(ctx, p) == nil {
			x.notify(p, changes)
		}
		return nil
	})
}

func (x *Index) addWatchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			_ = watcher.Add(p)
		}
		return nil
	})
}
