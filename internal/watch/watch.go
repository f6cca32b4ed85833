// Package watch reruns a build when template sources change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a burst of file events must stay quiet before
// a rebuild starts.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches a directory tree for changes to templates, includes and
// trailers.
type Watcher struct {
	logger   *slog.Logger
	base     *fsnotify.Watcher
	root     string
	debounce time.Duration
}

// New watches every directory under root, skipping vendor, node_modules
// and hidden directories.
func New(root string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	base, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{logger: logger, base: base, root: absRoot, debounce: DefaultDebounce}
	if err := w.addTree(absRoot); err != nil {
		base.Close()
		return nil, err
	}
	return w, nil
}

func skipDir(name string) bool {
	return name == "vendor" || name == "node_modules" || strings.HasPrefix(name, ".")
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.IsDir() {
			return nil
		}
		if p != w.root && skipDir(de.Name()) {
			return filepath.SkipDir
		}
		if err := w.base.Add(p); err != nil {
			return err
		}
		w.logger.Debug("watching directory", slog.String("dir", p))
		return nil
	})
}

// Relevant reports whether a change to the named file can change the
// output of a build: templates, HTML and Markdown includes, text includes
// and trailers. Generated Go files and hidden files are ignored.
func Relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".html", ".htm", ".md", ".markdown", ".ext", ".txt":
		return true
	}
	return false
}

// Run calls rebuild with the changed files after every quiet burst of
// relevant events, until ctx is done. Errors from rebuild and from the
// watcher are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, rebuild func(ctx context.Context, changed []string) error) error {
	defer w.base.Close()
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-w.base.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", slog.Any("error", err))
		case ev, ok := <-w.base.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Lstat(ev.Name); err == nil && fi.IsDir() && !skipDir(fi.Name()) {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Warn("unable to watch new directory", slog.String("dir", ev.Name), slog.Any("error", err))
					}
					continue
				}
			}
			if !Relevant(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("file event", slog.String("name", ev.Name), slog.String("op", ev.Op.String()))
			pending[ev.Name] = true
			timer.Reset(w.debounce)
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			slices.Sort(changed)
			clear(pending)
			w.logger.Info("rebuilding", slog.Int("changed", len(changed)))
			if err := rebuild(ctx, changed); err != nil {
				w.logger.Error("rebuild failed", slog.Any("error", err))
			}
		}
	}
}
