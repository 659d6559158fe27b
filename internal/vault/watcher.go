package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"mdkb/internal/contextutil"
)

// DefaultSettle is how long a new file must stay quiet before it is imported.
const DefaultSettle = 300 * time.Millisecond

// Watcher imports files created under a directory into a knowledge base.
// Newly created subdirectories are watched as well; hidden paths are ignored.
// Only creation triggers an import; later edits to imported files are ignored.
type Watcher struct {
	importer DocumentImporter
	scanner  *Scanner
	kbID     string
	root     string
	settle   time.Duration

	// pending maps a created file to the time of its last event.
	pending map[string]time.Time
}

// NewWatcher creates a watcher for root.
func NewWatcher(importer DocumentImporter, scanner *Scanner, kbID, root string) *Watcher {
	return &Watcher{
		importer: importer,
		scanner:  scanner,
		kbID:     kbID,
		root:     root,
		settle:   DefaultSettle,
		pending:  make(map[string]time.Time),
	}
}

// Run watches until ctx is cancelled. Files still settling at that point are imported before returning.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := w.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = fw.Close()
	}()
	return w.loop(ctx, fw)
}

// open resolves the root and registers it and its visible subdirectories.
func (w *Watcher) open(ctx context.Context) (*fsnotify.Watcher, error) {
	absRoot, err := filepath.Abs(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", w.root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", w.root)
	}
	w.root = absRoot

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.addTree(fw, absRoot, time.Time{}); err != nil {
		_ = fw.Close()
		return nil, err
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "watching directory", "root", absRoot, "kb_id", w.kbID, "patterns", w.scanner.Patterns())
	return fw, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) error {
	logger := contextutil.LoggerFromContext(ctx)

	interval := w.settle / 2
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.importSettled(context.WithoutCancel(ctx), time.Time{})
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, fw, event, time.Now())
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "watch error", "error", err)
		case now := <-ticker.C:
			w.importSettled(ctx, now)
		}
	}
}

// handleEvent queues created files that match the scanner and starts watching created directories.
// It reports whether the event queued or refreshed a pending file.
func (w *Watcher) handleEvent(ctx context.Context, fw *fsnotify.Watcher, event fsnotify.Event, now time.Time) bool {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || hiddenRel(rel) {
		return false
	}

	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			return false
		}
		if info.IsDir() {
			if fw != nil {
				// Files may already exist by the time the directory is registered.
				if err := w.addTree(fw, event.Name, now); err != nil {
					contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to watch directory", "path", event.Name, "error", err)
				}
			}
			return false
		}
		if !info.Mode().IsRegular() || !w.scanner.Match(rel) {
			return false
		}
		w.pending[event.Name] = now
		return true
	case event.Has(fsnotify.Write):
		if _, ok := w.pending[event.Name]; ok {
			w.pending[event.Name] = now
			return true
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
	}
	return false
}

// addTree watches dir and its visible subdirectories. A non-zero queuedAt also
// queues matching files found there.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string, queuedAt time.Time) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := fw.Add(p); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
			return nil
		}
		if queuedAt.IsZero() || !d.Type().IsRegular() {
			return nil
		}
		if rel, err := filepath.Rel(w.root, p); err == nil && w.scanner.Match(rel) {
			w.pending[p] = queuedAt
		}
		return nil
	})
}

// importSettled imports pending files that have been quiet for the settle period.
// A zero now imports everything pending.
func (w *Watcher) importSettled(ctx context.Context, now time.Time) {
	logger := contextutil.LoggerFromContext(ctx)

	var ready []string
	for p, last := range w.pending {
		if now.IsZero() || now.Sub(last) >= w.settle {
			ready = append(ready, p)
		}
	}
	sort.Strings(ready)

	for _, p := range ready {
		delete(w.pending, p)
		doc, err := w.importer.ImportDocument(ctx, w.kbID, p)
		if err != nil {
			logger.WarnContext(ctx, "failed to import document", "path", p, "error", err)
			continue
		}
		logger.InfoContext(ctx, "imported new file", "path", p, "doc_id", doc.ID)
	}
}
