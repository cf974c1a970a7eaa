// Package watcher keeps search caches consistent with a documents directory
// by reacting to file system events.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/parser"
)

// Invalidator drops cached state derived from one document
type Invalidator interface {
	InvalidateDocument(path string)
}

// Watcher monitors a directory and invalidates caches when a document changes
type Watcher struct {
	fs     *fsnotify.Watcher
	dir    string
	target Invalidator
}

// New starts watching dir (non-recursively). Call Run to process events.
func New(dir string, target Invalidator) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{fs: fw, dir: dir, target: target}, nil
}

// Run dispatches events until ctx is done or the watcher is closed, then
// releases the underlying watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	logger.Info("watching %s for document changes", w.dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error on %s: %v", w.dir, err)
		}
	}
}

// Close stops the watcher; a running Run returns
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !parser.Supported(filepath.Base(event.Name)) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	logger.Debug("%s changed (%s), invalidating caches", event.Name, event.Op)
	w.target.InvalidateDocument(event.Name)
}
