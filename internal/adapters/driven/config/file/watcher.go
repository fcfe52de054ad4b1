package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/supportbot/internal/logger"
)

// PromptWatcher reloads a PromptStore whenever a prompt file changes.
type PromptWatcher struct {
	store   *PromptStore
	watcher *fsnotify.Watcher
	reloads chan struct{}
}

// NewPromptWatcher starts watching the store's prompt directory.
// The directory is created first if it does not exist.
func NewPromptWatcher(store *PromptStore) (*PromptWatcher, error) {
	if err := store.EnsureDir(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(store.Dir()); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir(), err)
	}

	return &PromptWatcher{
		store:   store,
		watcher: watcher,
		reloads: make(chan struct{}, 1),
	}, nil
}

// Run processes file events until ctx is cancelled or the watcher closes.
func (w *PromptWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isPromptEvent(event) {
				continue
			}
			w.store.Reload()
			logger.Debug("prompt %s changed, reloaded", filepath.Base(event.Name))
			select {
			case w.reloads <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("prompt watcher: %v", err)
		}
	}
}

// Reloads signals after each reload. Signals are dropped while one is pending.
func (w *PromptWatcher) Reloads() <-chan struct{} {
	return w.reloads
}

// Close stops watching.
func (w *PromptWatcher) Close() error {
	return w.watcher.Close()
}

// isPromptEvent reports whether the event changed a prompt file's content.
func isPromptEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, promptExt) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
