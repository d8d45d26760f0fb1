package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch blocks until ctx is done, invoking onClear every time the record
// file is removed or renamed away by another process. Long-running callers
// (the watch command) use this to drop to the denied state when a sibling
// towerctl logs out.
//
// The parent directory is watched rather than the file itself so that a
// remove-then-recreate sequence keeps being observed.
func (s *FileStore) Watch(ctx context.Context, onClear func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.path {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				onClear()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
}
