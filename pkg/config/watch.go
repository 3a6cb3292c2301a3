package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the config file and reloads the global configuration
// whenever it is written or recreated. It blocks until the context is
// cancelled. onReload, if non-nil, is called after each successful
// reload.
func Watch(ctx context.Context, onReload func(*Config)) error {
	path := Get().ConfigFilePath()
	if path == "" {
		return fmt.Errorf("no config file path to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := Reload(); err != nil {
					continue
				}
				if onReload != nil {
					onReload(Get())
				}
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
