package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/cooper/pkg/logger"
)

// Watch reloads the configuration each time the file named by COOPER_CONFIG
// is written, created or renamed into place and hands the result to onChange. A reload that fails is logged
// and the previous config stays active. Watch blocks until ctx is done.
func Watch(ctx context.Context, log logger.Logger, onChange func(*Config)) error {
	path := os.Getenv(EnvConfig)
	if path == "" {
		return fmt.Errorf("%w: %s is not set", ErrInvalidConfig, EnvConfig)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: watcher: %w", ErrLoadConfig, err)
	}
	defer func() { _ = watcher.Close() }()

	// The directory is watched so atomic saves, which replace the file,
	// keep being seen.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: watch %s: %w", ErrLoadConfig, path, err)
	}
	log.Info(ctx, "watching config for changes", logger.String("path", path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(ctx)
			if err != nil {
				log.Error(ctx, "config reload failed; keeping previous config", logger.String("path", path), logger.Error(err))
				continue
			}
			log.Info(ctx, "config reloaded", logger.String("path", path))
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "config watcher error", logger.Error(err))
		}
	}
}
