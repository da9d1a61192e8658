// Package watcher reloads the data set when coordinate tables or photo
// directories change on disk. Optional; the default lifecycle is a single
// load per session.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Service monitors the data directory tree and fires a debounced reload
// callback on changes.
type Service struct {
	root     string
	fw       *fsnotify.Watcher
	debounce time.Duration
}

// NewService creates a monitor for the data directory and all its
// subdirectories.
func NewService(root string) (*Service, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	s := &Service{
		root:     root,
		fw:       fw,
		debounce: 2 * time.Second,
	}
	if err := s.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return s, nil
}

func (s *Service) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Watcher: cannot access path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := s.fw.Add(path); err != nil {
			slog.Warn("Watcher: cannot watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// Run blocks until the context is done, invoking onChange after each
// quiet period following one or more filesystem events. New directories
// are picked up as they appear.
func (s *Service) Run(ctx context.Context, onChange func(context.Context)) {
	defer s.fw.Close()

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-s.fw.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = s.addTree(ev.Name)
				}
			}
			slog.Debug("Watcher: change detected", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-s.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", "error", err)

		case <-fire:
			slog.Info("Data directory changed, reloading")
			onChange(ctx)
		}
	}
}
