package catalogfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce delays the reload after a burst of file events; editors and
// atomic-rename writers emit several events per save.
const debounce = 250 * time.Millisecond

// Watch reloads the snapshot whenever a catalog file changes, until ctx is
// cancelled. A failed reload keeps the previous snapshot serving.
// Directories are watched (not the files themselves) so atomic renames keep
// working.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{filepath.Clean(s.productsPath): true}
	dirs := map[string]bool{filepath.Dir(s.productsPath): true}
	if s.pairsPath != "" {
		watched[filepath.Clean(s.pairsPath)] = true
		dirs[filepath.Dir(s.pairsPath)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			if err := s.Load(); err != nil {
				s.logger.Error("catalog reload failed, keeping previous snapshot", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("catalog watcher error", zap.Error(err))
		}
	}
}
