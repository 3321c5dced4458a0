package daub

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange each time one of the watched files is written or recreated,
// until the done channel is closed. The parent directories are watched instead of
// the files themselves, so the files being replaced by editors on save are still tracked.
// onChange is called from a single goroutine, never concurrently.
func Watch(done <-chan struct{}, paths []string, onChange func(name string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create the file watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	for {
		select {
		case <-done:
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			Logger().Warn("file watcher error", slog.Any("error", err))
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := watched[name]; !ok {
				continue
			}
			Logger().Debug("file changed", slog.String("name", name), slog.String("op", ev.Op.String()))
			onChange(name)
		}
	}
}
