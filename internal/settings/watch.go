package settings

import (
	"fmt"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a settings file whenever it changes on disk. Editors and
// sync tools write files in bursts, so events are debounced before the
// reload fires. The callback runs on the watcher goroutine; callers must
// hand the result over to the frame-loop goroutine themselves before
// applying it.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching path and calls onChange with each successfully
// reloaded Settings. Unreadable or unparsable intermediate states are
// logged and skipped; the previous settings stay active.
func Watch(path string, logger *zap.Logger, onChange func(Settings)) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("settings: watch: %w", err)
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("settings: watch %s: %w", path, err)
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	debounced := debounce.New(150 * time.Millisecond)

	go func() {
		for {
			select {
			case <-w.done:
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounced(func() {
					s, err := Load(path)
					if err != nil {
						logger.Warn("settings: reload failed, keeping previous", zap.Error(err))
						return
					}
					logger.Info("settings: reloaded", zap.String("path", path))
					onChange(s)
				})
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("settings: watcher error", zap.Error(err))
			}
		}
	}()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
