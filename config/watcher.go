// @focus: #config { reload } #sys { fsnotify }
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/termface/logging"
)

// Watcher reloads an options file when it changes on disk
type Watcher struct {
	watcher   *fsnotify.Watcher
	path      string
	onChange  func(map[string]string)
	debounce  time.Duration
	closeOnce sync.Once
}

// NewWatcher watches path. onChange runs on the Run goroutine with the freshly
// loaded options; files that fail to load are logged and skipped.
func NewWatcher(path string, onChange func(map[string]string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch options: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch options: %w", err)
	}
	// Editors replace files by rename, which drops a watch on the file itself
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch options: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		onChange: onChange,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Path returns the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Run processes file system events until the context is canceled or the watcher closes
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("options watcher: %v", err)

		case <-fire:
			fire = nil
			options, err := LoadFile(w.path)
			if err != nil {
				logging.Warn("options reload: %v", err)
				continue
			}
			logging.Debug("options reloaded from %s", w.path)
			w.onChange(options)
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
