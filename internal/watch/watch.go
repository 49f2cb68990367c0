package watch

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("watcher closed")

const DefaultDebounce = 100 * time.Millisecond

// Watcher reports writes to a single file. Editors often replace files by
// rename, so the parent directory is watched and events are filtered by name.
type Watcher struct {
	w        *fsnotify.Watcher
	path     string
	debounce time.Duration
}

func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{w: w, path: abs, debounce: debounce}, nil
}

func (w *Watcher) Path() string {
	return w.path
}

// Next blocks until the file is written, created or replaced. Bursts of events
// within the debounce window are folded into one.
func (w *Watcher) Next() error {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return ErrClosed
			}
			if !w.relevant(ev) {
				continue
			}
			w.drain()
			return nil
		case err, ok := <-w.w.Errors:
			if !ok {
				return ErrClosed
			}
			return err
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) drain() {
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-w.w.Events:
			if !ok {
				return
			}
		case <-timer.C:
			return
		}
	}
}

func (w *Watcher) Close() error {
	return w.w.Close()
}
