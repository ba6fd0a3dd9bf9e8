package assets

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quillon/prism/viewer/core"
)

// Watcher observes the currently loaded model file and reports writes
// so the viewer can re-issue the load request. Rapid successive write
// events are debounced into one notification.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	onChange func(path string)

	mutex    sync.Mutex
	watched  string
	isClosed bool
	done     chan struct{}
}

const watchDebounce = 200 * time.Millisecond

func NewWatcher(onChange func(path string)) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsnotify: fsWatch,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch replaces the watched path with the given file. An empty path
// stops watching entirely.
func (w *Watcher) Watch(path string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return errors.New("watcher already closed")
	}
	if w.watched != "" {
		_ = w.fsnotify.Remove(filepath.Dir(w.watched))
		w.watched = ""
	}
	if path == "" {
		return nil
	}
	// Watch the directory: editors replace files on save, which drops
	// a direct file watch.
	if err := w.fsnotify.Add(filepath.Dir(path)); err != nil {
		return err
	}
	w.watched = path
	return nil
}

// Watched returns the currently watched file path, or empty when idle.
func (w *Watcher) Watched() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.watched
}

func (w *Watcher) run() {
	var pending string
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.mutex.Lock()
			watched := w.watched
			w.mutex.Unlock()
			if watched == "" || filepath.Clean(event.Name) != filepath.Clean(watched) {
				continue
			}
			pending = watched
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			if pending != "" && w.onChange != nil {
				core.LogDebug("model file changed: %s", pending)
				w.onChange(pending)
				pending = ""
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogWarn("file watcher error: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}
