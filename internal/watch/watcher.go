// Package watch reports changes to the directories shown by open listing
// columns so frontends can refresh them.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"seeker/internal/errors"
	"seeker/internal/log"
)

// DefaultDebounce coalesces bursts of events in one directory.
const DefaultDebounce = 150 * time.Millisecond

// listingOps change what a directory listing shows.
const listingOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Change says the entries of Dir changed.
type Change struct {
	Dir       string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors a set of directories with fsnotify.
type Watcher struct {
	directories []string
	changes     chan Change
	stopChan    chan struct{}
	done        chan struct{}
	fsWatcher   *fsnotify.Watcher
	debounce    time.Duration

	mutex   sync.RWMutex
	running bool
	closed  bool
}

// New creates a watcher. A debounce of zero uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		changes:   make(chan Change, 16),
		fsWatcher: fsWatcher,
		debounce:  debounce,
	}, nil
}

// Watch replaces the watched set with dirs. Directories that cannot be
// watched are skipped and reported in the returned error; the rest are
// still watched.
func (w *Watcher) Watch(dirs []string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	want := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		want[filepath.Clean(d)] = true
	}

	kept := w.directories[:0]
	for _, d := range w.directories {
		if want[d] {
			kept = append(kept, d)
			delete(want, d)
			continue
		}
		// removed directories drop their watch on their own
		_ = w.fsWatcher.Remove(d)
	}
	w.directories = kept

	var firstErr error
	for _, d := range dirs {
		d = filepath.Clean(d)
		if !want[d] {
			continue
		}
		delete(want, d)
		if err := w.add(d); err != nil {
			log.LogWithError(err).Warn("directory not watched")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		w.directories = append(w.directories, d)
	}
	return firstErr
}

func (w *Watcher) add(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.FromOS("error accessing directory", dir, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.FromOS("failed to watch directory", dir, err)
	}
	log.LogWithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Changes delivers coalesced directory changes. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start runs the event loop in its own goroutine.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errors.NewInvalidInputError("watcher already running", nil)
	}
	if w.closed || w.done != nil {
		return errors.NewInvalidInputError("watcher cannot be restarted", nil)
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)

	pending := make(map[string]fsnotify.Op)
	var flush <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&listingOps == 0 {
				continue
			}
			dir := filepath.Dir(event.Name)
			if !w.isWatched(dir) {
				continue
			}
			pending[dir] |= event.Op
			if flush == nil {
				flush = time.After(w.debounce)
			}

		case <-flush:
			flush = nil
			now := time.Now()
			for dir, op := range pending {
				select {
				case w.changes <- Change{Dir: dir, Op: op, Timestamp: now}:
				default:
					log.LogWithFields(log.F("directory", dir)).Warn("change channel full, dropped change")
				}
				delete(pending, dir)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogError(err, "fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) isWatched(dir string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	for _, d := range w.directories {
		if d == dir {
			return true
		}
	}
	return false
}

// Stop ends the event loop and closes the Changes channel. It is safe to
// call more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	if wasRunning {
		w.running = false
		close(w.stopChan)
	}
	w.mutex.Unlock()

	if err := w.fsWatcher.Close(); err != nil {
		log.LogError(err, "error closing fsnotify watcher")
	}
	if wasRunning {
		<-w.done
	} else {
		close(w.changes)
	}
}

// IsRunning reports whether the event loop is active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the watched directories.
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	out := make([]string, len(w.directories))
	copy(out, w.directories)
	return out
}
