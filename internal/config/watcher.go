package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openclaw/claw-runner/internal/models"
)

const debounceDelay = 100 * time.Millisecond

// ReloadEvent is emitted after the store picked up a changed config file.
type ReloadEvent struct {
	Config *models.Config
	Err    error // parse error; Config holds the defaults then
}

// Watcher reloads a Store when its config file changes on disk.
type Watcher struct {
	store      *Store
	fsWatcher  *fsnotify.Watcher
	eventsChan chan ReloadEvent
	done       chan struct{}
	stopOnce   sync.Once

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// NewWatcher creates a watcher for the store's config file.
func NewWatcher(store *Store) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		store:      store,
		fsWatcher:  fsWatcher,
		eventsChan: make(chan ReloadEvent, 8),
		done:       make(chan struct{}),
	}, nil
}

// Events returns the channel of completed reloads.
func (w *Watcher) Events() <-chan ReloadEvent {
	return w.eventsChan
}

// Start watches the directory holding the config file. The directory is
// watched rather than the file so editor rename-over-save is seen.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.store.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	go w.processEvents()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != filepath.Base(w.store.Path()) {
		return
	}
	// Rename covers atomic saves (write tmp, rename onto target).
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	err := w.store.Reload()
	if err != nil {
		log.Printf("[watcher] config reload fell back to defaults: %v", err)
	} else {
		log.Printf("[watcher] config reloaded from %s", w.store.Path())
	}

	select {
	case w.eventsChan <- ReloadEvent{Config: w.store.Current(), Err: err}:
	default:
		// Nobody is listening; the store is already updated.
	}
}
