package content

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reloads a content file into a Store whenever it changes on disk.
// Invalid edits are logged and the previous content stays in effect.
type Watcher struct {
	path      string
	store     *Store
	log       logrus.FieldLogger
	fsWatcher *fsnotify.Watcher

	mutex   sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for path feeding store.
func NewWatcher(path string, store *Store, log logrus.FieldLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving content path: %w", err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{
		path:      abs,
		store:     store,
		log:       log.WithField("file", abs),
		fsWatcher: fsWatcher,
	}, nil
}

// Start watches the file's directory, so editors that save by renaming a
// temporary file over the original are still picked up.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.loop(w.stopCh, w.doneCh)
	w.log.Info("Watching content file")
	return nil
}

// Stop ends the event loop and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	close(w.stopCh)
	if err := w.fsWatcher.Close(); err != nil {
		w.log.WithError(err).Error("Error closing fsnotify watcher")
	}
	<-w.doneCh
	w.running = false
}

// Reload reads the file and publishes it if it is valid.
func (w *Watcher) Reload() error {
	c, err := Load(w.path)
	if err != nil {
		return err
	}
	w.store.Set(c)
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.log.WithError(err).Warn("Content reload rejected, keeping previous content")
				continue
			}
			w.log.WithField("op", event.Op.String()).Info("Content reloaded")

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}
