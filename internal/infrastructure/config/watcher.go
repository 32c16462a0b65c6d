package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads tuning.yaml whenever it changes on disk and publishes the
// new values on Updates. Consumers drain Updates between ticks.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  *log.Logger

	Updates chan *Tuning
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the tuning file inside dir
func NewWatcher(dir string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file instead of writing it
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    filepath.Join(dir, TuningFile),
		logger:  logger,
		Updates: make(chan *Tuning, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Updates is closed once the goroutine exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Updates)

	// Reload once the file has been quiet for reloadDebounce, so a write
	// split into truncate + write is read whole
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			timer.Reset(reloadDebounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("tuning watcher error", "err", err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("tuning reload failed", "path", w.path, "err", err)
		return
	}

	cfg := DefaultTuning()
	if err := ParseTuning(data, cfg); err != nil {
		w.logger.Warn("tuning reload failed", "path", w.path, "err", err)
		return
	}

	// Keep only the newest value if the consumer has not caught up
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
		w.logger.Info("tuning reloaded", "path", w.path)
	case <-w.closeCh:
	}
}
