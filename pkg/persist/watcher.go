package persist

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// ownWriteWindow is how recently the gateway must have written for a
// file event to be attributed to ourselves rather than another process.
const ownWriteWindow = 2 * time.Second

// SnapshotWatcher monitors the snapshot file for writes made by anyone
// other than our own gateway. The engine assumes a single writer; the
// watcher makes a violated assumption visible instead of silently
// diverging. It never reloads state.
type SnapshotWatcher struct {
	watcher          *fsnotify.Watcher
	gateway          *FileGateway
	debounce         time.Duration
	onExternalChange func()
	done             chan struct{}
	timer            *time.Timer
	timerMu          sync.Mutex
	stopOnce         sync.Once
}

// NewSnapshotWatcher creates a watcher over the gateway's snapshot file.
// onExternalChange may be nil, in which case changes are only logged.
func NewSnapshotWatcher(gateway *FileGateway, onExternalChange func()) (*SnapshotWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &SnapshotWatcher{
		watcher:          watcher,
		gateway:          gateway,
		debounce:         200 * time.Millisecond,
		onExternalChange: onExternalChange,
		done:             make(chan struct{}),
	}, nil
}

// Start begins watching. The snapshot's directory is watched rather
// than the file itself so atomic rename-over writes are observed.
func (w *SnapshotWatcher) Start() error {
	dir := filepath.Dir(w.gateway.Path())
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go w.eventLoop()

	log.Debug().Str("path", w.gateway.Path()).Msg("Snapshot watcher started")

	return nil
}

// Stop stops the watcher. Calling it more than once is safe.
func (w *SnapshotWatcher) Stop() error {
	var closeErr error
	w.stopOnce.Do(func() {
		close(w.done)

		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()

		if err := w.watcher.Close(); err != nil {
			closeErr = fmt.Errorf("failed to close watcher: %w", err)
		}
	})
	return closeErr
}

func (w *SnapshotWatcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.gateway.Path() {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounceEvent()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("Snapshot watcher error")

		case <-w.done:
			return
		}
	}
}

func (w *SnapshotWatcher) debounceEvent() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}

		if time.Since(w.gateway.LastWrite()) < ownWriteWindow {
			return
		}

		log.Warn().
			Str("path", w.gateway.Path()).
			Msg("Snapshot file changed outside this process")

		if w.onExternalChange != nil {
			w.onExternalChange()
		}
	})
}
