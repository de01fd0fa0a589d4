package configfile

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	// reloadDebounce coalesces the event bursts editors produce on save.
	reloadDebounce = 200 * time.Millisecond
	// watchRestartDelay paces watch re-establishment after errors or
	// replace-on-save, one pending restart at a time.
	watchRestartDelay = time.Second
)

// fileWatcher keeps the repository in sync with external edits to the
// config file. It watches the file itself when it exists, or the parent
// directory filtered by name when it does not, and survives the
// remove/rename dance most editors perform on save.
type fileWatcher struct {
	repo *Repository
	log  zerolog.Logger

	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	debounce *time.Timer
	restart  *time.Timer
	closed   bool
}

func newFileWatcher(repo *Repository) *fileWatcher {
	return &fileWatcher{repo: repo, log: repo.log}
}

func (w *fileWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.setupLocked()
}

func (w *fileWatcher) setupLocked() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	target := w.repo.ConfigPath()
	dirMode := false
	if addErr := fsw.Add(target); addErr != nil {
		// The file may not exist yet; fall back to the parent directory
		// and filter events by name.
		if dirErr := fsw.Add(filepath.Dir(target)); dirErr != nil {
			fsw.Close()
			return fmt.Errorf("watching %s: %w", target, addErr)
		}
		dirMode = true
	}
	w.fsw = fsw
	w.log.Debug().Str("file", target).Bool("dirMode", dirMode).Msg("config watch established")
	go w.run(fsw, dirMode)
	return nil
}

func (w *fileWatcher) run(fsw *fsnotify.Watcher, dirMode bool) {
	target := w.repo.ConfigPath()
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("config file changed")
			w.scheduleReload()
			if dirMode || ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// The watched inode is gone (or the file just appeared in a
				// directory watch); re-attach to the path.
				w.scheduleRestart()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher error")
			w.scheduleRestart()
		}
	}
}

func (w *fileWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDebounce, w.repo.Reload)
}

func (w *fileWatcher) scheduleRestart() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.restart != nil {
		return
	}
	w.restart = time.AfterFunc(watchRestartDelay, w.restartNow)
}

func (w *fileWatcher) restartNow() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.restart = nil
	if w.closed {
		return
	}
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
	if err := w.setupLocked(); err != nil {
		w.log.Warn().Err(err).Msg("re-establishing config watch failed")
		w.restart = time.AfterFunc(watchRestartDelay, w.restartNow)
	}
}

func (w *fileWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	if w.restart != nil {
		w.restart.Stop()
	}
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
}
