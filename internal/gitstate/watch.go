package gitstate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDelay is the debounce window between a filesystem event and the
// re-read it triggers. Checkouts and rebases touch many files in a burst.
const DefaultWatchDelay = 350 * time.Millisecond

// Watcher re-reads repository state when the control directory changes and
// hands a fresh Snapshot to the callback. Nothing is cached: every delivery
// is a full re-read.
type Watcher struct {
	reader   *Reader
	fsw      *fsnotify.Watcher
	delay    time.Duration
	onChange func(Snapshot)
	log      *slog.Logger

	mu    sync.Mutex
	timer *time.Timer

	closeOnce sync.Once
}

// Watch starts watching the repository's control directory. A delay of zero
// selects DefaultWatchDelay. Close releases the watcher.
func (r *Reader) Watch(delay time.Duration, onChange func(Snapshot)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback not set")
	}
	if delay <= 0 {
		delay = DefaultWatchDelay
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, path := range r.watchPaths() {
		r.log.Debug("adding path to FS watcher", slog.String("path", path))
		if err := fsw.Add(path); err != nil {
			err := errors.Join(err, fsw.Close())
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}
	w := &Watcher{
		reader:   r,
		fsw:      fsw,
		delay:    delay,
		onChange: onChange,
		log:      r.log,
	}
	go w.loop()
	return w, nil
}

// watchPaths lists the directories whose mutation can change a query result:
// the control directory itself (HEAD, packed-refs, merge/rebase markers) and
// the loose-refs tree when it exists.
func (r *Reader) watchPaths() []string {
	paths := []string{r.gitDir}
	if info, err := os.Stat(r.refsHeadsDir); err == nil && info.IsDir() {
		paths = append(paths, r.refsHeadsDir)
	}
	return paths
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if shouldIgnoreWatchPath(ev.Name) {
				continue
			}
			w.log.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	snap, err := w.reader.Snapshot()
	if err != nil {
		// The repository may be mid-mutation; the next event retries.
		w.log.Error("state re-read failed", slog.Any("error", err))
		return
	}
	w.onChange(snap)
}

// Close stops event delivery. It is idempotent; a callback already scheduled
// may still fire once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}

// shouldIgnoreWatchPath filters the lock files git creates around every ref
// update; the rename to the final name is reported separately.
func shouldIgnoreWatchPath(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".lock"
}
