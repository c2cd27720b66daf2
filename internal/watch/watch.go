// Package watch reports changes to a single markdown file.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"minibook-cli/internal/logging"
)

type Op int

const (
	Changed Op = iota + 1
	Removed
)

func (o Op) String() string {
	switch o {
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

type Event struct {
	Path string
	Op   Op
}

// DefaultDebounce coalesces the burst of writes editors produce on save.
const DefaultDebounce = 75 * time.Millisecond

type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *logging.Logger
}

// NewFileWatcher watches the directory containing path so atomic saves (write temp, rename over)
// are still seen. Only events for path itself are reported.
func NewFileWatcher(path string, log *logging.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}
	return &FileWatcher{watcher: w, path: abs, debounce: DefaultDebounce, log: log}, nil
}

func (w *FileWatcher) Path() string { return w.path }

// Watch emits events until ctx is done or Stop is called. The channel is closed on exit.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan Event, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, err
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)

		var (
			pending Op
			timer   *time.Timer
			fire    <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}

				var op Op
				switch {
				case event.Op&fsnotify.Create == fsnotify.Create,
					event.Op&fsnotify.Write == fsnotify.Write:
					op = Changed
				case event.Op&fsnotify.Remove == fsnotify.Remove,
					event.Op&fsnotify.Rename == fsnotify.Rename:
					op = Removed
				default:
					continue
				}
				// A later create after a rename means the file was replaced, not removed.
				pending = op
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				select {
				case events <- Event{Path: w.path, Op: pending}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn("file watcher error", "path", w.path, "err", err)
			}
		}
	}()

	return events, nil
}

func (w *FileWatcher) Stop() error {
	return w.watcher.Close()
}
