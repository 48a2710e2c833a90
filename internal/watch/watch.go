// Package watch turns fsnotify activity on a single file into a coalescing
// stream of change notifications.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// notifyBuffer bounds the number of undelivered notifications. Extra events
// are dropped; the consumer reloads the whole file anyway.
const notifyBuffer = 16

// WatchError reports a failure to register the file watch.
type WatchError struct {
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("watch %s: %v", e.Path, e.Err)
}

func (e *WatchError) Unwrap() error { return e.Err }

// Watcher delivers one notification per filesystem event touching the target
// path. It watches the parent directory so editors and producers that replace
// the file by rename are still observed.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	events  chan struct{}
	log     logr.Logger
	cancel  context.CancelFunc
	done    chan struct{}
	closeMu sync.Once
}

// New starts watching path until ctx is done or Close is called.
func New(ctx context.Context, path string, log logr.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &WatchError{Path: path, Err: err}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &WatchError{Path: path, Err: err}
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, &WatchError{Path: path, Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:   abs,
		fs:     fsw,
		events: make(chan struct{}, notifyBuffer),
		log:    log.WithValues("path", abs),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.run(ctx)
	w.log.V(1).Info("watching file")
	return w, nil
}

// Events returns the notification channel. It is never closed.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeMu.Do(func() {
		w.cancel()
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.V(2).Info("file event", "op", ev.Op.String())
			w.notify()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "watch error")
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return name == w.path
}

func (w *Watcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
		w.log.V(2).Info("notification buffer full, dropping event")
	}
}
