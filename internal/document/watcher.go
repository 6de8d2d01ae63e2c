package document

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single document. It watches the parent
// directory so editors that save by renaming a temporary file are seen too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	clock    clock.Clock
	onChange func(path string)
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher for the file at path. onChange runs on the
// watcher goroutine once writes have been quiet for debounce.
func NewWatcher(path string, debounce time.Duration, onChange func(string)) (*Watcher, error) {
	return newWatcher(path, debounce, clock.NewClock(), onChange)
}

func newWatcher(path string, debounce time.Duration, clk clock.Clock, onChange func(string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:  fsWatcher,
		path:     abs,
		debounce: debounce,
		clock:    clk,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer clock.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = w.clock.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C()

		case <-fire:
			fire = nil
			log.Printf("[Watch] File changed: %s", w.path)
			w.onChange(w.path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Watch] Error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher and waits for the watch goroutine to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
