package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the source must stay quiet before a rebuild
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors the source logo and rebuilds icons when it changes
type Watcher struct {
	source   string
	rebuild  func() error
	debounce time.Duration
	watcher  *fsnotify.Watcher
	events   chan Event

	mu      sync.Mutex // serializes rebuilds
	timer   *time.Timer
	stopped bool
}

// Event reports one rebuild triggered by a source change
type Event struct {
	Type     EventType
	FilePath string
	Err      error
}

// EventType represents the type of file event
type EventType int

const (
	EventCreated EventType = iota
	EventModified
	EventRenamed
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	case EventRenamed:
		return "renamed"
	}
	return "unknown"
}

// NewWatcher creates a watcher that calls rebuild after source changes
func NewWatcher(source string, rebuild func() error) (*Watcher, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		source:   abs,
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		watcher:  fsWatcher,
		events:   make(chan Event, 100),
	}, nil
}

// SetDebounce changes the quiet period before a rebuild
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins monitoring the source file's directory. Editors often
// replace files instead of writing in place, so the directory is watched
// rather than the file.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.source)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}
	log.Printf("Watching %s", w.source)

	go w.processEvents()

	return nil
}

// processEvents filters fsnotify events down to the source file
func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.source {
				continue
			}

			eventType, ok := classify(event.Op)
			if !ok {
				continue
			}

			w.schedule(eventType)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func classify(op fsnotify.Op) (EventType, bool) {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return EventCreated, true
	case op&fsnotify.Write == fsnotify.Write:
		return EventModified, true
	case op&fsnotify.Rename == fsnotify.Rename:
		return EventRenamed, true
	}
	return 0, false
}

// schedule restarts the debounce timer; only the last event in a burst
// triggers a rebuild.
func (w *Watcher) schedule(eventType EventType) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.handleEvent(eventType)
	})
}

// handleEvent runs one rebuild and reports it
func (w *Watcher) handleEvent(eventType EventType) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	log.Printf("Source %s: %s", eventType, w.source)
	err := w.rebuild()
	if err != nil {
		log.Printf("Failed to regenerate icons: %v", err)
	}

	select {
	case w.events <- Event{Type: eventType, FilePath: w.source, Err: err}:
	default:
		// nobody is listening
	}
}

// Events returns the rebuild event channel
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.events)
	w.mu.Unlock()

	return w.watcher.Close()
}
