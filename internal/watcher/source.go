package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of file change
type EventType int

const (
	// EventTypeCreated indicates a file was created
	EventTypeCreated EventType = iota
	// EventTypeModified indicates a file was modified
	EventTypeModified
	// EventTypeDeleted indicates a file was deleted
	EventTypeDeleted
	// EventTypeRenamed indicates a file was renamed
	EventTypeRenamed
)

// String returns the string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Removes reports whether the path no longer exists after the event.
func (e EventType) Removes() bool {
	return e == EventTypeDeleted || e == EventTypeRenamed
}

// ChangeEvent represents a file change event
type ChangeEvent struct {
	Type EventType
	Path string
}

// EventSource delivers filesystem change events for subscribed
// directories.
type EventSource interface {
	// Add subscribes to changes of the entries of dir.
	Add(dir string) error
	Events() <-chan ChangeEvent
	// Errors delivers failures of the notification mechanism itself.
	Errors() <-chan error
}

// FSNotifySource is an EventSource backed by fsnotify.
type FSNotifySource struct {
	watcher *fsnotify.Watcher
	events  chan ChangeEvent
	errors  chan error
	done    chan struct{}
}

// NewFSNotifySource creates an fsnotify backed event source. Close releases
// it.
func NewFSNotifySource() (*FSNotifySource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	s := &FSNotifySource{
		watcher: watcher,
		events:  make(chan ChangeEvent, 100),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go s.watchLoop()
	return s, nil
}

// Add subscribes to the entries of dir. fsnotify watches are not
// recursive; the session adds every directory it discovers.
func (s *FSNotifySource) Add(dir string) error {
	return s.watcher.Add(dir)
}

// Events returns the change events.
func (s *FSNotifySource) Events() <-chan ChangeEvent {
	return s.events
}

// Errors returns watcher failures.
func (s *FSNotifySource) Errors() <-chan error {
	return s.errors
}

// Close stops watching. The event channels are closed once pending events
// are delivered.
func (s *FSNotifySource) Close() error {
	close(s.done)
	return s.watcher.Close()
}

func (s *FSNotifySource) watchLoop() {
	defer close(s.events)

	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			change, relevant := convert(event)
			if !relevant {
				continue
			}
			select {
			case s.events <- change:
			case <-s.done:
				return
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			select {
			case s.errors <- err:
			default:
				// a fatal error is already pending
			}
		}
	}
}

// convert maps an fsnotify event. Permission changes are not relevant.
func convert(event fsnotify.Event) (ChangeEvent, bool) {
	var eventType EventType
	switch {
	case event.Has(fsnotify.Remove):
		eventType = EventTypeDeleted
	case event.Has(fsnotify.Rename):
		eventType = EventTypeRenamed
	case event.Has(fsnotify.Create):
		eventType = EventTypeCreated
	case event.Has(fsnotify.Write):
		eventType = EventTypeModified
	default:
		return ChangeEvent{}, false
	}
	return ChangeEvent{Type: eventType, Path: event.Name}, true
}
