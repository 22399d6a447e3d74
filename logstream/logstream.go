// Package logstream is the operator-facing structured log stream: every
// significant bot step is recorded as an entry and fanned out to
// subscribers, in addition to the regular process log.
package logstream

import (
	"log"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
}

// maxEntries bounds the retained history; older entries are dropped.
const maxEntries = 100

type Stream struct {
	mu      sync.Mutex
	entries []Entry
	subs    map[int]chan Entry
	nextSub int
}

func New() *Stream {
	return &Stream{
		subs: make(map[int]chan Entry),
	}
}

func (s *Stream) Log(level Level, message string, data any) {
	entry := Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Data:      data,
	}

	if data != nil {
		log.Printf("[%s] %s %v", strings.ToUpper(string(level)), message, data)
	} else {
		log.Printf("[%s] %s", strings.ToUpper(string(level)), message)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[len(s.entries)-maxEntries:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- entry:
		default:
			// Slow subscriber, drop rather than block event handling.
		}
	}
}

func (s *Stream) Info(message string, data any)    { s.Log(LevelInfo, message, data) }
func (s *Stream) Warn(message string, data any)    { s.Log(LevelWarn, message, data) }
func (s *Stream) Error(message string, data any)   { s.Log(LevelError, message, data) }
func (s *Stream) Success(message string, data any) { s.Log(LevelSuccess, message, data) }

// Entries returns a copy of the retained history, oldest first.
func (s *Stream) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Stream) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Subscribe returns a channel receiving new entries and a cancel func.
func (s *Stream) Subscribe() (<-chan Entry, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Entry, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(existing)
		}
	}
	return ch, cancel
}
