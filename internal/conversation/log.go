// Package conversation holds the in-memory, per-session log of prior turns
// used to ground completion prompts. It is process-local and not persisted.
package conversation

import (
	"sync"

	"github.com/google/uuid"
)

// Speaker identifies who produced a log entry.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Entry is one (speaker, message) pair in insertion order.
type Entry struct {
	Speaker Speaker `json:"speaker"`
	Message string  `json:"message"`
}

// Log is an ordered, resettable conversation log. Entries are never removed
// individually; only a full Reset is supported. Sessions are single-writer,
// but the mutex keeps Render safe against a concurrent health probe or test.
type Log struct {
	mu        sync.Mutex
	sessionID string
	entries   []Entry
	firstTurn bool
}

// NewLog returns an empty log marked as a fresh session.
func NewLog() *Log {
	l := &Log{}
	l.Reset()
	return l
}

// Reset clears the log, assigns a new session ID, and marks the session as
// being on its first turn.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessionID = uuid.NewString()
	l.entries = nil
	l.firstTurn = true
}

// Append adds an entry and clears the first-turn flag.
func (l *Log) Append(speaker Speaker, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Speaker: speaker, Message: message})
	l.firstTurn = false
}

// Render returns the entries in insertion order. The returned slice is a
// copy; callers may range over it repeatedly without observing later appends.
func (l *Log) Render() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// FirstTurn reports whether anything has been said since the last Reset.
func (l *Log) FirstTurn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.firstTurn
}

// SessionID returns the identifier of the current session.
func (l *Log) SessionID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sessionID
}
