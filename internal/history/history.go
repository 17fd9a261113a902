package history

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// Entry is one question/answer pair in a conversation.
type Entry struct {
	Question    string            `json:"question"`
	ParsedQuery model.ParsedQuery `json:"parsed_query"`
	Summary     string            `json:"summary"`
	TotalEvents int               `json:"total_events"`
	Timestamp   time.Time         `json:"timestamp"`
}

// maxEntriesPerSession bounds a single conversation.
const maxEntriesPerSession = 50

// Log keeps per-session conversation history. Sessions are evicted LRU when
// the session cap is reached; entries within a session are a bounded FIFO.
type Log struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, []Entry]
}

// NewLog creates a history log retaining at most maxSessions sessions.
func NewLog(maxSessions int) (*Log, error) {
	cache, err := lru.New[string, []Entry](maxSessions)
	if err != nil {
		return nil, err
	}
	return &Log{sessions: cache}, nil
}

// Append records an entry for a session.
func (l *Log) Append(sessionID string, entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, _ := l.sessions.Get(sessionID)
	entries = append(entries, entry)
	if len(entries) > maxEntriesPerSession {
		entries = entries[len(entries)-maxEntriesPerSession:]
	}
	l.sessions.Add(sessionID, entries)
}

// Get returns the conversation for a session, oldest first. Unknown sessions
// return an empty slice.
func (l *Log) Get(sessionID string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, ok := l.sessions.Get(sessionID)
	if !ok {
		return []Entry{}
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Clear drops a session's conversation.
func (l *Log) Clear(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions.Remove(sessionID)
}

// SessionCount returns the number of retained sessions.
func (l *Log) SessionCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sessions.Len()
}
