package thread

import (
	"strings"
	"sync"

	"github.com/convertohq/converto/core"
)

// Role identifies the author of a history message.
type Role string

const (
	RoleUser      Role = "User"
	RoleAssistant Role = "Assistant"
)

// Message is one turn of a thread's conversation history.
type Message struct {
	Role Role
	Text string
}

// state is everything tracked for one thread. All three fields live and die
// together: created on Create, removed as a unit on Archive.
type state struct {
	lesson      core.Lesson
	history     []Message
	fullContent string
}

// Store holds per-thread conversation state, keyed by an opaque thread ID.
// It is in-memory only: a process restart loses all open threads, an
// explicit limitation of this design. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	threads map[string]*state
}

// NewStore creates an empty thread store.
func NewStore() *Store {
	return &Store{threads: make(map[string]*state)}
}

// Create registers a new thread pinned to a lesson. The full lesson content
// is retained for inclusion in every follow-up prompt. Creating an existing
// thread ID resets its state.
func (s *Store) Create(id string, lesson core.Lesson, fullContent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[id] = &state{
		lesson:      lesson,
		fullContent: fullContent,
	}
}

// Append adds a message to a thread's history. Unknown threads are ignored;
// the caller decides thread liveness via Active.
func (s *Store) Append(id string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.threads[id]; ok {
		st.history = append(st.history, msg)
	}
}

// History returns the last n messages of a thread, oldest first.
// Returns nil for unknown threads.
func (s *Store) History(id string, n int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.threads[id]
	if !ok {
		return nil
	}

	history := st.history
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}

	out := make([]Message, len(history))
	copy(out, history)
	return out
}

// PinnedLesson returns the lesson a thread was created for.
func (s *Store) PinnedLesson(id string) (core.Lesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.threads[id]
	if !ok {
		return core.Lesson{}, false
	}
	return st.lesson, true
}

// FullContent returns the full pinned lesson text for a thread.
func (s *Store) FullContent(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.threads[id]; ok {
		return st.fullContent
	}
	return ""
}

// Active reports whether a thread is currently tracked.
func (s *Store) Active(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.threads[id]
	return ok
}

// Archive removes all state for a thread in one step. Archival is terminal:
// the lesson binding, history and pinned content disappear together, and
// the ID is immediately free for reuse.
func (s *Store) Archive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.threads, id)
}

// RenderHistory formats messages as the "Previous conversation" prompt
// block. Returns an empty string for an empty history.
func RenderHistory(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Previous conversation:\n")
	for _, msg := range messages {
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
