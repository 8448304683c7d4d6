package message

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store holds at most one live message per target. Adding a message for a
// target replaces the previous one; All returns messages in insertion order
// of the live set. Store is owned by one editing session and is safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages []Message
	newID    func() string
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		newID: func() string { return uuid.NewString() },
	}
}

// Add inserts msg after removing any message with the same target. Text
// fields are sanitised and an id is assigned when missing. The stored copy is
// returned.
func (s *Store) Add(msg Message) Message {
	if s == nil {
		return msg
	}
	msg.Target = strings.TrimSpace(msg.Target)
	msg.Text = SanitizeText(msg.Text)
	msg.AdditionalText = SanitizeText(msg.AdditionalText)

	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" && s.newID != nil {
		msg.ID = s.newID()
	}
	s.removeLocked(msg.Target)
	s.messages = append(s.messages, msg)
	return msg
}

// RemoveForTarget drops the message addressed to target. It reports whether
// a message was removed.
func (s *Store) RemoveForTarget(target string) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(strings.TrimSpace(target))
}

// RemoveForPrefix drops every message whose target starts with prefix and
// returns the number removed. Used on scope teardown.
func (s *Store) RemoveForPrefix(prefix string) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.messages[:0]
	removed := 0
	for _, msg := range s.messages {
		if strings.HasPrefix(msg.Target, prefix) {
			removed++
			continue
		}
		kept = append(kept, msg)
	}
	s.messages = kept
	return removed
}

// Clear removes every message.
func (s *Store) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}

// Get returns the message addressed to target.
func (s *Store) Get(target string) (Message, bool) {
	if s == nil {
		return Message{}, false
	}
	target = strings.TrimSpace(target)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, msg := range s.messages {
		if msg.Target == target {
			return msg, true
		}
	}
	return Message{}, false
}

// All returns a copy of the live messages in insertion order.
func (s *Store) All() []Message {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.messages...)
}

// Len reports the number of live messages.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Summary aggregates the live messages under a single read lock so the
// severity, count and icon all describe the same message set.
func (s *Store) Summary(icons IconSet) Summary {
	if s == nil {
		return Summarize(nil, icons)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.messages, icons)
}

func (s *Store) removeLocked(target string) bool {
	for idx, msg := range s.messages {
		if msg.Target != target {
			continue
		}
		s.messages = append(s.messages[:idx:idx], s.messages[idx+1:]...)
		return true
	}
	return false
}
