// Package session keeps chat conversations in memory, keyed by an opaque
// session key. Nothing is persisted; conversations live until they are
// cleared or the process exits.
package session

import (
	"sort"
	"sync"
)

// DefaultCapacity is the number of turns a conversation retains before the
// oldest are evicted.
const DefaultCapacity = 50

// Store maps session keys to conversations. The map itself is guarded by
// a single RWMutex; each Conversation carries its own lock, so work on one
// key never waits on another.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	capacity      int
}

// NewStore creates an empty store whose conversations hold at most
// capacity turns. A non-positive capacity uses DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		conversations: make(map[string]*Conversation),
		capacity:      capacity,
	}
}

// GetOrCreate returns the conversation for key, creating an empty one on
// first reference.
func (s *Store) GetOrCreate(key string) *Conversation {
	conv, _ := s.LoadOrCreate(key)
	return conv
}

// LoadOrCreate is GetOrCreate that also reports whether this call created
// the conversation. Exactly one of any set of concurrent callers sees true.
func (s *Store) LoadOrCreate(key string) (conv *Conversation, created bool) {
	s.mu.RLock()
	conv, ok := s.conversations[key]
	s.mu.RUnlock()
	if ok {
		return conv, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.conversations[key]; ok {
		return conv, false
	}
	conv = newConversation(key, s.capacity)
	s.conversations[key] = conv
	return conv, true
}

// Acquire returns the live conversation for key with its exchange lock
// held, creating the conversation if needed. created reports whether any
// conversation was created along the way. A conversation cleared while
// the caller waited for the lock is skipped in favour of the new one.
func (s *Store) Acquire(key string) (conv *Conversation, unlock func(), created bool) {
	for {
		c, fresh := s.LoadOrCreate(key)
		created = created || fresh
		unlock = c.Serialize()
		if cur, ok := s.Get(key); ok && cur == c {
			return c, unlock, created
		}
		unlock()
	}
}

// Get returns the conversation for key without creating one.
func (s *Store) Get(key string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[key]
	return conv, ok
}

// Append adds turns to the conversation for key, creating it if needed.
func (s *Store) Append(key string, turns ...Turn) {
	s.GetOrCreate(key).Append(turns...)
}

// Clear drops the conversation for key. It reports whether one existed.
// Clear waits for an exchange in flight on the conversation to finish, so
// that exchange's turns are cleared with the rest. Callers still holding
// the Conversation see it emptied.
func (s *Store) Clear(key string) bool {
	conv, ok := s.Get(key)
	if !ok {
		return false
	}
	unlock := conv.Serialize()
	defer unlock()

	s.mu.Lock()
	cur, ok := s.conversations[key]
	if ok && cur == conv {
		delete(s.conversations, key)
	}
	s.mu.Unlock()

	if !ok || cur != conv {
		return false
	}
	conv.Reset()
	return true
}

// Keys returns the active session keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.conversations))
	for k := range s.conversations {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Len returns the number of active conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// Capacity returns the per-conversation turn limit.
func (s *Store) Capacity() int {
	return s.capacity
}
