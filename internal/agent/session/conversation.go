package session

import (
	"sync"
	"time"
)

// Roles a Turn may carry.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a fixed-capacity, ordered buffer of turns. Appending to
// a full buffer overwrites the oldest turn.
//
// All methods are safe for concurrent use. Serialize additionally lets a
// caller hold the conversation across a whole read-call-append exchange.
type Conversation struct {
	key string

	// exchange serializes multi-step callers; mu guards the buffer itself.
	exchange sync.Mutex
	mu       sync.RWMutex

	turns    []Turn
	capacity int
	// writePosition is the slot the next turn lands in (0 to capacity-1).
	writePosition int
	count         int
	updatedAt     time.Time
}

func newConversation(key string, capacity int) *Conversation {
	return &Conversation{
		key:       key,
		turns:     make([]Turn, capacity),
		capacity:  capacity,
		updatedAt: time.Now(),
	}
}

// Key returns the session key the conversation belongs to.
func (c *Conversation) Key() string {
	return c.key
}

// Append adds turns in order, evicting the oldest once the buffer is full.
func (c *Conversation) Append(turns ...Turn) {
	if len(turns) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range turns {
		c.turns[c.writePosition] = t
		c.writePosition = (c.writePosition + 1) % c.capacity
		if c.count < c.capacity {
			c.count++
		}
	}
	c.updatedAt = time.Now()
}

// Turns returns a chronological copy of the retained turns.
func (c *Conversation) Turns() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Turn, c.count)
	start := (c.writePosition - c.count + c.capacity) % c.capacity
	for i := range out {
		out[i] = c.turns[(start+i)%c.capacity]
	}
	return out
}

// ReplaceLast rewrites the most recent turn whose role and content match,
// reporting whether one was found.
func (c *Conversation) ReplaceLast(role, content, replacement string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := (c.writePosition - c.count + c.capacity) % c.capacity
	for i := c.count - 1; i >= 0; i-- {
		t := &c.turns[(start+i)%c.capacity]
		if t.Role == role && t.Content == content {
			t.Content = replacement
			c.updatedAt = time.Now()
			return true
		}
	}
	return false
}

// Len returns the number of retained turns.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Cap returns the maximum number of retained turns.
func (c *Conversation) Cap() int {
	return c.capacity
}

// Reset discards every turn.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.turns)
	c.writePosition = 0
	c.count = 0
	c.updatedAt = time.Now()
}

// UpdatedAt returns when the conversation last changed.
func (c *Conversation) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

// Serialize blocks until no other exchange holds the conversation and
// returns the function that releases it.
//
//	unlock := conv.Serialize()
//	defer unlock()
func (c *Conversation) Serialize() (unlock func()) {
	c.exchange.Lock()
	return c.exchange.Unlock
}
