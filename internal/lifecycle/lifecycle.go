// Package lifecycle provides event hooks for server startup, shutdown and
// chat exchanges.
package lifecycle

import (
	"sync"

	"github.com/neboloop/think/internal/logging"
)

// Event types for lifecycle hooks
type Event string

const (
	// Server lifecycle events
	EventServerStarted    Event = "server_started"
	EventShutdownStarted  Event = "shutdown_started"
	EventShutdownComplete Event = "shutdown_complete"

	// Session lifecycle events
	EventSessionNew   Event = "session_new"
	EventSessionReset Event = "session_reset"

	// Exchange events
	EventExchangeStart    Event = "exchange_start"
	EventExchangeComplete Event = "exchange_complete"
	EventExchangeError    Event = "exchange_error"
)

// Handler is a function that handles a lifecycle event
type Handler func(event Event, data any)

// Manager manages lifecycle event subscriptions and dispatching
type Manager struct {
	mu       sync.RWMutex
	handlers map[Event][]Handler
}

// NewManager returns an empty manager. Most code uses the package-level
// functions, which share one global manager.
func NewManager() *Manager {
	return &Manager{handlers: make(map[Event][]Handler)}
}

var global = NewManager()

// On registers a handler for a lifecycle event
func On(event Event, handler Handler) {
	global.On(event, handler)
}

// Emit dispatches an event to all registered handlers
func Emit(event Event, data any) {
	global.Emit(event, data)
}

// Reset drops every handler registered on the global manager.
func Reset() {
	global.Reset()
}

// On registers a handler for a lifecycle event
func (m *Manager) On(event Event, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = append(m.handlers[event], handler)
}

// Emit dispatches an event to all registered handlers
func (m *Manager) Emit(event Event, data any) {
	m.mu.RLock()
	handlers := m.handlers[event]
	m.mu.RUnlock()

	logging.Debugf("[lifecycle] Emitting event: %s", event)
	for _, h := range handlers {
		// Run handlers synchronously (they can spawn goroutines if needed)
		h(event, data)
	}
}

// Reset drops every handler.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = make(map[Event][]Handler)
}

// OnServerStarted registers a handler that receives the listen address
func OnServerStarted(handler func(addr string)) {
	On(EventServerStarted, func(e Event, data any) {
		addr, _ := data.(string)
		handler(addr)
	})
}

// OnShutdown is a convenience function to register a shutdown handler
func OnShutdown(handler func()) {
	On(EventShutdownStarted, func(e Event, data any) {
		handler()
	})
}

// SessionEventData contains data for session lifecycle events
type SessionEventData struct {
	SessionKey string
}

// ExchangeEventData contains data for exchange events
type ExchangeEventData struct {
	SessionKey     string
	Provider       string
	SpellingErrors int
	DurationMS     int64
	Error          error
}

// OnSessionNew registers a handler for new session events
func OnSessionNew(handler func(data SessionEventData)) {
	On(EventSessionNew, func(e Event, data any) {
		if d, ok := data.(SessionEventData); ok {
			handler(d)
		}
	})
}

// OnSessionReset registers a handler for cleared sessions
func OnSessionReset(handler func(data SessionEventData)) {
	On(EventSessionReset, func(e Event, data any) {
		if d, ok := data.(SessionEventData); ok {
			handler(d)
		}
	})
}

// OnExchangeComplete registers a handler for successful exchanges
func OnExchangeComplete(handler func(data ExchangeEventData)) {
	On(EventExchangeComplete, func(e Event, data any) {
		if d, ok := data.(ExchangeEventData); ok {
			handler(d)
		}
	})
}

// OnExchangeError registers a handler for failed exchanges
func OnExchangeError(handler func(data ExchangeEventData)) {
	On(EventExchangeError, func(e Event, data any) {
		if d, ok := data.(ExchangeEventData); ok {
			handler(d)
		}
	})
}
