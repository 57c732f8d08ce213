package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/neboloop/think/internal/agent/session"
)

// ErrNoProvider is returned when chat is requested but no generation
// backend is configured.
var ErrNoProvider = errors.New("no AI provider configured")

// StreamEventType defines the type of streaming event
type StreamEventType string

const (
	EventTypeText  StreamEventType = "text"
	EventTypeError StreamEventType = "error"
	EventTypeDone  StreamEventType = "done"
)

// StreamEvent represents a streaming response event
type StreamEvent struct {
	Type  StreamEventType `json:"type"`
	Text  string          `json:"text,omitempty"`
	Error error           `json:"-"`
}

// ChatRequest represents a request to the AI provider
type ChatRequest struct {
	Messages    []session.Turn `json:"messages"`
	System      string         `json:"system,omitempty"`
	Model       string         `json:"model,omitempty"` // overrides the provider default
	MaxTokens   int            `json:"max_tokens,omitempty"`
	Temperature float64        `json:"temperature,omitempty"`
	TopP        float64        `json:"top_p,omitempty"`
}

// Provider interface for AI providers
type Provider interface {
	// ID returns the provider identifier (e.g., "openrouter", "anthropic")
	ID() string

	// Stream sends a request and returns a channel of streaming events.
	// The channel is closed after a done or error event.
	Stream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error)
}

// ClassifyErrorReason buckets a provider failure for logs and client
// payloads. Returns "rate_limit", "auth", "billing", "timeout" or "other".
func ClassifyErrorReason(err error) string {
	if err == nil {
		return "other"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	msg := strings.ToLower(err.Error())
	patterns := []struct {
		reason string
		words  []string
	}{
		{"rate_limit", []string{"rate limit", "rate_limit", "too many requests", "429"}},
		{"auth", []string{"unauthorized", "authentication", "api key", "401", "403", "forbidden"}},
		{"billing", []string{"billing", "quota", "payment", "insufficient", "402"}},
		{"timeout", []string{"timeout", "timed out", "deadline exceeded"}},
	}
	for _, p := range patterns {
		for _, w := range p.words {
			if strings.Contains(msg, w) {
				return p.reason
			}
		}
	}
	return "other"
}
