package types

import (
	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/spell"
)

type AcceptCorrectionRequest struct {
	SessionId     string `json:"sessionId,omitempty" path:"sessionId"`
	OriginalText  string `json:"originalText"`
	CorrectedText string `json:"correctedText"`
	WrongWord     string `json:"wrongWord,omitempty"`
	CorrectWord   string `json:"correctWord,omitempty"`
}

type AcceptCorrectionResponse struct {
	Status        string `json:"status"`
	OriginalText  string `json:"originalText"`
	CorrectedText string `json:"correctedText"`
	Message       string `json:"message"`
	Applied       bool   `json:"applied"`
}

type ChatHistoryRequest struct {
	SessionId string `path:"sessionId"`
	Limit     int    `form:"limit"`
}

type ChatHistoryResponse struct {
	SessionId string         `json:"sessionId"`
	Turns     []session.Turn `json:"turns"`
	UpdatedAt string         `json:"updatedAt,omitempty"`
}

type ChatRequest struct {
	Message      string `json:"message"`
	SessionId    string `json:"sessionId,omitempty"`
	ClearHistory bool   `json:"clearHistory,omitempty"`
}

type ChatResponse struct {
	Message           string                `json:"message"`
	Html              string                `json:"html,omitempty"`
	SpellingErrors    []spell.SpellingError `json:"spellingErrors"`
	CorrectedSentence string                `json:"correctedSentence"`
	HasSpellingErrors bool                  `json:"hasSpellingErrors"`
	IsSpellCheckMode  bool                  `json:"isSpellCheckMode"`
	Thinking          string                `json:"thinking"`
	ConversationCount int                   `json:"conversationCount"`
	SessionId         string                `json:"sessionId"`
}

type ClearChatRequest struct {
	SessionId string `json:"sessionId,omitempty" path:"sessionId"`
}

type ClearChatResponse struct {
	Status    string `json:"status"`
	SessionId string `json:"sessionId"`
	Cleared   bool   `json:"cleared"`
}

type CorrectResponse struct {
	Corrected string                `json:"corrected"`
	Errors    []spell.SpellingError `json:"errors"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Timestamp  string `json:"timestamp"`
	Dictionary int    `json:"dictionaryWords"`
	Provider   string `json:"provider,omitempty"`
	Sessions   int    `json:"sessions"`
}

type SpellCheckRequest struct {
	Text string `json:"text"`
}

type SpellCheckResponse struct {
	Errors []spell.SpellingError `json:"errors"`
}

// WSInbound is a chat frame sent by a websocket client.
type WSInbound struct {
	Message      string `json:"message"`
	SessionId    string `json:"sessionId,omitempty"`
	ClearHistory bool   `json:"clearHistory,omitempty"`
}

// WSEvent is a frame sent to a websocket client. Type is one of
// spelling, text, done or error.
type WSEvent struct {
	Type      string        `json:"type"`
	SessionId string        `json:"sessionId,omitempty"`
	Text      string        `json:"text,omitempty"`
	Error     string        `json:"error,omitempty"`
	Data      *ChatResponse `json:"data,omitempty"`
}
