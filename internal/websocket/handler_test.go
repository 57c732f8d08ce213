package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neboloop/think/internal/agent/ai"
	"github.com/neboloop/think/internal/config"
	"github.com/neboloop/think/internal/spell"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

type replyProvider struct {
	chunks []string
}

func (p *replyProvider) ID() string { return "fake" }

func (p *replyProvider) Stream(ctx context.Context, req *ai.ChatRequest) (<-chan ai.StreamEvent, error) {
	ch := make(chan ai.StreamEvent, len(p.chunks)+1)
	for _, c := range p.chunks {
		ch <- ai.StreamEvent{Type: ai.EventTypeText, Text: c}
	}
	ch <- ai.StreamEvent{Type: ai.EventTypeDone}
	close(ch)
	return ch, nil
}

func newTestServer(t *testing.T, provider ai.Provider) *websocket.Conn {
	t.Helper()
	dict, err := spell.NewDictionary([]string{"the", "quick", "fox", "hello"})
	require.NoError(t, err)

	c := config.DefaultConfig()
	svcCtx := &svc.ServiceContext{
		Config:  c,
		Version: "test",
		Runner:  svc.NewRunner(c, spell.NewChecker(dict, nil), provider),
	}

	srv := httptest.NewServer(Handler(svcCtx))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) types.WSEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev types.WSEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestChatStreamsSpellingTextAndDone(t *testing.T) {
	conn := newTestServer(t, &replyProvider{chunks: []string{"Hello", " there"}})

	require.NoError(t, conn.WriteJSON(types.WSInbound{Message: "the qick fox"}))

	ev := readEvent(t, conn)
	require.Equal(t, EventSpelling, ev.Type)
	require.NotNil(t, ev.Data)
	require.Len(t, ev.Data.SpellingErrors, 1)
	assert.Equal(t, "qick", ev.Data.SpellingErrors[0].Word)
	assert.Equal(t, "the quick fox", ev.Data.CorrectedSentence)
	assert.True(t, ev.Data.HasSpellingErrors)
	key := ev.SessionId
	require.NotEmpty(t, key)

	var text strings.Builder
	for {
		ev = readEvent(t, conn)
		if ev.Type != EventText {
			break
		}
		text.WriteString(ev.Text)
	}
	assert.Equal(t, "Hello there", text.String())

	require.Equal(t, EventDone, ev.Type)
	assert.Equal(t, key, ev.SessionId)
	assert.Equal(t, "Hello there", ev.Data.Message)
	assert.Equal(t, 1, ev.Data.ConversationCount)
	assert.Contains(t, ev.Data.Html, "Hello there")

	// same session continues the conversation
	require.NoError(t, conn.WriteJSON(types.WSInbound{Message: "hello", SessionId: key}))
	for ev = readEvent(t, conn); ev.Type != EventDone; ev = readEvent(t, conn) {
		require.NotEqual(t, EventError, ev.Type, ev.Error)
	}
	assert.Equal(t, 2, ev.Data.ConversationCount)

	// clearHistory resets the conversation and answers at once
	require.NoError(t, conn.WriteJSON(types.WSInbound{Message: "start over", SessionId: key, ClearHistory: true}))
	ev = readEvent(t, conn)
	require.Equal(t, EventDone, ev.Type)
	assert.Equal(t, key, ev.SessionId)
	assert.Equal(t, "Conversation cleared. Starting fresh!", ev.Data.Message)
	assert.Equal(t, 0, ev.Data.ConversationCount)
}

func TestChatRejectsBlankMessage(t *testing.T) {
	conn := newTestServer(t, &replyProvider{})

	require.NoError(t, conn.WriteJSON(types.WSInbound{Message: "   "}))
	ev := readEvent(t, conn)
	assert.Equal(t, EventError, ev.Type)
	assert.Equal(t, "Message is required", ev.Error)
}

func TestChatWithoutProvider(t *testing.T) {
	conn := newTestServer(t, nil)

	require.NoError(t, conn.WriteJSON(types.WSInbound{Message: "hello"}))
	ev := readEvent(t, conn)
	assert.Equal(t, EventError, ev.Type)
	assert.Contains(t, ev.Error, "no AI provider")
}

func TestChatInvalidFrame(t *testing.T) {
	conn := newTestServer(t, &replyProvider{})

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	ev := readEvent(t, conn)
	assert.Equal(t, EventError, ev.Type)
	assert.Contains(t, ev.Error, "invalid message")
}

func TestCheckOrigin(t *testing.T) {
	up := newUpgrader([]string{"https://think.example"})
	for origin, want := range map[string]bool{
		"":                      true,
		"http://localhost:3000": true,
		"https://think.example": true,
		"https://evil.example":  false,
	} {
		r := httptest.NewRequest("GET", "/api/chat/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		assert.Equal(t, want, up.CheckOrigin(r), origin)
	}
}
