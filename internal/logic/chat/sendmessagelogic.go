package chat

import (
	"context"
	"strings"

	"github.com/neboloop/think/internal/agent/runner"
	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/markdown"
	"github.com/neboloop/think/internal/spell"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

type SendMessageLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Send a message and wait for the full reply
func NewSendMessageLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SendMessageLogic {
	return &SendMessageLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SendMessageLogic) SendMessage(req *types.ChatRequest) (resp *types.ChatResponse, err error) {
	runReq, cleared, err := PrepareRun(l.svcCtx.Runner, req.Message, req.SessionId, req.ClearHistory)
	if err != nil {
		return nil, err
	}
	if cleared != nil {
		l.Infof("Conversation %s cleared", cleared.SessionId)
		return cleared, nil
	}

	result, err := l.svcCtx.Runner.Chat(l.ctx, runReq)
	if err != nil {
		l.Errorf("Chat failed: %v", err)
		return nil, err
	}

	return BuildResponse(result.SessionKey, result.Reply, result.Analysis, result.ConversationCount), nil
}

// PrepareRun validates a chat message and its optional session key. An
// empty key is left empty so the runner issues a new one. With
// clearHistory the conversation is reset instead of running an exchange:
// the request is nil and the returned response answers the caller.
func PrepareRun(r *runner.Runner, message, sessionID string, clearHistory bool) (*runner.RunRequest, *types.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, nil, runner.ErrEmptyMessage
	}

	key := ""
	if strings.TrimSpace(sessionID) != "" {
		var err error
		if key, err = session.ParseKey(sessionID); err != nil {
			return nil, nil, err
		}
	}

	if clearHistory {
		if key == "" {
			key = session.NewKey()
		} else {
			r.Clear(key)
		}
		return nil, ClearedResponse(key), nil
	}
	return &runner.RunRequest{SessionKey: key, Message: message}, nil, nil
}

// ClearedResponse answers a chat request that only reset its conversation.
func ClearedResponse(key string) *types.ChatResponse {
	return &types.ChatResponse{
		Message:        "Conversation cleared. Starting fresh!",
		Html:           markdown.Render("Conversation cleared. Starting fresh!"),
		SpellingErrors: []spell.SpellingError{},
		Thinking:       "Conversation history cleared",
		SessionId:      key,
	}
}

// BuildResponse assembles the chat payload shared by the HTTP and
// websocket transports.
func BuildResponse(key, reply string, a runner.Analysis, count int) *types.ChatResponse {
	return &types.ChatResponse{
		Message:           reply,
		Html:              markdown.Render(reply),
		SpellingErrors:    a.Errors,
		CorrectedSentence: a.Corrected,
		HasSpellingErrors: len(a.Errors) > 0,
		IsSpellCheckMode:  a.SpellCheckMode,
		Thinking:          a.Thinking,
		ConversationCount: count,
		SessionId:         key,
	}
}
