package chat

import (
	"context"

	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

type ClearChatLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Clear a conversation
func NewClearChatLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ClearChatLogic {
	return &ClearChatLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ClearChatLogic) ClearChat(req *types.ClearChatRequest) (resp *types.ClearChatResponse, err error) {
	key, err := session.ParseKey(req.SessionId)
	if err != nil {
		return nil, err
	}
	cleared := l.svcCtx.Runner.Clear(key)
	if cleared {
		l.Infof("Cleared conversation %s", key)
	}
	return &types.ClearChatResponse{
		Status:    "Conversation cleared",
		SessionId: key,
		Cleared:   cleared,
	}, nil
}
