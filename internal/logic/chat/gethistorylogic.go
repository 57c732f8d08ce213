package chat

import (
	"context"
	"errors"
	"time"

	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

// ErrSessionNotFound is returned for history requests on unknown sessions.
var ErrSessionNotFound = errors.New("session not found")

type GetHistoryLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Get the stored turns of a conversation
func NewGetHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetHistoryLogic {
	return &GetHistoryLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetHistoryLogic) GetHistory(req *types.ChatHistoryRequest) (resp *types.ChatHistoryResponse, err error) {
	key, err := session.ParseKey(req.SessionId)
	if err != nil {
		return nil, err
	}
	conv, ok := l.svcCtx.Runner.Sessions().Get(key)
	if !ok {
		return nil, ErrSessionNotFound
	}

	turns := conv.Turns()
	if req.Limit > 0 && len(turns) > req.Limit {
		turns = turns[len(turns)-req.Limit:]
	}

	resp = &types.ChatHistoryResponse{SessionId: key, Turns: turns}
	if ts := conv.UpdatedAt(); !ts.IsZero() {
		resp.UpdatedAt = ts.UTC().Format(time.RFC3339)
	}
	return resp, nil
}
