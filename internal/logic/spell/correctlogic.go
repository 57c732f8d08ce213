package spell

import (
	"context"

	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

type CorrectLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Replace each misspelling with its best suggestion
func NewCorrectLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CorrectLogic {
	return &CorrectLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CorrectLogic) Correct(req *types.SpellCheckRequest) (resp *types.CorrectResponse, err error) {
	corrected, errs := l.svcCtx.Runner.Checker().Correct(req.Text)
	return &types.CorrectResponse{
		Corrected: corrected,
		Errors:    errs,
	}, nil
}
