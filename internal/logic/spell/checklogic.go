package spell

import (
	"context"

	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

type CheckLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Spell-check a piece of text
func NewCheckLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CheckLogic {
	return &CheckLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CheckLogic) Check(req *types.SpellCheckRequest) (resp *types.SpellCheckResponse, err error) {
	errs := l.svcCtx.Runner.Checker().Check(req.Text)
	l.Debugf("Checked %d bytes: %d misspellings", len(req.Text), len(errs))
	return &types.SpellCheckResponse{Errors: errs}, nil
}
