package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

// ErrMissingFields is returned when an accepted correction lacks the
// original or corrected text.
var ErrMissingFields = errors.New("missing required fields")

type AcceptCorrectionLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Replace a stored user message with its accepted correction
func NewAcceptCorrectionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AcceptCorrectionLogic {
	return &AcceptCorrectionLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *AcceptCorrectionLogic) AcceptCorrection(req *types.AcceptCorrectionRequest) (resp *types.AcceptCorrectionResponse, err error) {
	key, err := session.ParseKey(req.SessionId)
	if err != nil {
		return nil, err
	}
	original := strings.TrimSpace(req.OriginalText)
	corrected := strings.TrimSpace(req.CorrectedText)
	if original == "" || corrected == "" {
		return nil, ErrMissingFields
	}

	applied := l.svcCtx.Runner.AcceptCorrection(key, original, corrected)
	if !applied {
		l.Debugf("No stored message in %s matched the accepted correction", key)
	}

	message := "Correction accepted"
	if w, c := strings.TrimSpace(req.WrongWord), strings.TrimSpace(req.CorrectWord); w != "" && c != "" {
		message = fmt.Sprintf("Corrected %q to %q", w, c)
	}
	return &types.AcceptCorrectionResponse{
		Status:        "Suggestion accepted",
		OriginalText:  original,
		CorrectedText: corrected,
		Message:       message,
		Applied:       applied,
	}, nil
}
