package chat

import (
	"net/http"

	"github.com/neboloop/think/internal/httputil"
	"github.com/neboloop/think/internal/logic/chat"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

// Accept a spelling correction
func AcceptCorrectionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AcceptCorrectionRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := chat.NewAcceptCorrectionLogic(r.Context(), svcCtx)
		resp, err := l.AcceptCorrection(&req)
		if err != nil {
			writeError(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
