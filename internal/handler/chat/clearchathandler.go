package chat

import (
	"net/http"

	"github.com/neboloop/think/internal/httputil"
	"github.com/neboloop/think/internal/logic/chat"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

// Clear a conversation
func ClearChatHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ClearChatRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := chat.NewClearChatLogic(r.Context(), svcCtx)
		resp, err := l.ClearChat(&req)
		if err != nil {
			writeError(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
