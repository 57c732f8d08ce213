package chat

import (
	"net/http"

	"github.com/neboloop/think/internal/httputil"
	"github.com/neboloop/think/internal/logic/chat"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

// Send a chat message and return the full reply
func SendMessageHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := chat.NewSendMessageLogic(r.Context(), svcCtx)
		resp, err := l.SendMessage(&req)
		if err != nil {
			writeError(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
