package spell

import (
	"net/http"

	"github.com/neboloop/think/internal/httputil"
	"github.com/neboloop/think/internal/logic/spell"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

// Spell-check text
func CheckHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SpellCheckRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := spell.NewCheckLogic(r.Context(), svcCtx)
		resp, err := l.Check(&req)
		if err != nil {
			httputil.Error(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
