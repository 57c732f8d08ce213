package handler

import (
	"net/http"
	"time"

	"github.com/neboloop/think/internal/httputil"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/types"
)

func HealthCheckHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.OkJSON(w, &types.HealthResponse{
			Status:     "Server is running",
			Version:    svcCtx.Version,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Dictionary: svcCtx.Runner.Checker().Dictionary().Len(),
			Provider:   svcCtx.Runner.ProviderID(),
			Sessions:   svcCtx.Runner.Sessions().Len(),
		})
	}
}
