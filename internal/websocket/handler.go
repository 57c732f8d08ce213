package websocket

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/middleware"
	"github.com/neboloop/think/internal/svc"
)

func newUpgrader(allowed []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || middleware.IsLocalhostOrigin(origin) {
				return true
			}
			return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
		},
	}
}

// Handler upgrades /api/chat/ws connections. Each connection may run any
// number of exchanges, one at a time, across any session keys.
func Handler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	upgrader := newUpgrader(svcCtx.Config.Server.AllowedOrigins)
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Errorf("WebSocket upgrade error: %v", err)
			return
		}

		c := newClient(conn, svcCtx.Runner)
		logging.Debugf("Serving WebSocket client %s from %s", c.id, r.RemoteAddr)
		c.serve()
	}
}
