package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/neboloop/think/internal/handler"
	"github.com/neboloop/think/internal/handler/chat"
	"github.com/neboloop/think/internal/handler/spell"
	"github.com/neboloop/think/internal/lifecycle"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/middleware"
	"github.com/neboloop/think/internal/svc"
	"github.com/neboloop/think/internal/websocket"
)

// ServerOptions holds optional settings for the server
type ServerOptions struct {
	Quiet bool // Suppress access logs and startup messages
}

// Run serves svcCtx on the configured address until ctx is cancelled,
// then shuts down gracefully.
func Run(ctx context.Context, svcCtx *svc.ServiceContext, opts ...ServerOptions) error {
	var o ServerOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	c := svcCtx.Config.Server
	addr := net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Requests: c.RateLimitRequests,
		Interval: time.Duration(c.RateLimitInterval) * time.Second,
		Burst:    c.RateLimitBurst,
	})
	go sweepLimiter(ctx, limiter)

	// ReadTimeout/WriteTimeout are left unset: they would cut off
	// websocket connections and long streamed replies.
	httpServer := &http.Server{
		Handler:           NewRouter(svcCtx, limiter, o),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if !o.Quiet {
		logging.Infof("Server ready at http://%s", displayAddr(ln.Addr()))
	}
	lifecycle.Emit(lifecycle.EventServerStarted, ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if !o.Quiet {
		logging.Info("Shutting down server gracefully...")
	}
	lifecycle.Emit(lifecycle.EventShutdownStarted, nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = httpServer.Shutdown(shutdownCtx)
	lifecycle.Emit(lifecycle.EventShutdownComplete, nil)
	return err
}

// NewRouter builds the full route tree. limiter may be nil.
func NewRouter(svcCtx *svc.ServiceContext, limiter *middleware.RateLimiter, o ServerOptions) http.Handler {
	c := svcCtx.Config.Server

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if !o.Quiet {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(c.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders())
		if limiter != nil {
			r.Use(limiter.Middleware())
		}

		r.Get("/health", handler.HealthCheckHandler(svcCtx))

		// websocket upgrades carry no body to cap
		r.Get("/chat/ws", websocket.Handler(svcCtx))

		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(c.MaxRequestBodySize))
			registerRoutes(r, svcCtx)
		})
	})

	if dir := c.StaticDir; dir != "" {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(dir)))
		} else if !o.Quiet {
			logging.Warnf("Static directory %q not found, serving API only", dir)
		}
	}

	return r
}

func registerRoutes(r chi.Router, svcCtx *svc.ServiceContext) {
	// Spell routes
	r.Post("/spell/check", spell.CheckHandler(svcCtx))
	r.Post("/spell/correct", spell.CorrectHandler(svcCtx))

	// Chat routes
	r.Post("/chat", chat.SendMessageHandler(svcCtx))
	r.Get("/chat/{sessionId}/history", chat.GetHistoryHandler(svcCtx))
	r.Delete("/chat/{sessionId}", chat.ClearChatHandler(svcCtx))
	r.Post("/chat/{sessionId}/accept", chat.AcceptCorrectionHandler(svcCtx))

	// Body-addressed aliases used by older clients
	r.Post("/clear-history", chat.ClearChatHandler(svcCtx))
	r.Post("/accept-suggestion", chat.AcceptCorrectionHandler(svcCtx))
}

// sweepLimiter drops idle rate-limit buckets until ctx ends.
func sweepLimiter(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := limiter.Cleanup(); n > 0 {
				logging.Debugf("Rate limiter: dropped %d idle clients", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

func displayAddr(a net.Addr) string {
	tcp, ok := a.(*net.TCPAddr)
	if !ok || tcp.IP.IsUnspecified() {
		if ok {
			return fmt.Sprintf("localhost:%d", tcp.Port)
		}
		return a.String()
	}
	return tcp.String()
}
