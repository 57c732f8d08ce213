package cli

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/neboloop/think/internal/lifecycle"
	"github.com/neboloop/think/internal/logging"
	"github.com/neboloop/think/internal/server"
	"github.com/neboloop/think/internal/svc"
)

// ServeCmd starts the HTTP and websocket server
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Serve the spell-check and chat API, the websocket stream and the
static web client.

Examples:
  think serve
  PORT=8080 think serve --dictionary /usr/share/dict/words`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	c, err := loadConfig()
	if err != nil {
		return err
	}

	svcCtx, err := svc.NewServiceContext(c, Version)
	if err != nil {
		return err
	}
	logging.Infof("Think %s: %d dictionary words", Version, svcCtx.Runner.Checker().Dictionary().Len())

	trackExchanges()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, svcCtx)
	})
	g.Go(func() error {
		reportSessions(ctx, svcCtx, time.Minute)
		return nil
	})
	return g.Wait()
}

// reportSessions logs the live conversation count at debug level.
func reportSessions(ctx context.Context, svcCtx *svc.ServiceContext, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	last := -1
	for {
		select {
		case <-ticker.C:
			if n := svcCtx.Runner.Sessions().Len(); n != last {
				logging.Debugf("Active conversations: %d", n)
				last = n
			}
		case <-ctx.Done():
			return
		}
	}
}

// trackExchanges counts finished exchanges and logs the totals once the
// server begins shutting down.
func trackExchanges() {
	var completed, failed, sessions atomic.Int64
	lifecycle.OnSessionNew(func(d lifecycle.SessionEventData) {
		sessions.Add(1)
		logging.Debugf("New conversation %s", d.SessionKey)
	})
	lifecycle.OnExchangeComplete(func(d lifecycle.ExchangeEventData) {
		completed.Add(1)
		logging.Debugf("Exchange %s via %s finished in %dms", d.SessionKey, d.Provider, d.DurationMS)
	})
	lifecycle.OnExchangeError(func(d lifecycle.ExchangeEventData) {
		failed.Add(1)
	})
	lifecycle.OnShutdown(func() {
		logging.Infof("Served %d exchanges (%d failed) across %d conversations",
			completed.Load(), failed.Load(), sessions.Load())
	})
}
