package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lofting/spotauth/internal/auth"
	"github.com/lofting/spotauth/internal/server"
	"github.com/lofting/spotauth/internal/shared"
	"github.com/lofting/spotauth/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Serve runs the loopback listener until interrupted, emitting each flow
// outcome to stdout as a JSON event for the host widget.
//
// This is the companion mode the widget spawns at startup: the listener binds
// once, and login attempts or refresh calls arrive over HTTP for as long as
// the process lives.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	notifier := auth.NewChannelNotifier(4, r.logger)
	manager := r.newManager(config, notifier)

	router := server.NewBasicRouter()
	router.Use(
		server.RequestLogger(r.logger),
		server.RateLimit(rate.NewLimiter(rate.Every(time.Second), 5)),
	)
	router.Handler(server.NewCallbackHandler(manager, r.logger))

	httpServer := &http.Server{
		Addr:    config.Server.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting callback listener at %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	if cmd.Bool("login") {
		time.Sleep(100 * time.Millisecond)

		authURL, err := manager.StartLogin(auth.FromClientConfig(config.Client))
		if err != nil {
			if !errors.Is(err, shared.ErrBrowserLaunch) {
				return err
			}
			r.logger.Warn("browser launch failed", "error", err)
			r.writePlainln(ui.Warn("⚠ Could not open browser automatically."))
			r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
		}
	}

	for {
		select {
		case result := <-notifier.Results():
			if err := r.writeJSON(result, false); err != nil {
				r.logger.Warn("failed to emit flow result", "error", err)
			}
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				r.logger.Warn("error shutting down server", "error", err)
			}
			return nil
		}
	}
}
