package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lofting/spotauth/internal/auth"
	"github.com/lofting/spotauth/internal/server"
	"github.com/lofting/spotauth/internal/shared"
	"github.com/lofting/spotauth/internal/ui"
	"github.com/urfave/cli/v3"
)

// Login performs the full OAuth2 authorization flow.
//
// Starts the loopback listener, opens the browser for user authorization, and
// waits for the exchanged token to arrive through the notifier.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	notifier := auth.NewChannelNotifier(1, r.logger)
	manager := r.newManager(config, notifier)

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(server.NewCallbackHandler(manager, r.logger))

	httpServer := &http.Server{
		Addr:    config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting callback listener at %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlainln(ui.Title("Spotify Authorization"))
	r.writePlain("→ Opening browser for Spotify authorization...\n")
	authURL, err := manager.StartLogin(auth.FromClientConfig(config.Client))
	if err != nil {
		if !errors.Is(err, shared.ErrBrowserLaunch) {
			return err
		}
		r.writePlainln(ui.Warn("⚠ Could not open browser automatically."))
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result auth.Result

	select {
	case result = <-notifier.Results():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Kind != "token" || result.Token == nil {
		r.writePlainln(ui.Err("✗ Authorization failed"))
		return fmt.Errorf("authorization failed: %s", result.Message)
	}

	r.writePlainln(ui.OK("✓ Authorization successful"))
	return r.writeJSON(result.Token, cmd.Bool("pretty"))
}

// Refresh exchanges a previously issued refresh token for a new access token.
//
// Does not require a login session.
func (r *Runner) Refresh(ctx context.Context, cmd *cli.Command) error {
	refreshToken := cmd.StringArg("token")
	if refreshToken == "" {
		return fmt.Errorf("%w: refresh token", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd.String("config"))
	manager := r.newManager(config, nil)

	token, err := manager.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	r.writePlainln(ui.OK("✓ Token refreshed"))
	return r.writeJSON(token, cmd.Bool("pretty"))
}

// Setup writes the example configuration file for first-time use.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlainln(ui.OK("✓ Config written to " + configPath))
	r.writePlainln(ui.Help("Edit the [client] block, then run `spotauth login`."))
	return nil
}
