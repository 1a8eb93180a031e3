package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fskerman/tagkeeper/pkg/cli/config"
	controller "github.com/fskerman/tagkeeper/pkg/controller/http"
	gitinfra "github.com/fskerman/tagkeeper/pkg/infra/git"
	"github.com/fskerman/tagkeeper/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		policyCfg config.Policy
		slackCfg  config.Slack
		sentryCfg config.Sentry
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, githubCfg.WebhookFlags()...)
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the webhook server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			sentryEnabled, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			if sentryEnabled {
				defer sentry.Flush(2 * time.Second)
			}

			policy, err := policyCfg.Configure()
			if err != nil {
				return err
			}

			host, err := githubCfg.Configure()
			if err != nil {
				return err
			}

			var opts []usecase.ReleaseOption
			notifier, err := slackCfg.Configure()
			if err != nil {
				return err
			}
			if notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}

			releaseUC, err := usecase.NewRelease(host, policy, opts...)
			if err != nil {
				return err
			}

			factory := gitinfra.NewFactory(
				gitinfra.WithCloneToken("x-access-token", githubCfg.Token),
			)
			webhookUC := usecase.NewWebhook(factory, releaseUC, policy.Branch)

			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			logger.Info("Starting tagkeeper server",
				slog.String("addr", serverCfg.Addr),
				slog.String("branch", policy.Branch),
				slog.String("version_file", policy.VersionFile),
				slog.Bool("sentry", sentryEnabled),
			)

			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
