package cli

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fskerman/tagkeeper/pkg/cli/config"
	"github.com/fskerman/tagkeeper/pkg/usecase"
)

func cmdRun() *cli.Command {
	var (
		gitCfg    config.Git
		githubCfg config.GitHub
		policyCfg config.Policy
		slackCfg  config.Slack
	)

	flags := append(gitCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run one tagging invocation against a local checkout",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			policy, err := policyCfg.Configure()
			if err != nil {
				return err
			}

			host, err := githubCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := gitCfg.Configure(githubCfg.Token)
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

			logger.Info("Starting tagging invocation",
				slog.String("repo_dir", gitCfg.RepoDir),
				slog.String("repository", githubCfg.Repository),
				slog.String("version_file", policy.VersionFile),
			)

			result, err := releaseUC.Execute(ctx, repo)
			if err != nil {
				return goerr.Wrap(err, "tagging invocation failed")
			}

			if result.Skipped {
				color.New(color.FgYellow).Printf("%s unchanged; nothing to release\n", policy.VersionFile)
				return nil
			}

			color.New(color.FgGreen).Printf("Released %s: %s\n", result.TagName, result.ReleaseURL)
			return nil
		},
	}
}
