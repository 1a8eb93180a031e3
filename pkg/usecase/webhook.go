package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/model"
)

type webhookUseCase struct {
	factory   interfaces.GitRepositoryFactory
	releaseUC interfaces.ReleaseUseCase
	branch    string
}

// NewWebhook creates a WebhookUseCase that runs the release pipeline for
// push events on the given branch
func NewWebhook(factory interfaces.GitRepositoryFactory, releaseUC interfaces.ReleaseUseCase, branch string) interfaces.WebhookUseCase {
	return &webhookUseCase{
		factory:   factory,
		releaseUC: releaseUC,
		branch:    branch,
	}
}

// ProcessEvent clones the pushed repository at the configured branch and
// runs the tagging pipeline against the fresh checkout. Events for other
// refs or event types are ignored.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"ref", event.Ref,
		"repository", event.Repository,
		"sender", event.Sender,
	)

	if !event.IsReleaseCandidate(uc.branch) {
		logger.Info("Ignoring event outside the release branch",
			"type", event.Type,
			"ref", event.Ref,
			"branch", uc.branch,
		)
		return nil
	}

	if event.CloneURL == "" {
		return goerr.New("push event has no clone URL",
			goerr.V("repository", event.Repository))
	}

	repo, cleanup, err := uc.factory.Clone(ctx, event.CloneURL, uc.branch)
	if err != nil {
		return goerr.Wrap(err, "failed to clone pushed repository",
			goerr.V("url", event.CloneURL))
	}
	defer cleanup()

	result, err := uc.releaseUC.Execute(ctx, repo)
	if err != nil {
		return goerr.Wrap(err, "tagging pipeline failed",
			goerr.V("repository", event.Repository))
	}

	if result.Skipped {
		logger.Info("Push did not touch the version file",
			"repository", event.Repository,
			"run_id", result.RunID,
		)
		return nil
	}

	logger.Info("Release published from push event",
		"repository", event.Repository,
		"tag", result.TagName,
		"url", result.ReleaseURL,
		"run_id", result.RunID,
	)
	return nil
}
