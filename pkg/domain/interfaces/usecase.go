package interfaces

import (
	"context"

	"github.com/fskerman/tagkeeper/pkg/domain/model"
)

// ReleaseUseCase runs one tagging invocation against a repository checkout
type ReleaseUseCase interface {
	// Execute runs DetectChange, ExtractVersion, CreateTag and PublishRelease
	// in order, stopping at the first failure
	Execute(ctx context.Context, repo GitRepository) (*model.ReleaseResult, error)
}

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}
