package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/model"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
)

type notifier struct {
	webhookURL string
}

// NewNotifier creates a Notifier posting to a Slack incoming webhook
func NewNotifier(webhookURL string) (interfaces.Notifier, error) {
	if webhookURL == "" {
		return nil, goerr.New("Slack webhook URL is empty", goerr.T(types.ErrTagConfig))
	}
	return &notifier{webhookURL: webhookURL}, nil
}

// NotifyRelease posts a short message about the published release
func (n *notifier) NotifyRelease(ctx context.Context, result *model.ReleaseResult) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("Released %s: %s", result.TagName, result.ReleaseURL),
	}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack notification",
			goerr.T(types.ErrTagTransient), goerr.V("tag", result.TagName))
	}
	return nil
}
