package config

import (
	"github.com/urfave/cli/v3"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	slackinfra "github.com/fskerman/tagkeeper/pkg/infra/slack"
)

// Slack holds the optional Slack notification configuration
type Slack struct {
	WebhookURL string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for release notifications",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("TAGKEEPER_SLACK_WEBHOOK_URL"),
		},
	}
}

// Configure returns a notifier, or nil when notifications are disabled
func (c *Slack) Configure() (interfaces.Notifier, error) {
	if c.WebhookURL == "" {
		return nil, nil
	}
	return slackinfra.NewNotifier(c.WebhookURL)
}
