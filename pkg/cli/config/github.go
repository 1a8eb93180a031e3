package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
	githubinfra "github.com/fskerman/tagkeeper/pkg/infra/github"
)

// GitHub holds GitHub configuration. The token is always required (tag
// pushes go over HTTPS basic auth); App credentials optionally replace
// token auth for the release API.
type GitHub struct {
	Token          string
	Repository     string // owner/name
	AppID          string
	InstallationID string
	PrivateKeyPath string
	WebhookSecret  string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "Token with repository-write and release-creation scopes",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("TAGKEEPER_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-repository",
			Usage:       "Target repository as owner/name",
			Required:    true,
			Destination: &c.Repository,
			Sources:     cli.EnvVars("TAGKEEPER_GITHUB_REPOSITORY", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (optional, App auth for the release API)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("TAGKEEPER_GITHUB_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("TAGKEEPER_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "Path to the GitHub App private key",
			Destination: &c.PrivateKeyPath,
			Sources:     cli.EnvVars("TAGKEEPER_GITHUB_PRIVATE_KEY"),
		},
	}
}

// WebhookFlags returns the flags only the webhook server needs
func (c *GitHub) WebhookFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("TAGKEEPER_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

// Owner returns the owner part of the repository
func (c *GitHub) Owner() string {
	owner, _, _ := strings.Cut(c.Repository, "/")
	return owner
}

// Repo returns the name part of the repository
func (c *GitHub) Repo() string {
	_, repo, _ := strings.Cut(c.Repository, "/")
	return repo
}

// Configure builds the release host client
func (c *GitHub) Configure() (interfaces.ReleaseHost, error) {
	if !strings.Contains(c.Repository, "/") {
		return nil, goerr.New("repository must be owner/name",
			goerr.T(types.ErrTagConfig), goerr.V("repository", c.Repository))
	}

	if c.AppID != "" {
		appID, err := strconv.ParseInt(c.AppID, 10, 64)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub App ID",
				goerr.T(types.ErrTagConfig), goerr.V("app_id", c.AppID))
		}
		installationID, err := strconv.ParseInt(c.InstallationID, 10, 64)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub installation ID",
				goerr.T(types.ErrTagConfig), goerr.V("installation_id", c.InstallationID))
		}
		privateKey, err := os.ReadFile(c.PrivateKeyPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read GitHub App private key",
				goerr.T(types.ErrTagConfig), goerr.V("path", c.PrivateKeyPath))
		}
		return githubinfra.NewAppClient(appID, installationID, privateKey, c.Owner(), c.Repo())
	}

	return githubinfra.NewClient(c.Token, c.Owner(), c.Repo())
}
