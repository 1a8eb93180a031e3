package config

import (
	"github.com/urfave/cli/v3"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	gitinfra "github.com/fskerman/tagkeeper/pkg/infra/git"
)

// Git holds configuration for the local checkout used by the run command
type Git struct {
	RepoDir string
	Remote  string
}

// Flags returns CLI flags for git configuration
func (c *Git) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo-dir",
			Usage:       "Path to the repository checkout",
			Value:       ".",
			Destination: &c.RepoDir,
			Sources:     cli.EnvVars("TAGKEEPER_REPO_DIR"),
		},
		&cli.StringFlag{
			Name:        "git-remote",
			Usage:       "Remote name tags are pushed to",
			Value:       "origin",
			Destination: &c.Remote,
			Sources:     cli.EnvVars("TAGKEEPER_GIT_REMOTE"),
		},
	}
}

// Configure opens the checkout with push credentials
func (c *Git) Configure(token string) (interfaces.GitRepository, error) {
	return gitinfra.Open(c.RepoDir,
		gitinfra.WithToken("x-access-token", token),
		gitinfra.WithRemote(c.Remote),
	)
}
