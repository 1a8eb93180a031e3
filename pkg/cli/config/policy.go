package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/fskerman/tagkeeper/pkg/domain/model"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
)

// Policy holds the tagging policy configuration: an optional TOML file
// plus flag overrides for the common fields
type Policy struct {
	Path        string
	VersionFile string
	Branch      string
}

// Flags returns CLI flags for policy configuration
func (c *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML policy file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("TAGKEEPER_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "version-file",
			Usage:       "Repository-relative path of the toolchain pin file",
			Destination: &c.VersionFile,
			Sources:     cli.EnvVars("TAGKEEPER_VERSION_FILE"),
		},
		&cli.StringFlag{
			Name:        "branch",
			Usage:       "Branch whose pushes trigger tagging",
			Destination: &c.Branch,
			Sources:     cli.EnvVars("TAGKEEPER_BRANCH"),
		},
	}
}

// Configure loads the policy file (when given), applies defaults, then
// applies flag overrides
func (c *Policy) Configure() (*model.Policy, error) {
	policy := &model.Policy{}

	if c.Path != "" {
		data, err := os.ReadFile(c.Path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read policy file",
				goerr.T(types.ErrTagConfig), goerr.V("path", c.Path))
		}
		if err := toml.Unmarshal(data, policy); err != nil {
			return nil, goerr.Wrap(err, "failed to parse policy file",
				goerr.T(types.ErrTagConfig), goerr.V("path", c.Path))
		}
	}

	policy.Merge(model.DefaultPolicy())

	if c.VersionFile != "" {
		policy.VersionFile = c.VersionFile
	}
	if c.Branch != "" {
		policy.Branch = c.Branch
	}

	return policy, nil
}
