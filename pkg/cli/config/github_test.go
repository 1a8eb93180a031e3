package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fskerman/tagkeeper/pkg/cli/config"
)

func TestGitHub_OwnerRepo(t *testing.T) {
	cfg := &config.GitHub{Repository: "fskerman/ai-math-tcs"}
	gt.Value(t, cfg.Owner()).Equal("fskerman")
	gt.Value(t, cfg.Repo()).Equal("ai-math-tcs")
}

func TestGitHub_Configure_TokenAuth(t *testing.T) {
	cfg := &config.GitHub{
		Token:      "test-token",
		Repository: "fskerman/ai-math-tcs",
	}

	host, err := cfg.Configure()
	gt.NoError(t, err)
	gt.Value(t, host).NotNil()
}

func TestGitHub_Configure_BadRepository(t *testing.T) {
	cfg := &config.GitHub{
		Token:      "test-token",
		Repository: "no-slash",
	}

	_, err := cfg.Configure()
	gt.Error(t, err)
}

func TestGitHub_Configure_BadAppID(t *testing.T) {
	cfg := &config.GitHub{
		Token:      "test-token",
		Repository: "fskerman/ai-math-tcs",
		AppID:      "not-a-number",
	}

	_, err := cfg.Configure()
	gt.Error(t, err)
}
