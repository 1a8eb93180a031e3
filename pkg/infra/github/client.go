package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/model"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
	owner        string
	repo         string
}

// Option is a functional option for client configuration
type Option func(*client) error

// WithBaseURL points the client at a different API endpoint (tests, GHES)
func WithBaseURL(base string) Option {
	return func(c *client) error {
		u, err := url.Parse(base)
		if err != nil {
			return goerr.Wrap(err, "invalid API base URL", goerr.T(types.ErrTagConfig))
		}
		c.githubClient.BaseURL = u
		return nil
	}
}

// NewClient creates a ReleaseHost authenticated with a personal access or
// platform-supplied token
func NewClient(token, owner, repo string, opts ...Option) (interfaces.ReleaseHost, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is empty", goerr.T(types.ErrTagConfig))
	}

	c := &client{
		githubClient: github.NewClient(nil).WithAuthToken(token),
		owner:        owner,
		repo:         repo,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewAppClient creates a ReleaseHost authenticated as a GitHub App
// installation
func NewAppClient(appID, installationID int64, privateKey []byte, owner, repo string, opts ...Option) (interfaces.ReleaseHost, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.T(types.ErrTagConfig))
	}

	c := &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
		owner:        owner,
		repo:         repo,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CreateRelease publishes a release for an existing tag and returns its
// HTML URL
func (c *client) CreateRelease(ctx context.Context, release *model.Release) (string, error) {
	created, _, err := c.githubClient.Repositories.CreateRelease(ctx, c.owner, c.repo, &github.RepositoryRelease{
		TagName:    github.Ptr(release.TagName),
		Name:       github.Ptr(release.Name),
		Body:       github.Ptr(release.Body),
		Draft:      github.Ptr(release.Draft),
		Prerelease: github.Ptr(release.Prerelease),
	})
	if err != nil {
		return "", classifyAPIError(err, release.TagName)
	}

	return created.GetHTMLURL(), nil
}

// classifyAPIError maps GitHub API failures onto the error taxonomy
func classifyAPIError(err error, tag string) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		switch errResp.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return goerr.Wrap(err, "credential cannot create releases",
				goerr.T(types.ErrTagAuthorization), goerr.V("tag", tag))
		case http.StatusUnprocessableEntity:
			return goerr.Wrap(err, "release already exists for tag",
				goerr.T(types.ErrTagDuplicate), goerr.V("tag", tag))
		}
	}
	return goerr.Wrap(err, "failed to create release",
		goerr.T(types.ErrTagTransient), goerr.V("tag", tag))
}
