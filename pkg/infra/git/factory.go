package git

import (
	"context"
	"errors"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
)

// Factory clones pushed repositories into temporary working copies
type Factory struct {
	auth  transport.AuthMethod
	depth int
}

// FactoryOption is a functional option for Factory configuration
type FactoryOption func(*Factory)

// WithCloneToken sets HTTPS basic auth for clones and later pushes
func WithCloneToken(username, token string) FactoryOption {
	return func(f *Factory) {
		if token != "" {
			if username == "" {
				username = "tagkeeper"
			}
			f.auth = &githttp.BasicAuth{Username: username, Password: token}
		}
	}
}

// WithCloneDepth overrides the clone depth. The pipeline needs the two
// most recent commits, so the default is 2.
func WithCloneDepth(depth int) FactoryOption {
	return func(f *Factory) {
		f.depth = depth
	}
}

// NewFactory creates a GitRepositoryFactory backed by go-git
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{depth: 2}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Clone checks out a single branch of url into a temporary directory.
// The cleanup function removes the directory.
func (f *Factory) Clone(ctx context.Context, url, branch string) (interfaces.GitRepository, func(), error) {
	dir, err := os.MkdirTemp("", "tagkeeper-clone-*")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create temporary clone directory")
	}
	cleanup := func() {
		_ = os.RemoveAll(dir)
	}

	repo, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:           url,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         f.depth,
		Tags:          gogit.NoTags,
		Auth:          f.auth,
	})
	if err != nil {
		cleanup()
		tag := types.ErrTagTransient
		if errors.Is(err, transport.ErrAuthenticationRequired) || errors.Is(err, transport.ErrAuthorizationFailed) {
			tag = types.ErrTagAuthorization
		}
		return nil, nil, goerr.Wrap(err, "failed to clone repository",
			goerr.T(tag), goerr.V("url", url), goerr.V("branch", branch))
	}

	r := newRepository(repo)
	r.auth = f.auth
	return r, cleanup, nil
}

var _ interfaces.GitRepositoryFactory = (*Factory)(nil)
