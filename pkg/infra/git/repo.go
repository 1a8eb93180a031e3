package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/model"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
)

// Repository implements interfaces.GitRepository on top of go-git
type Repository struct {
	repo   *gogit.Repository
	auth   transport.AuthMethod
	remote string
}

// Option is a functional option for Repository configuration
type Option func(*Repository)

// WithToken sets HTTPS basic auth for remote operations. GitHub accepts
// any non-empty username with a token.
func WithToken(username, token string) Option {
	return func(r *Repository) {
		if token != "" {
			if username == "" {
				username = "tagkeeper"
			}
			r.auth = &githttp.BasicAuth{Username: username, Password: token}
		}
	}
}

// WithRemote overrides the remote name used for pushes (default "origin")
func WithRemote(name string) Option {
	return func(r *Repository) {
		r.remote = name
	}
}

// Open opens an existing checkout at path
func Open(path string, opts ...Option) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open git repository",
			goerr.T(types.ErrTagConfig), goerr.V("path", path))
	}

	return newRepository(repo, opts...), nil
}

func newRepository(repo *gogit.Repository, opts ...Option) *Repository {
	r := &Repository{
		repo:   repo,
		remote: gogit.DefaultRemoteName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LatestDiff returns the file paths changed between HEAD and its first
// parent. A parentless HEAD reports every file of the commit tree.
func (r *Repository) LatestDiff(ctx context.Context) (*model.CommitDiff, error) {
	commit, err := r.headCommit()
	if err != nil {
		return nil, err
	}

	headTree, err := commit.Tree()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read HEAD tree")
	}

	if commit.NumParents() == 0 {
		var files []string
		if err := headTree.Files().ForEach(func(f *object.File) error {
			files = append(files, f.Name)
			return nil
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to walk initial commit tree")
		}
		return &model.CommitDiff{Files: files}, nil
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve parent commit")
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read parent tree")
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, headTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to diff commit trees")
	}

	seen := map[string]bool{}
	var files []string
	for _, change := range changes {
		for _, name := range []string{change.From.Name, change.To.Name} {
			if name != "" && !seen[name] {
				seen[name] = true
				files = append(files, name)
			}
		}
	}

	return &model.CommitDiff{Files: files}, nil
}

// ReadHeadFile returns the content of path in the HEAD commit tree
func (r *Repository) ReadHeadFile(ctx context.Context, path string) ([]byte, error) {
	commit, err := r.headCommit()
	if err != nil {
		return nil, err
	}

	file, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, goerr.Wrap(err, "version file not found in HEAD",
				goerr.T(types.ErrTagConfig), goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read file from HEAD",
			goerr.V("path", path))
	}

	content, err := file.Contents()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file content",
			goerr.V("path", path))
	}
	return []byte(content), nil
}

// CreateTag creates an annotated tag pointing at HEAD
func (r *Repository) CreateTag(ctx context.Context, name, message string, tagger model.TagIdentity) error {
	head, err := r.repo.Head()
	if err != nil {
		return goerr.Wrap(err, "failed to resolve HEAD")
	}

	_, err = r.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  tagger.Name,
			Email: tagger.Email,
			When:  time.Now(),
		},
		Message: message,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrTagExists) {
			return goerr.Wrap(err, "tag already exists",
				goerr.T(types.ErrTagDuplicate), goerr.V("tag", name))
		}
		return goerr.Wrap(err, "failed to create annotated tag",
			goerr.V("tag", name))
	}
	return nil
}

// PushTag pushes refs/tags/<name> to the configured remote. A remote that
// already carries the tag is a duplicate-tag error; the collision is the
// at-most-once guard against double releases.
func (r *Repository) PushTag(ctx context.Context, name string) error {
	refSpec := gitconfig.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", name, name))

	err := r.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: r.remote,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
		Auth:       r.auth,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gogit.NoErrAlreadyUpToDate):
		// The local tag was created in this invocation, so an up-to-date
		// remote means the tag name was already taken.
		return goerr.New("tag already exists on remote",
			goerr.T(types.ErrTagDuplicate), goerr.V("tag", name))
	case strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "non-fast-forward"):
		return goerr.Wrap(err, "tag already exists on remote",
			goerr.T(types.ErrTagDuplicate), goerr.V("tag", name))
	case errors.Is(err, transport.ErrAuthenticationRequired) || errors.Is(err, transport.ErrAuthorizationFailed):
		return goerr.Wrap(err, "credential cannot push tags",
			goerr.T(types.ErrTagAuthorization), goerr.V("tag", name))
	default:
		return goerr.Wrap(err, "failed to push tag",
			goerr.T(types.ErrTagTransient), goerr.V("tag", name))
	}
}

func (r *Repository) headCommit() (*object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve HEAD")
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read HEAD commit")
	}
	return commit, nil
}

var _ interfaces.GitRepository = (*Repository)(nil)
