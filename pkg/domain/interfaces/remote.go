package interfaces

import (
	"context"

	"github.com/fskerman/tagkeeper/pkg/domain/model"
)

// GitRepository defines the version-control operations the tagging
// pipeline needs from a local checkout
type GitRepository interface {
	// LatestDiff returns the file paths changed between HEAD and its first parent
	LatestDiff(ctx context.Context) (*model.CommitDiff, error)

	// ReadHeadFile returns the content of path in the HEAD commit tree
	ReadHeadFile(ctx context.Context, path string) ([]byte, error)

	// CreateTag creates an annotated tag named name pointing at HEAD
	CreateTag(ctx context.Context, name, message string, tagger model.TagIdentity) error

	// PushTag pushes the tag refs/tags/<name> to the origin remote
	PushTag(ctx context.Context, name string) error
}

// GitRepositoryFactory produces a GitRepository from a remote URL. The
// returned cleanup function removes the working copy.
type GitRepositoryFactory interface {
	Clone(ctx context.Context, url, branch string) (GitRepository, func(), error)
}

// ReleaseHost defines the hosting-platform release API. It returns the
// HTML URL of the created release.
type ReleaseHost interface {
	CreateRelease(ctx context.Context, release *model.Release) (string, error)
}

// Notifier announces a published release to an external channel
type Notifier interface {
	NotifyRelease(ctx context.Context, result *model.ReleaseResult) error
}
