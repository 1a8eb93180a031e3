package usecase

import (
	"bytes"
	"context"
	"text/template"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/model"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
)

type releaseUseCase struct {
	host        interfaces.ReleaseHost
	notifier    interfaces.Notifier
	policy      *model.Policy
	tagMessage  *template.Template
	releaseBody *template.Template
}

// ReleaseOption is a functional option for the release use case
type ReleaseOption func(*releaseUseCase)

// WithNotifier adds a notifier called after a release is published.
// Notification failures are logged, never fatal.
func WithNotifier(n interfaces.Notifier) ReleaseOption {
	return func(uc *releaseUseCase) {
		uc.notifier = n
	}
}

// NewRelease creates a ReleaseUseCase for the given policy. Template
// parse failures are configuration errors.
func NewRelease(host interfaces.ReleaseHost, policy *model.Policy, opts ...ReleaseOption) (interfaces.ReleaseUseCase, error) {
	tagMessage, err := template.New("tag_message").Parse(policy.TagMessage)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse tag message template",
			goerr.T(types.ErrTagConfig))
	}

	releaseBody, err := template.New("release_body").Parse(policy.ReleaseBody)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse release body template",
			goerr.T(types.ErrTagConfig))
	}

	uc := &releaseUseCase{
		host:        host,
		policy:      policy,
		tagMessage:  tagMessage,
		releaseBody: releaseBody,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc, nil
}

// Execute runs one tagging invocation: detect whether the version file
// changed in the latest commit, extract the pinned version, create and
// push the annotated tag, then publish the release. Each step gates the
// next; the first failure aborts the invocation. A pushed tag is not
// rolled back when release publication fails.
func (uc *releaseUseCase) Execute(ctx context.Context, repo interfaces.GitRepository) (*model.ReleaseResult, error) {
	logger := ctxlog.From(ctx)
	result := &model.ReleaseResult{
		RunID: uuid.NewString(),
	}

	diff, err := repo.LatestDiff(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read latest commit diff")
	}

	logger.Info("Checked latest commit",
		"run_id", result.RunID,
		"changed_files", len(diff.Files),
		"version_file", uc.policy.VersionFile,
	)

	if !diff.Contains(uc.policy.VersionFile) {
		result.Skipped = true
		logger.Info("Version file unchanged, skipping release",
			"run_id", result.RunID,
			"version_file", uc.policy.VersionFile,
		)
		return result, nil
	}

	raw, err := repo.ReadHeadFile(ctx, uc.policy.VersionFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read version file",
			goerr.V("path", uc.policy.VersionFile))
	}

	pin, err := ParseToolchainPin(raw)
	if err != nil {
		return nil, err
	}

	logger.Info("Extracted toolchain version",
		"run_id", result.RunID,
		"identifier", pin.Identifier,
		"version", pin.Version,
	)

	tagMessage, err := uc.render(uc.tagMessage, pin.Version)
	if err != nil {
		return nil, err
	}
	releaseBody, err := uc.render(uc.releaseBody, pin.Version)
	if err != nil {
		return nil, err
	}

	if err := repo.CreateTag(ctx, pin.Version, tagMessage, uc.policy.Tagger); err != nil {
		return nil, goerr.Wrap(err, "failed to create tag",
			goerr.V("tag", pin.Version))
	}

	if err := repo.PushTag(ctx, pin.Version); err != nil {
		return nil, goerr.Wrap(err, "failed to push tag",
			goerr.V("tag", pin.Version))
	}

	logger.Info("Pushed annotated tag",
		"run_id", result.RunID,
		"tag", pin.Version,
	)

	releaseURL, err := uc.host.CreateRelease(ctx, &model.Release{
		TagName:    pin.Version,
		Name:       pin.Version,
		Body:       releaseBody,
		Draft:      false,
		Prerelease: false,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.V("tag", pin.Version))
	}

	result.Version = pin.Version
	result.TagName = pin.Version
	result.ReleaseURL = releaseURL

	logger.Info("Published release",
		"run_id", result.RunID,
		"tag", result.TagName,
		"url", result.ReleaseURL,
	)

	if uc.notifier != nil {
		if err := uc.notifier.NotifyRelease(ctx, result); err != nil {
			logger.Warn("Failed to send release notification",
				"run_id", result.RunID,
				"error", err,
			)
		}
	}

	return result, nil
}

// render executes a version template with the extracted version
func (uc *releaseUseCase) render(tmpl *template.Template, version string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Version string }{Version: version}); err != nil {
		return "", goerr.Wrap(err, "failed to render template",
			goerr.T(types.ErrTagConfig),
			goerr.V("template", tmpl.Name()))
	}
	return buf.String(), nil
}
