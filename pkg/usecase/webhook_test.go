package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/model"
	"github.com/fskerman/tagkeeper/pkg/usecase"
)

// MockRepositoryFactory is a mock implementation of GitRepositoryFactory
type MockRepositoryFactory struct {
	repo      *MockGitRepository
	cloneErr  error
	cloneURLs []string
	cleanedUp bool
}

func (m *MockRepositoryFactory) Clone(ctx context.Context, url, branch string) (interfaces.GitRepository, func(), error) {
	m.cloneURLs = append(m.cloneURLs, url)
	if m.cloneErr != nil {
		return nil, nil, m.cloneErr
	}
	return m.repo, func() { m.cleanedUp = true }, nil
}

// MockReleaseUseCase is a mock implementation of ReleaseUseCase
type MockReleaseUseCase struct {
	result   *model.ReleaseResult
	err      error
	executed int
}

func (m *MockReleaseUseCase) Execute(ctx context.Context, repo interfaces.GitRepository) (*model.ReleaseResult, error) {
	m.executed++
	return m.result, m.err
}

func pushEvent(ref string) *model.WebhookEvent {
	return &model.WebhookEvent{
		ID:         "delivery-1",
		Type:       model.EventTypePush,
		Ref:        ref,
		Repository: "fskerman/ai-math-tcs",
		CloneURL:   "https://github.com/fskerman/ai-math-tcs.git",
		Sender:     "fskerman",
		ReceivedAt: time.Now(),
	}
}

func TestWebhookUseCase_ProcessEvent_MainBranchPush(t *testing.T) {
	factory := &MockRepositoryFactory{repo: &MockGitRepository{}}
	releaseUC := &MockReleaseUseCase{
		result: &model.ReleaseResult{RunID: "run-1", TagName: "v4.10.0"},
	}
	uc := usecase.NewWebhook(factory, releaseUC, "main")

	err := uc.ProcessEvent(context.Background(), pushEvent("refs/heads/main"))
	gt.NoError(t, err)
	gt.Number(t, releaseUC.executed).Equal(1)
	gt.Value(t, factory.cloneURLs).Equal([]string{"https://github.com/fskerman/ai-math-tcs.git"})
	gt.Value(t, factory.cleanedUp).Equal(true)
}

func TestWebhookUseCase_ProcessEvent_OtherBranchIgnored(t *testing.T) {
	factory := &MockRepositoryFactory{repo: &MockGitRepository{}}
	releaseUC := &MockReleaseUseCase{result: &model.ReleaseResult{}}
	uc := usecase.NewWebhook(factory, releaseUC, "main")

	err := uc.ProcessEvent(context.Background(), pushEvent("refs/heads/feature/limits"))
	gt.NoError(t, err)
	gt.Number(t, releaseUC.executed).Equal(0)
	gt.Number(t, len(factory.cloneURLs)).Equal(0)
}

func TestWebhookUseCase_ProcessEvent_TagPushIgnored(t *testing.T) {
	factory := &MockRepositoryFactory{repo: &MockGitRepository{}}
	releaseUC := &MockReleaseUseCase{result: &model.ReleaseResult{}}
	uc := usecase.NewWebhook(factory, releaseUC, "main")

	err := uc.ProcessEvent(context.Background(), pushEvent("refs/tags/v4.10.0"))
	gt.NoError(t, err)
	gt.Number(t, releaseUC.executed).Equal(0)
}

func TestWebhookUseCase_ProcessEvent_CloneFailure(t *testing.T) {
	factory := &MockRepositoryFactory{cloneErr: errors.New("connection refused")}
	releaseUC := &MockReleaseUseCase{}
	uc := usecase.NewWebhook(factory, releaseUC, "main")

	err := uc.ProcessEvent(context.Background(), pushEvent("refs/heads/main"))
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to clone")
	gt.Number(t, releaseUC.executed).Equal(0)
}

func TestWebhookUseCase_ProcessEvent_PipelineFailurePropagates(t *testing.T) {
	factory := &MockRepositoryFactory{repo: &MockGitRepository{}}
	releaseUC := &MockReleaseUseCase{err: errors.New("tag collision")}
	uc := usecase.NewWebhook(factory, releaseUC, "main")

	err := uc.ProcessEvent(context.Background(), pushEvent("refs/heads/main"))
	gt.Error(t, err)
	gt.Value(t, factory.cleanedUp).Equal(true)
}
