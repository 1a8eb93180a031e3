package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fskerman/tagkeeper/pkg/domain/model"
)

func TestWebhookEvent_IsReleaseCandidate(t *testing.T) {
	tests := []struct {
		name      string
		eventType model.WebhookEventType
		ref       string
		branch    string
		want      bool
	}{
		{
			name:      "Push to main",
			eventType: model.EventTypePush,
			ref:       "refs/heads/main",
			branch:    "main",
			want:      true,
		},
		{
			name:      "Push to other branch",
			eventType: model.EventTypePush,
			ref:       "refs/heads/develop",
			branch:    "main",
			want:      false,
		},
		{
			name:      "Tag push",
			eventType: model.EventTypePush,
			ref:       "refs/tags/4.27.0",
			branch:    "main",
			want:      false,
		},
		{
			name:      "Branch named like a prefix of main",
			eventType: model.EventTypePush,
			ref:       "refs/heads/main-backup",
			branch:    "main",
			want:      false,
		},
		{
			name:      "Unknown event type",
			eventType: model.EventTypeUnknown,
			ref:       "refs/heads/main",
			branch:    "main",
			want:      false,
		},
		{
			name:      "Custom release branch",
			eventType: model.EventTypePush,
			ref:       "refs/heads/release",
			branch:    "release",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &model.WebhookEvent{
				Type: tt.eventType,
				Ref:  tt.ref,
			}
			gt.Value(t, event.IsReleaseCandidate(tt.branch)).Equal(tt.want)
		})
	}
}

func TestWebhookEvent_OwnerRepo(t *testing.T) {
	event := &model.WebhookEvent{Repository: "fskerman/ai-math-tcs"}
	gt.Value(t, event.Owner()).Equal("fskerman")
	gt.Value(t, event.Repo()).Equal("ai-math-tcs")
}
