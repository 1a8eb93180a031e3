package slack_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fskerman/tagkeeper/pkg/domain/model"
	slackinfra "github.com/fskerman/tagkeeper/pkg/infra/slack"
)

func TestNotifier_NotifyRelease(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier, err := slackinfra.NewNotifier(server.URL)
	gt.NoError(t, err)

	err = notifier.NotifyRelease(context.Background(), &model.ReleaseResult{
		TagName:    "v4.10.0",
		ReleaseURL: "https://github.com/fskerman/ai-math-tcs/releases/tag/v4.10.0",
	})
	gt.NoError(t, err)
	gt.String(t, gotBody).Contains("v4.10.0")
}

func TestNotifier_NotifyRelease_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier, err := slackinfra.NewNotifier(server.URL)
	gt.NoError(t, err)

	err = notifier.NotifyRelease(context.Background(), &model.ReleaseResult{TagName: "v4.10.0"})
	gt.Error(t, err)
}

func TestNewNotifier_EmptyURL(t *testing.T) {
	_, err := slackinfra.NewNotifier("")
	gt.Error(t, err)
}
