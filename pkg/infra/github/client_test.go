package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/fskerman/tagkeeper/pkg/domain/interfaces"
	"github.com/fskerman/tagkeeper/pkg/domain/model"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
	githubinfra "github.com/fskerman/tagkeeper/pkg/infra/github"
)

func newTestHost(t *testing.T, handler http.HandlerFunc) (interfaces.ReleaseHost, func()) {
	t.Helper()
	server := httptest.NewServer(handler)

	host, err := githubinfra.NewClient("test-token", "fskerman", "ai-math-tcs",
		githubinfra.WithBaseURL(server.URL+"/"))
	gt.NoError(t, err)

	return host, server.Close
}

func TestClient_CreateRelease_Success(t *testing.T) {
	var gotBody map[string]any
	host, closeFn := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.String(t, r.URL.Path).Contains("/repos/fskerman/ai-math-tcs/releases")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       1,
			"tag_name": "v4.10.0",
			"html_url": "https://github.com/fskerman/ai-math-tcs/releases/tag/v4.10.0",
		})
	})
	defer closeFn()

	url, err := host.CreateRelease(context.Background(), &model.Release{
		TagName: "v4.10.0",
		Name:    "v4.10.0",
		Body:    "Automated release for toolchain version v4.10.0.",
	})
	gt.NoError(t, err)
	gt.String(t, url).Contains("v4.10.0")

	gt.Value(t, gotBody["tag_name"]).Equal("v4.10.0")
	gt.Value(t, gotBody["name"]).Equal("v4.10.0")
	gt.Value(t, gotBody["draft"]).Equal(false)
	gt.Value(t, gotBody["prerelease"]).Equal(false)
}

func TestClient_CreateRelease_DuplicateTag(t *testing.T) {
	host, closeFn := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Validation Failed","errors":[{"resource":"Release","code":"already_exists","field":"tag_name"}]}`))
	})
	defer closeFn()

	_, err := host.CreateRelease(context.Background(), &model.Release{TagName: "v4.10.0"})
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagDuplicate)).Equal(true)
}

func TestClient_CreateRelease_Unauthorized(t *testing.T) {
	host, closeFn := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
	})
	defer closeFn()

	_, err := host.CreateRelease(context.Background(), &model.Release{TagName: "v4.10.0"})
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagAuthorization)).Equal(true)
}

func TestClient_CreateRelease_ServerError(t *testing.T) {
	host, closeFn := newTestHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer closeFn()

	_, err := host.CreateRelease(context.Background(), &model.Release{TagName: "v4.10.0"})
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagTransient)).Equal(true)
}

func TestNewClient_EmptyToken(t *testing.T) {
	_, err := githubinfra.NewClient("", "fskerman", "ai-math-tcs")
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagConfig)).Equal(true)
}
