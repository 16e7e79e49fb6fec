package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPullRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number": 7, "html_url": "https://github.com/acme/demo/pull/7"}`)
	}))
	defer srv.Close()

	c, err := NewGitHubClient(srv.URL, "acme/demo", "tok123")
	require.NoError(t, err)

	result, err := c.OpenPullRequest(context.Background(), PullRequest{
		Title: "docs: update generated documentation",
		Body:  "body",
		Head:  "autodoc/docs-1700000000",
		Base:  "main",
	})
	require.NoError(t, err)

	assert.Equal(t, "/repos/acme/demo/pulls", gotPath)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "autodoc/docs-1700000000", gotPayload["head"])
	assert.Equal(t, "main", gotPayload["base"])
	assert.Equal(t, 7, result.Number)
	assert.Equal(t, "https://github.com/acme/demo/pull/7", result.URL)
}

func TestAPIErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		kind   string
	}{
		{http.StatusUnauthorized, "auth"},
		{http.StatusForbidden, "auth"},
		{http.StatusUnprocessableEntity, "conflict"},
		{http.StatusTooManyRequests, "rate_limit"},
		{http.StatusInternalServerError, "other"},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c, err := NewGitHubClient(srv.URL, "acme/demo", "tok")
			require.NoError(t, err)

			_, err = c.OpenPullRequest(context.Background(), PullRequest{Head: "h", Base: "b"})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.kind, apiErr.Kind)
			assert.Equal(t, tc.status, apiErr.StatusCode)
		})
	}
}

func TestNewGitHubClientValidation(t *testing.T) {
	_, err := NewGitHubClient("", "not-a-slug", "tok")
	assert.Error(t, err)

	_, err = NewGitHubClient("", "acme/demo", "")
	assert.Error(t, err)
}

func TestRepoSlug(t *testing.T) {
	cases := []struct {
		remote string
		want   string
	}{
		{"https://github.com/acme/demo.git", "acme/demo"},
		{"https://github.com/acme/demo", "acme/demo"},
		{"git@github.com:acme/demo.git", "acme/demo"},
		{"ssh://git@github.com/acme/demo.git", "acme/demo"},
	}
	for _, tc := range cases {
		got, err := RepoSlug(tc.remote)
		require.NoError(t, err, tc.remote)
		assert.Equal(t, tc.want, got, tc.remote)
	}

	_, err := RepoSlug("not-a-remote")
	assert.Error(t, err)
}
