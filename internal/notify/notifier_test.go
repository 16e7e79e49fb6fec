package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() Summary {
	return Summary{
		Repo:      "acme/demo",
		Branch:    "main",
		Published: []string{"architecture (en)", "api (en)"},
		Skipped:   map[string]string{"changelog": "kind_disabled"},
		Failed:    map[string]string{"onboarding (en)": "model timeout"},
		CommitSHA: "abc1234",
	}
}

func captureWebhook(t *testing.T) (*httptest.Server, *map[string]string) {
	t.Helper()
	got := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestNotifySlackPayload(t *testing.T) {
	srv, got := captureWebhook(t)

	ok := New(srv.URL, "slack").Notify(context.Background(), sampleSummary())
	require.True(t, ok)

	text, present := (*got)["text"]
	require.True(t, present, "slack payload uses the text field")
	assert.Contains(t, text, "acme/demo@main")
	assert.Contains(t, text, "architecture (en)")
	assert.Contains(t, text, "skipped: changelog (kind_disabled)")
	assert.Contains(t, text, "failed: onboarding (en) (model timeout)")
	assert.Contains(t, text, "commit: abc1234")
}

func TestNotifyDiscordPayload(t *testing.T) {
	srv, got := captureWebhook(t)

	ok := New(srv.URL, "discord").Notify(context.Background(), sampleSummary())
	require.True(t, ok)

	_, hasText := (*got)["text"]
	assert.False(t, hasText)
	assert.Contains(t, (*got)["content"], "acme/demo@main")
}

func TestNotifyEmptyURLIsNoop(t *testing.T) {
	ok := New("", "slack").Notify(context.Background(), sampleSummary())
	assert.False(t, ok)
}

func TestNotifyServerErrorSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ok := New(srv.URL, "slack").Notify(context.Background(), sampleSummary())
	assert.False(t, ok, "failed delivery reports false, never an error")
}

func TestNotifyUnreachableHostSwallowed(t *testing.T) {
	ok := New("http://127.0.0.1:1/hook", "slack").Notify(context.Background(), sampleSummary())
	assert.False(t, ok)
}

func TestRenderTextNothingToDo(t *testing.T) {
	text := renderText(Summary{Repo: "acme/demo", Branch: "main"})
	assert.True(t, strings.Contains(text, "nothing to do"), "got: %s", text)
}
