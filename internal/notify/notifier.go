// Package notify posts the run summary to an optional webhook. It is strictly
// best-effort: every failure is logged and swallowed, never surfaced to the
// run as an error.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/kiara-inc/autodoc/internal/logfields"
)

// Summary is the notifier's own view of a finished run; the engine translates
// its RunResult into this form so notify stays free of engine types.
type Summary struct {
	Repo      string
	Branch    string
	Published []string          // "kind (lang)" entries that landed
	Skipped   map[string]string // kind -> reason
	Failed    map[string]string // kind -> reason
	CommitSHA string
	PRURL     string
}

// Notifier delivers summaries in the configured payload shape.
type Notifier struct {
	url        string
	format     string // slack | discord
	httpClient *http.Client
}

// New creates a notifier. An empty url yields a no-op notifier.
func New(url, format string) *Notifier {
	return &Notifier{
		url:        url,
		format:     format,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Notify posts the summary. Always returns nil error semantics to the caller:
// the boolean reports whether a delivery was attempted and accepted.
func (n *Notifier) Notify(ctx context.Context, s Summary) bool {
	if n.url == "" {
		return false
	}

	payload := n.payload(s)
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("failed to encode notification payload", logfields.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		slog.Warn("failed to build notification request", logfields.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		slog.Warn("notification delivery failed", logfields.Error(err))
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		slog.Warn("notification rejected", "status", resp.StatusCode)
		return false
	}
	slog.Info("notification delivered", "format", n.format)
	return true
}

// payload adapts the summary text to the destination's expected shape:
// Slack-style webhooks read "text", Discord-style webhooks read "content".
func (n *Notifier) payload(s Summary) map[string]string {
	text := renderText(s)
	if n.format == "discord" {
		return map[string]string{"content": text}
	}
	return map[string]string{"text": text}
}

func renderText(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "autodoc run for %s@%s\n", s.Repo, s.Branch)
	if len(s.Published) > 0 {
		fmt.Fprintf(&b, "published: %s\n", strings.Join(s.Published, ", "))
	}
	for _, kind := range sortedKeys(s.Skipped) {
		fmt.Fprintf(&b, "skipped: %s (%s)\n", kind, s.Skipped[kind])
	}
	for _, kind := range sortedKeys(s.Failed) {
		fmt.Fprintf(&b, "failed: %s (%s)\n", kind, s.Failed[kind])
	}
	if s.CommitSHA != "" {
		fmt.Fprintf(&b, "commit: %s\n", s.CommitSHA)
	}
	if s.PRURL != "" {
		fmt.Fprintf(&b, "pull request: %s\n", s.PRURL)
	}
	if len(s.Published) == 0 && len(s.Failed) == 0 {
		b.WriteString("nothing to do\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
