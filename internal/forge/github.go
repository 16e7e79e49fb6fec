// Package forge talks to the version-control host's HTTP API for the
// operations go-git cannot do: opening pull requests and commenting on them.
package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PullRequest describes a PR to open.
type PullRequest struct {
	Title string
	Body  string
	Head  string // branch carrying the generated documents
	Base  string // triggering branch
}

// PullRequestResult is the host's reference for an opened PR.
type PullRequestResult struct {
	Number int    `json:"number"`
	URL    string `json:"html_url"`
}

// Client is the narrow host-API surface the publication manager needs.
type Client interface {
	OpenPullRequest(ctx context.Context, pr PullRequest) (*PullRequestResult, error)
	CommentOnPullRequest(ctx context.Context, number int, body string) error
}

// GitHubClient implements Client against the GitHub REST API (and compatible
// forges configured via a custom API URL).
type GitHubClient struct {
	httpClient *http.Client
	apiURL     string
	repo       string // owner/name
	token      string
}

// NewGitHubClient creates a client for the given repository slug ("owner/name").
func NewGitHubClient(apiURL, repo, token string) (*GitHubClient, error) {
	if repo == "" || !strings.Contains(repo, "/") {
		return nil, fmt.Errorf("invalid repository slug %q (want owner/name)", repo)
	}
	if token == "" {
		return nil, fmt.Errorf("forge client requires a token")
	}
	if apiURL == "" {
		apiURL = "https://api.github.com"
	}
	return &GitHubClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		repo:       repo,
		token:      token,
	}, nil
}

// OpenPullRequest opens a PR from Head into Base.
func (c *GitHubClient) OpenPullRequest(ctx context.Context, pr PullRequest) (*PullRequestResult, error) {
	payload := map[string]string{
		"title": pr.Title,
		"body":  pr.Body,
		"head":  pr.Head,
		"base":  pr.Base,
	}
	var result PullRequestResult
	if err := c.post(ctx, fmt.Sprintf("%s/repos/%s/pulls", c.apiURL, c.repo), payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CommentOnPullRequest posts a comment on an existing PR.
func (c *GitHubClient) CommentOnPullRequest(ctx context.Context, number int, body string) error {
	payload := map[string]string{"body": body}
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", c.apiURL, c.repo, number)
	return c.post(ctx, url, payload, nil)
}

func (c *GitHubClient) post(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("host API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return classifyAPIError(resp.StatusCode, string(data))
	}
	if out != nil {
		if derr := json.NewDecoder(resp.Body).Decode(out); derr != nil {
			return fmt.Errorf("decode host API response: %w", derr)
		}
	}
	return nil
}

// APIError is a non-2xx host API response.
type APIError struct {
	StatusCode int
	Kind       string // auth, conflict, rate_limit, other
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("host API error (%s, HTTP %d): %s", e.Kind, e.StatusCode, e.Body)
}

func classifyAPIError(status int, body string) error {
	kind := "other"
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = "auth"
	case status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		kind = "conflict"
	case status == http.StatusTooManyRequests:
		kind = "rate_limit"
	}
	return &APIError{StatusCode: status, Kind: kind, Body: body}
}

// RepoSlug derives "owner/name" from a remote URL. Supports https, ssh scp
// syntax and .git suffixes.
func RepoSlug(remoteURL string) (string, error) {
	s := strings.TrimSuffix(remoteURL, ".git")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "/"); j >= 0 {
			s = s[j+1:]
		}
	} else if i := strings.Index(s, ":"); i >= 0 && strings.Contains(s[:i], "@") {
		s = s[i+1:]
	}
	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("cannot derive owner/name from remote %q", remoteURL)
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1], nil
}
