package git

import (
	"context"
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Signature identifies the commit author for published documents. A distinct
// bot identity keeps generated commits separable from human ones.
type Signature struct {
	Name  string
	Email string
}

// StageAndCommit adds the given worktree-relative paths and creates a single
// commit. All staged files land in that one commit; on error before the
// commit step the repository history is untouched.
func (c *Client) StageAndCommit(paths []string, message string, author Signature) (string, error) {
	w, err := c.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}
	for _, p := range paths {
		if _, aerr := w.Add(p); aerr != nil {
			return "", fmt.Errorf("stage %s: %w", p, aerr)
		}
	}
	hash, err := w.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: author.Name, Email: author.Email, When: time.Now()},
	})
	if err != nil {
		return "", fmt.Errorf("commit staged documents: %w", err)
	}
	return hash.String(), nil
}

// CreateBranch creates branchName at the current HEAD and checks it out,
// keeping the working tree contents.
func (c *Client) CreateBranch(branchName string) error {
	w, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	err = w.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branchName),
		Create: true,
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("create branch %s: %w", branchName, err)
	}
	return nil
}

// Push pushes the named branch to origin. token may be empty for
// remotes that need no authentication (local file remotes, CI-injected
// credentials). An already-up-to-date remote is not an error.
func (c *Client) Push(ctx context.Context, branchName, token string) error {
	refSpec := gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branchName, branchName))
	opts := &gogit.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitcfg.RefSpec{refSpec},
	}
	if token != "" {
		opts.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: token}
	}
	err := c.repo.PushContext(ctx, opts)
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return classifyPushError(branchName, err)
	}
	return nil
}

// RemoteURL returns the first URL of the origin remote.
func (c *Client) RemoteURL() (string, error) {
	remote, err := c.repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("resolve origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	return urls[0], nil
}
