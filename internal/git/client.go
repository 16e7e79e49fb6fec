// Package git wraps the go-git operations autodoc needs: computing the
// ChangeSet between two revisions, reading the commit log, and publishing
// staged documents as commits, branches and pushes.
package git

import (
	"fmt"
	"log/slog"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/kiara-inc/autodoc/internal/logfields"
)

// Client handles git operations against a single repository working tree.
type Client struct {
	repo *gogit.Repository
	path string
}

// Open opens the repository containing path (searching upward for .git).
func Open(path string) (*Client, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", path, err)
	}
	return &Client{repo: repo, path: path}, nil
}

// Path returns the path the client was opened with.
func (c *Client) Path() string { return c.path }

// HeadBranch returns the short name of the currently checked out branch.
func (c *Client) HeadBranch() (string, error) {
	ref, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached at %s", ref.Hash().String()[:8])
	}
	return ref.Name().Short(), nil
}

// HeadHash returns the commit hash HEAD points at.
func (c *Client) HeadHash() (string, error) {
	ref, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// resolveCommit resolves a revision string (hash, branch, HEAD~1, ...) to its
// commit object.
func (c *Client) resolveCommit(rev string) (*object.Commit, error) {
	hash, err := c.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve revision %q: %w", rev, err)
	}
	commit, err := c.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", hash.String()[:8], err)
	}
	return commit, nil
}

// HasCommit reports whether rev resolves to a commit in this repository.
func (c *Client) HasCommit(rev string) bool {
	if rev == "" {
		return false
	}
	_, err := c.resolveCommit(rev)
	if err != nil {
		slog.Debug("revision not resolvable", logfields.Revision(rev), logfields.Error(err))
	}
	return err == nil
}
