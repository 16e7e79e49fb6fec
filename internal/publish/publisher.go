// Package publish is the publication manager: it stages successful documents
// at their deterministic target paths and durably records them as a direct
// commit or a pull request. It is the sole mutator of the working tree and
// the published git ref.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kiara-inc/autodoc/internal/config"
	"github.com/kiara-inc/autodoc/internal/docplan"
	"github.com/kiara-inc/autodoc/internal/forge"
	"github.com/kiara-inc/autodoc/internal/git"
	"github.com/kiara-inc/autodoc/internal/logfields"
)

// PublicationError is fatal for the run, but the generated content survives
// on the jobs so a caller can persist it out-of-band.
type PublicationError struct {
	Stage string
	Err   error
}

func (e *PublicationError) Error() string {
	return fmt.Sprintf("publication failed at %s: %v", e.Stage, e.Err)
}
func (e *PublicationError) Unwrap() error { return e.Err }

// GitClient is the publisher's view of the git layer.
type GitClient interface {
	HeadBranch() (string, error)
	StageAndCommit(paths []string, message string, author git.Signature) (string, error)
	CreateBranch(branchName string) error
	Push(ctx context.Context, branchName, token string) error
	RemoteURL() (string, error)
	Path() string
}

// Publisher drives the Idle -> Staged -> Published state machine.
type Publisher struct {
	cfg   *config.Config
	git   GitClient
	forge forge.Client // nil unless commit_strategy is pr
	now   func() time.Time
}

// New creates a publisher. forgeClient may be nil for the direct strategy.
func New(cfg *config.Config, gitClient GitClient, forgeClient forge.Client) *Publisher {
	return &Publisher{cfg: cfg, git: gitClient, forge: forgeClient, now: time.Now}
}

// BranchName derives the unique per-run branch for the pr strategy from a
// nanosecond timestamp, so two runs inside the same second still get
// distinct branches.
func (p *Publisher) BranchName() string {
	return fmt.Sprintf("autodoc/docs-%d", p.now().UnixNano())
}

// Publish writes every successful job to its target path and commits the
// result according to the configured strategy. Byte-identical staging is the
// designed no-op outcome, not a failure.
func (p *Publisher) Publish(ctx context.Context, jobs []*docplan.Job) (Outcome, error) {
	if len(jobs) == 0 {
		return Outcome{State: StateSkipped}, nil
	}

	headBranch, err := p.git.HeadBranch()
	if err != nil {
		return Outcome{State: StateFailed, Err: err.Error()}, &PublicationError{Stage: "resolve-branch", Err: err}
	}

	// No-op detection runs before any branch is created so the pr strategy
	// never leaves behind an empty branch.
	changed := p.changedJobs(jobs)
	if len(changed) == 0 {
		slog.Info("all generated documents identical to published content, nothing to commit")
		return Outcome{State: StateNoop, Branch: headBranch}, nil
	}

	// pr strategy branches before staging so the working-tree writes land on
	// the new branch, never the triggering one.
	branch := headBranch
	if p.cfg.CommitStrategy == "pr" {
		branch = p.BranchName()
		if branch == headBranch {
			return Outcome{State: StateFailed, Err: "derived branch equals triggering branch"},
				&PublicationError{Stage: "branch", Err: fmt.Errorf("derived branch %q equals triggering branch", branch)}
		}
		if berr := p.git.CreateBranch(branch); berr != nil {
			return Outcome{State: StateFailed, Err: berr.Error()}, &PublicationError{Stage: "branch", Err: berr}
		}
	}

	staged, err := p.stage(changed)
	if err != nil {
		return Outcome{State: StateFailed, Err: err.Error()}, &PublicationError{Stage: "stage", Err: err}
	}

	message := commitMessage(jobs)
	author := git.Signature{Name: p.cfg.CommitAuthorName, Email: p.cfg.CommitAuthorEmail}
	sha, err := p.git.StageAndCommit(staged, message, author)
	if err != nil {
		return Outcome{State: StateFailed, Staged: staged, Err: err.Error()}, &PublicationError{Stage: "commit", Err: err}
	}
	slog.Info("documents committed", logfields.Revision(sha[:8]), logfields.Branch(branch), "files", len(staged))

	pushCtx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout.Std())
	defer cancel()
	if err := p.git.Push(pushCtx, branch, p.cfg.PR.Token); err != nil {
		return Outcome{State: StateFailed, CommitSHA: sha, Branch: branch, Staged: staged, Err: err.Error()},
			&PublicationError{Stage: "push", Err: err}
	}

	if p.cfg.CommitStrategy == "direct" {
		return Outcome{State: StateDirect, CommitSHA: sha, Branch: branch, Staged: staged}, nil
	}
	return p.openPullRequest(ctx, jobs, sha, branch, headBranch, staged)
}

// changedJobs returns the jobs whose content differs byte-for-byte from what
// is already on disk. Publishing the same content twice therefore changes
// nothing the second time.
func (p *Publisher) changedJobs(jobs []*docplan.Job) []*docplan.Job {
	changed := make([]*docplan.Job, 0, len(jobs))
	for _, j := range jobs {
		abs := filepath.Join(p.git.Path(), filepath.FromSlash(j.TargetPath))
		if prev, err := os.ReadFile(abs); err == nil && bytes.Equal(prev, j.Content) {
			slog.Debug("document unchanged", logfields.Kind(string(j.Kind)), logfields.Path(j.TargetPath))
			continue
		}
		changed = append(changed, j)
	}
	return changed
}

// stage writes each job's content to its deterministic target path,
// overwriting prior content, and returns the repo-relative staged paths.
func (p *Publisher) stage(jobs []*docplan.Job) ([]string, error) {
	staged := make([]string, 0, len(jobs))
	for _, j := range jobs {
		abs := filepath.Join(p.git.Path(), filepath.FromSlash(j.TargetPath))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(abs, j.Content, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", j.TargetPath, err)
		}
		staged = append(staged, j.TargetPath)
	}
	return staged, nil
}

func (p *Publisher) openPullRequest(ctx context.Context, jobs []*docplan.Job, sha, branch, base string, staged []string) (Outcome, error) {
	if p.forge == nil {
		err := fmt.Errorf("pr strategy requires a forge client")
		return Outcome{State: StateFailed, CommitSHA: sha, Branch: branch, Staged: staged, Err: err.Error()},
			&PublicationError{Stage: "pr", Err: err}
	}
	if p.cfg.PR.BaseBranch != "" {
		base = p.cfg.PR.BaseBranch
	}

	prCtx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout.Std())
	defer cancel()
	result, err := p.forge.OpenPullRequest(prCtx, forge.PullRequest{
		Title: "docs: update generated documentation",
		Body:  prBody(jobs),
		Head:  branch,
		Base:  base,
	})
	if err != nil {
		return Outcome{State: StateFailed, CommitSHA: sha, Branch: branch, Staged: staged, Err: err.Error()},
			&PublicationError{Stage: "pr", Err: err}
	}
	slog.Info("pull request opened", logfields.Branch(branch), "pr", result.Number)
	return Outcome{State: StatePR, CommitSHA: sha, Branch: branch, PRNumber: result.Number, PRURL: result.URL, Staged: staged}, nil
}

func commitMessage(jobs []*docplan.Job) string {
	names := make(map[string]bool, len(jobs))
	var order []string
	for _, j := range jobs {
		n := string(j.Kind)
		if !names[n] {
			names[n] = true
			order = append(order, n)
		}
	}
	msg := "docs: regenerate"
	for i, n := range order {
		if i == 0 {
			msg += " " + n
		} else {
			msg += ", " + n
		}
	}
	return msg + "\n\nGenerated by autodoc."
}

func prBody(jobs []*docplan.Job) string {
	body := "Automated documentation refresh.\n\n"
	for _, j := range jobs {
		body += fmt.Sprintf("- `%s` (%s)\n", j.TargetPath, j.Reason)
	}
	return body
}
