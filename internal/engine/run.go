package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/kiara-inc/autodoc/internal/ci"
	"github.com/kiara-inc/autodoc/internal/config"
	"github.com/kiara-inc/autodoc/internal/docplan"
	"github.com/kiara-inc/autodoc/internal/forge"
	"github.com/kiara-inc/autodoc/internal/generator"
	"github.com/kiara-inc/autodoc/internal/git"
	"github.com/kiara-inc/autodoc/internal/logfields"
	"github.com/kiara-inc/autodoc/internal/notify"
	"github.com/kiara-inc/autodoc/internal/publish"
	"github.com/kiara-inc/autodoc/internal/scan"
	"github.com/kiara-inc/autodoc/internal/state"
)

// RunOptions are the per-invocation inputs that are not configuration:
// where the repository is and which revision range triggered the run.
type RunOptions struct {
	RepoPath string
	FromRev  string // empty: fall back to the checkpoint, then full run
	ToRev    string // empty: HEAD
}

// Runner wires one run end to end: diff, classify, plan, scan, generate,
// publish, checkpoint, notify.
type Runner struct {
	cfg *config.Config
	gen generator.Generator
}

// NewRunner creates a runner around a resolved configuration and a generator.
func NewRunner(cfg *config.Config, gen generator.Generator) *Runner {
	return &Runner{cfg: cfg, gen: gen}
}

// Plan computes the classification and document plan without generating
// anything. It backs the dry-run command.
func (r *Runner) Plan(ctx context.Context, opts RunOptions) (docplan.Classification, *docplan.Plan, error) {
	gitClient, err := git.Open(opts.RepoPath)
	if err != nil {
		return docplan.Classification{}, nil, err
	}
	branch, _ := gitClient.HeadBranch()
	cs, _, _ := r.resolveChanges(ctx, gitClient, optsWithStore(opts, r.openStore(slog.Default()), branch))
	planOpts := r.cfg.PlanOptions()
	cl := docplan.Classify(cs, planOpts)
	return cl, docplan.BuildPlan(cl, planOpts), nil
}

// Run executes a full pipeline pass. The returned error covers configuration
// and publication failures only; per-document generation failures are recorded
// on the jobs, and the caller decides the exit code from TotalFailure.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	res := newRunResult()
	log := slog.With(logfields.RunID(res.RunID))

	gitClient, err := git.Open(opts.RepoPath)
	if err != nil {
		return res, err
	}

	branch, err := gitClient.HeadBranch()
	if err != nil {
		// Detached HEAD still permits planning and generation; publishing
		// will report its own failure if it gets that far.
		log.Warn("cannot resolve current branch", logfields.Error(err))
		branch = ""
	}
	res.Branch = branch

	// The triggering revision is captured before any commit moves HEAD; it is
	// what the checkpoint records as the last documented state.
	triggerRev, err := gitClient.HeadHash()
	if err != nil {
		return res, fmt.Errorf("resolve HEAD: %w", err)
	}
	res.ToRev = triggerRev

	store := r.openStore(log)

	cs, fromRev, toRev := r.resolveChanges(ctx, gitClient, optsWithStore(opts, store, branch))
	res.FromRev = fromRev

	planOpts := r.cfg.PlanOptions()
	cl := docplan.Classify(cs, planOpts)
	plan := docplan.BuildPlan(cl, planOpts)
	res.Jobs = plan.Jobs

	pending := plan.Pending()
	log.Info("document plan built",
		"triggered", len(cl.Triggered), "skipped", len(cl.Skipped), "jobs", len(pending))

	if len(pending) == 0 {
		res.Outcome = publish.Outcome{State: publish.StateSkipped}
		r.writeStepOutputs(log, nil, 0)
		res.Notified = r.notify(ctx, gitClient, res, cl)
		res.FinishedAt = time.Now()
		return res, nil
	}

	snap, err := r.scanRepository(gitClient, fromRev, toRev)
	if err != nil {
		return res, err
	}
	log.Info("repository scanned", "files", len(snap.Sources), "configs", len(snap.Configs))

	coord := NewCoordinator(r.gen, r.cfg.MaxConcurrent, r.cfg.GenerationTimeout.Std())
	coord.Generate(ctx, pending, snap)

	outcome, pubErr := r.publish(ctx, gitClient, plan)
	res.Outcome = outcome

	if outcome.State == publish.StateDirect || outcome.State == publish.StatePR ||
		outcome.State == publish.StateNoop {
		if branch != "" {
			if serr := store.RecordPublished(branch, triggerRev); serr != nil {
				log.Warn("checkpoint not recorded", logfields.Error(serr))
			}
		}
	}

	succeeded, failed, _ := res.Counts()
	r.writeStepOutputs(log, generatedFiles(res.Jobs), len(snap.Sources))
	res.Notified = r.notify(ctx, gitClient, res, cl)
	res.FinishedAt = time.Now()

	log.Info("run finished",
		logfields.Status(string(outcome.State)),
		"succeeded", succeeded, "failed", failed)
	return res, pubErr
}

// resolveChanges determines the diff window and computes the change set.
// Every failure path degrades to the empty ChangeSet, which classifies as a
// full run; a broken diff must widen the run, never silence it.
func (r *Runner) resolveChanges(ctx context.Context, gitClient *git.Client, opts RunOptions) (docplan.ChangeSet, string, string) {
	toRev := opts.ToRev
	if toRev == "" {
		toRev = "HEAD"
	}
	if !r.cfg.DiffModeOn() {
		return docplan.ChangeSet{}, "", toRev
	}

	fromRev := opts.FromRev
	if fromRev == "" || !gitClient.HasCommit(fromRev) {
		if fromRev != "" {
			slog.Warn("base revision not found, falling back to full run", logfields.Revision(fromRev))
		}
		return docplan.ChangeSet{}, "", toRev
	}

	cs, err := gitClient.Changes(ctx, fromRev, toRev)
	if err != nil {
		slog.Warn("diff failed, falling back to full run", logfields.Error(err))
		return docplan.ChangeSet{}, "", toRev
	}
	// The output directory is excluded inside Classify, which needs the raw
	// set to distinguish "no diff available" from "only generated documents
	// changed".
	return cs, fromRev, toRev
}

// optsWithStore substitutes the checkpoint revision when no explicit base was
// given on the command line.
func optsWithStore(opts RunOptions, store *state.Store, branch string) RunOptions {
	if opts.FromRev == "" && branch != "" {
		if rev, ok := store.LastPublished(branch); ok {
			opts.FromRev = rev
		}
	}
	return opts
}

func (r *Runner) openStore(log *slog.Logger) *state.Store {
	store, err := state.NewStore(r.cfg.StateFile)
	if err != nil {
		log.Warn("checkpoint file unreadable, continuing without it", logfields.Error(err))
		store, _ = state.NewStore("")
	}
	return store
}

func (r *Runner) scanRepository(gitClient *git.Client, fromRev, toRev string) (*scan.Snapshot, error) {
	scanner := scan.NewScanner(gitClient.Path(), scan.Options{
		MaxFiles:    r.cfg.MaxFiles,
		MaxFileSize: r.cfg.MaxFileSize,
		Extensions:  r.cfg.FileExtensions,
		OutputDir:   r.cfg.OutputDir,
	})
	snap, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("scan repository: %w", err)
	}
	if log, lerr := gitClient.CommitLog(fromRev, toRev, 50); lerr == nil {
		snap.CommitLog = log
	} else {
		slog.Warn("commit log unavailable", logfields.Error(lerr))
	}
	return snap, nil
}

// publish builds the forge client lazily; the direct strategy never touches
// the forge API. When a pull request is opened and some jobs failed, the
// failures are posted as a PR comment so the reviewer sees the whole run.
func (r *Runner) publish(ctx context.Context, gitClient *git.Client, plan *docplan.Plan) (publish.Outcome, error) {
	var forgeClient forge.Client
	if r.cfg.CommitStrategy == "pr" {
		remote, err := gitClient.RemoteURL()
		if err != nil {
			return publish.Outcome{State: publish.StateFailed, Err: err.Error()},
				&publish.PublicationError{Stage: "remote", Err: err}
		}
		slug, err := forge.RepoSlug(remote)
		if err != nil {
			return publish.Outcome{State: publish.StateFailed, Err: err.Error()},
				&publish.PublicationError{Stage: "remote", Err: err}
		}
		forgeClient, err = forge.NewGitHubClient(r.cfg.PR.APIURL, slug, r.cfg.PR.Token)
		if err != nil {
			return publish.Outcome{State: publish.StateFailed, Err: err.Error()},
				&publish.PublicationError{Stage: "forge", Err: err}
		}
	}
	pub := publish.New(r.cfg, gitClient, forgeClient)
	outcome, err := pub.Publish(ctx, plan.Succeeded())

	if err == nil && outcome.State == publish.StatePR && forgeClient != nil {
		if comment := failureComment(plan); comment != "" {
			if cerr := forgeClient.CommentOnPullRequest(ctx, outcome.PRNumber, comment); cerr != nil {
				slog.Warn("failure comment not posted", logfields.Error(cerr))
			}
		}
	}
	return outcome, err
}

// failureComment lists the jobs that failed generation, or "" when none did.
func failureComment(plan *docplan.Plan) string {
	var b strings.Builder
	for _, j := range plan.Jobs {
		if j.Status == docplan.StatusFailed {
			fmt.Fprintf(&b, "- `%s` (%s): %s\n", j.Kind, j.Lang, j.FailureReason)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "Some documents could not be regenerated in this run:\n\n" + b.String()
}

func (r *Runner) writeStepOutputs(log *slog.Logger, generated []string, analyzed int) {
	err := ci.WriteStepOutputs(map[string]string{
		"docs_generated": strings.Join(generated, ","),
		"files_analyzed": fmt.Sprintf("%d", analyzed),
	})
	if err != nil {
		log.Warn("step outputs not written", logfields.Error(err))
	}
}

// generatedFiles lists the file names of the jobs that produced content, in
// plan order.
func generatedFiles(jobs []*docplan.Job) []string {
	var names []string
	for _, j := range jobs {
		if j.Status == docplan.StatusSucceeded {
			names = append(names, path.Base(j.TargetPath))
		}
	}
	return names
}

// notify translates the run into the webhook summary. Delivery is best-effort.
func (r *Runner) notify(ctx context.Context, gitClient *git.Client, res *RunResult, cl docplan.Classification) bool {
	n := notify.New(r.cfg.WebhookURL, r.cfg.WebhookFormat)

	repo := ""
	if remote, err := gitClient.RemoteURL(); err == nil {
		if slug, serr := forge.RepoSlug(remote); serr == nil {
			repo = slug
		}
	}

	s := notify.Summary{
		Repo:      repo,
		Branch:    res.Branch,
		Skipped:   map[string]string{},
		Failed:    map[string]string{},
		CommitSHA: res.Outcome.CommitSHA,
		PRURL:     res.Outcome.PRURL,
	}
	for k, reason := range cl.Skipped {
		s.Skipped[string(k)] = reason
	}
	for _, j := range res.Jobs {
		switch j.Status {
		case docplan.StatusSucceeded:
			s.Published = append(s.Published, fmt.Sprintf("%s (%s)", j.Kind, j.Lang))
		case docplan.StatusFailed:
			s.Failed[fmt.Sprintf("%s (%s)", j.Kind, j.Lang)] = j.FailureReason
		}
	}
	return n.Notify(ctx, s)
}
