package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiara-inc/autodoc/internal/config"
	"github.com/kiara-inc/autodoc/internal/docplan"
	"github.com/kiara-inc/autodoc/internal/publish"
)

func setupRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"), []byte("print('hi')\n"), 0o644))
	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add("app.py")
	require.NoError(t, err)
	_, err = w.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Dev", Email: "dev@example.com"},
	})
	require.NoError(t, err)

	// Local bare origin so direct pushes succeed without credentials.
	bareDir := t.TempDir()
	_, err = gogit.PlainInit(bareDir, true)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitcfg.RemoteConfig{Name: "origin", URLs: []string{bareDir}})
	require.NoError(t, err)
	return dir
}

func runConfig(repoDir string) *config.Config {
	return &config.Config{
		OutputDir:         "docs/autodoc",
		Language:          docplan.LangEnglish,
		CommitStrategy:    "direct",
		WebhookFormat:     "slack",
		Model:             "test-model",
		MaxFiles:          50,
		MaxFileSize:       50_000,
		MaxConcurrent:     3,
		FileExtensions:    []string{".py"},
		GenerationTimeout: config.Duration(5 * time.Second),
		PublishTimeout:    config.Duration(5 * time.Second),
		StateFile:         filepath.Join(repoDir, ".autodoc-state.json"),
		CommitAuthorName:  "autodoc[bot]",
		CommitAuthorEmail: "autodoc[bot]@users.noreply.github.com",
	}
}

func TestRunFirstRunGeneratesAndCommits(t *testing.T) {
	dir := setupRepo(t)
	outputFile := filepath.Join(t.TempDir(), "gh-output")
	t.Setenv("GITHUB_OUTPUT", outputFile)

	runner := NewRunner(runConfig(dir), &fakeGenerator{})
	res, err := runner.Run(context.Background(), RunOptions{RepoPath: dir})
	require.NoError(t, err)

	assert.Equal(t, publish.StateDirect, res.Outcome.State)
	assert.NotEmpty(t, res.Outcome.CommitSHA)
	succeeded, failed, _ := res.Counts()
	assert.Equal(t, 5, succeeded, "full run generates every enabled kind")
	assert.Equal(t, 0, failed)
	assert.False(t, res.TotalFailure())

	// Documents land at their deterministic paths.
	for _, name := range []string{"ARCHITECTURE.md", "API.md", "ONBOARDING.md", "DECISIONS.md", "CHANGELOG.md"} {
		_, statErr := os.Stat(filepath.Join(dir, "docs", "autodoc", name))
		assert.NoError(t, statErr, name)
	}

	// The checkpoint records the triggering revision for the branch.
	data, rerr := os.ReadFile(filepath.Join(dir, ".autodoc-state.json"))
	require.NoError(t, rerr)
	assert.Contains(t, string(data), res.ToRev)

	// CI step outputs were appended.
	out, rerr := os.ReadFile(outputFile)
	require.NoError(t, rerr)
	assert.Contains(t, string(out),
		"docs_generated=ARCHITECTURE.md,API.md,ONBOARDING.md,DECISIONS.md,CHANGELOG.md")
	assert.Contains(t, string(out), "files_analyzed=1")
}

func TestRunSecondRunWithoutSourceChangesIsQuiet(t *testing.T) {
	dir := setupRepo(t)
	cfg := runConfig(dir)
	runner := NewRunner(cfg, &fakeGenerator{})

	first, err := runner.Run(context.Background(), RunOptions{RepoPath: dir})
	require.NoError(t, err)
	require.Equal(t, publish.StateDirect, first.Outcome.State)

	// The doc commit itself is the only change since the checkpoint, so the
	// next run must not regenerate anything.
	second, err := runner.Run(context.Background(), RunOptions{RepoPath: dir})
	require.NoError(t, err)
	assert.Equal(t, publish.StateSkipped, second.Outcome.State)
	succeeded, _, skipped := second.Counts()
	assert.Equal(t, 0, succeeded)
	assert.Equal(t, 5, skipped)
}

func TestRunExplicitRangeSelectsKinds(t *testing.T) {
	dir := setupRepo(t)
	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	base := head.Hash().String()

	// Second commit touches only a non-source file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NOTES.txt"), []byte("notes\n"), 0o644))
	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add("NOTES.txt")
	require.NoError(t, err)
	_, err = w.Commit("add notes", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Dev", Email: "dev@example.com"},
	})
	require.NoError(t, err)

	runner := NewRunner(runConfig(dir), &fakeGenerator{})
	res, err := runner.Run(context.Background(), RunOptions{RepoPath: dir, FromRev: base})
	require.NoError(t, err)

	// File-derived kinds stay quiet; history kinds regenerate.
	byKind := map[docplan.Kind]*docplan.Job{}
	for _, j := range res.Jobs {
		byKind[j.Kind] = j
	}
	assert.Equal(t, docplan.StatusSkipped, byKind[docplan.KindArchitecture].Status)
	assert.Equal(t, docplan.StatusSkipped, byKind[docplan.KindAPI].Status)
	assert.Equal(t, docplan.StatusSucceeded, byKind[docplan.KindDecisions].Status)
	assert.Equal(t, docplan.StatusSucceeded, byKind[docplan.KindChangelog].Status)
	assert.Equal(t, publish.StateDirect, res.Outcome.State)
}

func TestRunTotalGenerationFailureDoesNotPublish(t *testing.T) {
	dir := setupRepo(t)
	gen := &fakeGenerator{fail: map[docplan.Kind]error{
		docplan.KindArchitecture: context.DeadlineExceeded,
		docplan.KindAPI:          context.DeadlineExceeded,
		docplan.KindOnboarding:   context.DeadlineExceeded,
		docplan.KindDecisions:    context.DeadlineExceeded,
		docplan.KindChangelog:    context.DeadlineExceeded,
	}}

	runner := NewRunner(runConfig(dir), gen)
	res, err := runner.Run(context.Background(), RunOptions{RepoPath: dir})
	require.NoError(t, err, "generation failures are per-job, not run errors")

	assert.True(t, res.TotalFailure())
	assert.Equal(t, publish.StateSkipped, res.Outcome.State)
	_, statErr := os.Stat(filepath.Join(dir, "docs"))
	assert.True(t, os.IsNotExist(statErr), "no documents written on total failure")
}

func TestPlanDoesNotGenerate(t *testing.T) {
	dir := setupRepo(t)
	gen := &fakeGenerator{}
	runner := NewRunner(runConfig(dir), gen)

	cl, plan, err := runner.Plan(context.Background(), RunOptions{RepoPath: dir})
	require.NoError(t, err)

	assert.Len(t, cl.Triggered, 5)
	assert.Len(t, plan.Pending(), 5)
	assert.Zero(t, gen.calls, "plan must not call the generator")
	_, statErr := os.Stat(filepath.Join(dir, "docs"))
	assert.True(t, os.IsNotExist(statErr))
}
