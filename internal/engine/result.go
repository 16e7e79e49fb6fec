package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/kiara-inc/autodoc/internal/docplan"
	"github.com/kiara-inc/autodoc/internal/publish"
)

// RunResult captures one complete run: every job the plan produced, the
// publication outcome, and whether a notification was delivered.
type RunResult struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	FromRev    string
	ToRev      string
	Branch     string
	Jobs       []*docplan.Job
	Outcome    publish.Outcome
	Notified   bool
}

func newRunResult() *RunResult {
	return &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Counts returns succeeded, failed and skipped job totals.
func (r *RunResult) Counts() (succeeded, failed, skipped int) {
	for _, j := range r.Jobs {
		switch j.Status {
		case docplan.StatusSucceeded:
			succeeded++
		case docplan.StatusFailed:
			failed++
		case docplan.StatusSkipped:
			skipped++
		}
	}
	return
}

// TotalFailure reports whether every planned job failed. A run with zero
// planned jobs is a successful no-op, not a failure.
func (r *RunResult) TotalFailure() bool {
	succeeded, failed, _ := r.Counts()
	return failed > 0 && succeeded == 0
}
