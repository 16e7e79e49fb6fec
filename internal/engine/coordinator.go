package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kiara-inc/autodoc/internal/docplan"
	"github.com/kiara-inc/autodoc/internal/generator"
	"github.com/kiara-inc/autodoc/internal/logfields"
	"github.com/kiara-inc/autodoc/internal/scan"
)

// Coordinator runs generation for the planned jobs. Jobs are independent:
// they share no mutable state, run concurrently up to a limit that bounds
// external-call load, and one job's failure never touches its siblings.
// There are no retries; every call is billed.
type Coordinator struct {
	gen     generator.Generator
	limit   int
	timeout time.Duration
}

// NewCoordinator creates a coordinator with a concurrency limit and a
// per-call timeout.
func NewCoordinator(gen generator.Generator, limit int, timeout time.Duration) *Coordinator {
	if limit < 1 {
		limit = 1
	}
	return &Coordinator{gen: gen, limit: limit, timeout: timeout}
}

// Generate moves every pending job to a terminal status. Completion order is
// irrelevant; callers consume jobs in plan order afterwards.
func (c *Coordinator) Generate(ctx context.Context, jobs []*docplan.Job, snap *scan.Snapshot) {
	work := make(chan *docplan.Job)
	var wg sync.WaitGroup

	workers := c.limit
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range work {
				c.generateOne(ctx, job, snap)
			}
		}()
	}

	for _, j := range jobs {
		if j.Status == docplan.StatusPending {
			work <- j
		}
	}
	close(work)
	wg.Wait()
}

// generateOne performs exactly one external call for the job and records the
// terminal status. Each job is owned by a single worker, so mutation needs no
// locking.
func (c *Coordinator) generateOne(ctx context.Context, job *docplan.Job, snap *scan.Snapshot) {
	start := time.Now()
	req := generator.BuildRequest(job.Kind, job.Lang, snap)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.gen.Generate(callCtx, req)
	if err != nil {
		job.MarkFailed(err.Error())
		slog.Warn("document generation failed",
			logfields.Kind(string(job.Kind)),
			logfields.Lang(job.Lang),
			logfields.Error(err))
		return
	}
	if verr := generator.ValidateMarkdown(text); verr != nil {
		job.MarkFailed(verr.Error())
		slog.Warn("generated document rejected",
			logfields.Kind(string(job.Kind)),
			logfields.Lang(job.Lang),
			logfields.Error(verr))
		return
	}

	// Normalize the trailing newline so repeated runs are byte-stable.
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}
	job.MarkSucceeded([]byte(text))
	slog.Info("document generated",
		logfields.Kind(string(job.Kind)),
		logfields.Lang(job.Lang),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}
