package docplan

// JobStatus is the lifecycle state of a DocumentJob. Terminal statuses
// (succeeded, failed, skipped) are never overwritten.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusSucceeded JobStatus = "succeeded"
	StatusFailed    JobStatus = "failed"
	StatusSkipped   JobStatus = "skipped"
)

// Job is one planned document: a (kind, language) pair with its selection
// reason, lifecycle status and, once generated, its content and target path.
// The classifier creates jobs, the generation coordinator moves them to a
// terminal status, and the publication manager and notifier only read them.
type Job struct {
	Kind       Kind
	Lang       string
	Reason     string
	Status     JobStatus
	Content    []byte
	TargetPath string

	// FailureReason carries the human-readable explanation when Status is
	// failed or skipped.
	FailureReason string
}

// Terminal reports whether the job reached a final status.
func (j *Job) Terminal() bool { return j.Status != StatusPending }

// MarkSucceeded records generated content. No-op once terminal.
func (j *Job) MarkSucceeded(content []byte) {
	if j.Terminal() {
		return
	}
	j.Content = content
	j.Status = StatusSucceeded
}

// MarkFailed records a per-job failure. No-op once terminal.
func (j *Job) MarkFailed(reason string) {
	if j.Terminal() {
		return
	}
	j.FailureReason = reason
	j.Status = StatusFailed
}
