package publish

// State is the terminal publication state of one run.
type State string

const (
	// StateSkipped means there was nothing to publish (no successful jobs).
	StateSkipped State = "skipped"
	// StateNoop means staging changed no bytes on disk; no commit was made.
	StateNoop State = "noop"
	// StateDirect means a commit landed on the current branch.
	StateDirect State = "direct"
	// StatePR means a branch was pushed and a pull request opened.
	StatePR State = "pr"
	// StateFailed means the commit/push/PR step failed; generated content is
	// retained on the jobs.
	StateFailed State = "failed"
)

// Outcome records how a run's successful documents were published.
type Outcome struct {
	State     State
	CommitSHA string
	Branch    string
	PRNumber  int
	PRURL     string
	// Staged lists the target paths whose bytes actually changed.
	Staged []string
	Err    string
}
