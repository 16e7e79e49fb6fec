package git

import (
	"fmt"
	"strings"
)

// Typed publish errors enabling structured classification without string
// parsing upstream.

type AuthError struct {
	Op, Branch string
	Err        error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s auth error on %s: %v", e.Op, e.Branch, e.Err)
}
func (e *AuthError) Unwrap() error { return e.Err }

type ConflictError struct {
	Op, Branch string
	Err        error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict on %s: %v", e.Op, e.Branch, e.Err)
}
func (e *ConflictError) Unwrap() error { return e.Err }

type RateLimitError struct {
	Op, Branch string
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited on %s: %v", e.Op, e.Branch, e.Err)
}
func (e *RateLimitError) Unwrap() error { return e.Err }

// classifyPushError wraps go-git push failures into typed variants when possible.
func classifyPushError(branch string, err error) error {
	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "authorization") || strings.Contains(l, "invalid credentials"):
		return &AuthError{Op: "push", Branch: branch, Err: err}
	case strings.Contains(l, "non-fast-forward") || strings.Contains(l, "diverged") || strings.Contains(l, "fetch first"):
		return &ConflictError{Op: "push", Branch: branch, Err: err}
	case strings.Contains(l, "rate limit") || strings.Contains(l, "too many requests"):
		return &RateLimitError{Op: "push", Branch: branch, Err: err}
	default:
		return fmt.Errorf("push %s: %w", branch, err)
	}
}
