// Package generator defines the external content-generation boundary and its
// Gemini-backed implementation. Cross-cutting concerns (timeouts, isolation
// between jobs, cost control) live in the coordinator, not here.
package generator

import (
	"context"

	"github.com/kiara-inc/autodoc/internal/docplan"
)

// Request is the bounded generation context for one document: a system role
// description and the assembled prompt. The prompt already embeds file
// contents, the directory tree and the commit log as needed by the kind.
type Request struct {
	Kind   docplan.Kind
	Lang   string
	System string
	Prompt string
}

// Generator is the external AI service boundary: one call, one document, text
// or error. Implementations must honor ctx cancellation; the caller attaches
// the per-call timeout. Each call is billed, so implementations never retry.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
