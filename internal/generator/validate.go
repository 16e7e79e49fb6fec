package generator

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// ValidateMarkdown rejects degenerate generator output before it can be
// published: the document must be non-blank and contain at least one heading
// once parsed as Markdown. Malformed output becomes a per-job generation
// failure, never a published file.
func ValidateMarkdown(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("generated document is empty")
	}

	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader([]byte(content)))

	hasHeading := false
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if _, ok := n.(*gmast.Heading); ok {
			hasHeading = true
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	if !hasHeading {
		return fmt.Errorf("generated document has no Markdown heading")
	}
	return nil
}
