package docplan

import (
	"path"
	"strings"
)

// Kind identifies one of the fixed documentation artifacts autodoc maintains.
type Kind string

const (
	KindArchitecture Kind = "architecture"
	KindAPI          Kind = "api"
	KindOnboarding   Kind = "onboarding"
	KindDecisions    Kind = "decisions"
	KindChangelog    Kind = "changelog"
)

// AllKinds returns every kind in canonical enumeration order. Plans, commits
// and summaries all follow this order so multi-file output is reproducible.
func AllKinds() []Kind {
	return []Kind{KindArchitecture, KindAPI, KindOnboarding, KindDecisions, KindChangelog}
}

// TriggerPolicy describes when a kind becomes stale.
//
// File-derived kinds react to source changes matching the configured extension
// allow-list. History-derived kinds depend on the commit log rather than file
// contents, so they regenerate on every push while enabled.
type TriggerPolicy struct {
	AlwaysRegenerate bool
	FileDerived      bool
}

// triggerPolicies is the single declarative table mapping kinds to policies.
// Extension-to-kind policy lives here and nowhere else.
var triggerPolicies = map[Kind]TriggerPolicy{
	KindArchitecture: {FileDerived: true},
	KindAPI:          {FileDerived: true},
	KindOnboarding:   {FileDerived: true},
	KindDecisions:    {AlwaysRegenerate: true},
	KindChangelog:    {AlwaysRegenerate: true},
}

// Policy returns the trigger policy for the kind.
func (k Kind) Policy() TriggerPolicy { return triggerPolicies[k] }

// Valid reports whether k is a member of the closed enumeration.
func (k Kind) Valid() bool {
	_, ok := triggerPolicies[k]
	return ok
}

// FileName returns the base output file name for the kind, e.g. ARCHITECTURE.md.
func (k Kind) FileName() string { return strings.ToUpper(string(k)) + ".md" }

// LanguageMode selects which natural-language renditions a run produces.
type LanguageMode string

const (
	LangEnglish  LanguageMode = "en"
	LangJapanese LanguageMode = "ja"
	LangBoth     LanguageMode = "both"
)

// Valid reports whether m is a recognized language mode.
func (m LanguageMode) Valid() bool {
	switch m {
	case LangEnglish, LangJapanese, LangBoth:
		return true
	}
	return false
}

// Languages returns the concrete languages a mode expands to, in output order.
func (m LanguageMode) Languages() []string {
	if m == LangBoth {
		return []string{"en", "ja"}
	}
	return []string{string(m)}
}

// TargetPath computes the output path for a document under outputDir. It is a
// pure function of (outputDir, kind, language mode, language): the same inputs
// always yield the same path, which is the idempotence anchor for publication.
// In "both" mode the Japanese rendition gets an "_ja" suffix; a single-language
// run always writes the base file name.
func TargetPath(outputDir string, kind Kind, mode LanguageMode, lang string) string {
	name := kind.FileName()
	if mode == LangBoth && lang == "ja" {
		name = strings.ToUpper(string(kind)) + "_ja.md"
	}
	return path.Join(outputDir, name)
}
