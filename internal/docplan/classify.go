package docplan

import (
	"fmt"
	"log/slog"
)

// Selection reason constants. Kept as constants to prevent string drift
// between classifier, plan, summary and tests.
const (
	ReasonFullRun      = "full_run"           // empty ChangeSet (first or forced run)
	ReasonDiffDisabled = "diff_mode_disabled" // diff mode off, everything regenerates
	ReasonHistory      = "history_derived"    // always-regenerate kind
	ReasonKindDisabled = "kind_disabled"
	ReasonNoTrigger    = "no_matching_changes"
)

// Options is the classifier's view of the configuration. The caller (config
// package) translates its snapshot into this narrow form so classification
// stays a pure function over plain data.
type Options struct {
	Enabled        map[Kind]bool
	DiffMode       bool
	FileExtensions []string
	OutputDir      string
	LanguageMode   LanguageMode
}

// Classification maps each triggered kind to the reason it was selected, and
// each untriggered kind to the reason it was skipped. Every member of the
// enumeration appears in exactly one of the two maps.
type Classification struct {
	Triggered map[Kind]string
	Skipped   map[Kind]string
}

// Kinds returns the triggered kinds in canonical enumeration order.
func (c Classification) Kinds() []Kind {
	out := make([]Kind, 0, len(c.Triggered))
	for _, k := range AllKinds() {
		if _, ok := c.Triggered[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// NothingToDo reports the designed zero-cost outcome: no kind triggered.
// This is a normal terminal state, distinct from any error.
func (c Classification) NothingToDo() bool { return len(c.Triggered) == 0 }

// Classify maps a ChangeSet to the set of document kinds requiring
// regeneration. The ChangeSet must already have the output directory excluded
// (see ChangeSet.ExcludeDir); Classify applies it again defensively so a
// misordered caller cannot reintroduce the feedback loop.
func Classify(cs ChangeSet, opts Options) Classification {
	// An originally empty ChangeSet means "no diff available" and widens to a
	// full run. A ChangeSet that only becomes empty after excluding the output
	// directory is the opposite: the push touched nothing but generated
	// documents, and regenerating from it would loop forever.
	fullRun := cs.Empty()
	cs = cs.ExcludeDir(opts.OutputDir)

	cl := Classification{
		Triggered: make(map[Kind]string),
		Skipped:   make(map[Kind]string),
	}

	for _, k := range AllKinds() {
		if !opts.Enabled[k] {
			cl.Skipped[k] = ReasonKindDisabled
			continue
		}
		switch {
		case !opts.DiffMode:
			cl.Triggered[k] = ReasonDiffDisabled
		case fullRun:
			cl.Triggered[k] = ReasonFullRun
		case cs.Empty():
			cl.Skipped[k] = ReasonNoTrigger
		case k.Policy().AlwaysRegenerate:
			cl.Triggered[k] = ReasonHistory
		case k.Policy().FileDerived:
			if p, ok := cs.HasExtension(opts.FileExtensions); ok {
				cl.Triggered[k] = fmt.Sprintf("source_change:%s", p)
			} else {
				cl.Skipped[k] = ReasonNoTrigger
			}
		default:
			cl.Skipped[k] = ReasonNoTrigger
		}
	}

	slog.Debug("classification complete",
		"triggered", len(cl.Triggered),
		"skipped", len(cl.Skipped),
		"changes", len(cs.Changes))
	return cl
}
