package docplan

import (
	"strings"
	"testing"
)

func defaultOptions() Options {
	return Options{
		Enabled: map[Kind]bool{
			KindArchitecture: true,
			KindAPI:          true,
			KindOnboarding:   true,
			KindDecisions:    true,
			KindChangelog:    true,
		},
		DiffMode:       true,
		FileExtensions: []string{".py", ".ts", ".go"},
		OutputDir:      "docs/autodoc",
		LanguageMode:   LangEnglish,
	}
}

func TestClassifyEmptyChangeSetIsFullRun(t *testing.T) {
	cl := Classify(ChangeSet{}, defaultOptions())

	if len(cl.Triggered) != 5 {
		t.Fatalf("expected all 5 kinds triggered, got %d", len(cl.Triggered))
	}
	for k, reason := range cl.Triggered {
		if reason != ReasonFullRun {
			t.Errorf("kind %s: reason = %s, want %s", k, reason, ReasonFullRun)
		}
	}
}

func TestClassifySourceChangeTriggersEverything(t *testing.T) {
	cs := ChangeSet{Changes: []Change{{Path: "src/app.py", Kind: ChangeModified}}}
	cl := Classify(cs, defaultOptions())

	if len(cl.Triggered) != 5 {
		t.Fatalf("expected all 5 kinds triggered, got %d triggered %d skipped",
			len(cl.Triggered), len(cl.Skipped))
	}
	for _, k := range []Kind{KindArchitecture, KindAPI, KindOnboarding} {
		if !strings.HasPrefix(cl.Triggered[k], "source_change:") {
			t.Errorf("kind %s: reason = %s, want source_change prefix", k, cl.Triggered[k])
		}
	}
	for _, k := range []Kind{KindDecisions, KindChangelog} {
		if cl.Triggered[k] != ReasonHistory {
			t.Errorf("kind %s: reason = %s, want %s", k, cl.Triggered[k], ReasonHistory)
		}
	}
}

func TestClassifyOutputDirOnlyChangeTriggersNothing(t *testing.T) {
	cs := ChangeSet{Changes: []Change{
		{Path: "docs/autodoc/API.md", Kind: ChangeModified},
		{Path: "docs/autodoc/ARCHITECTURE.md", Kind: ChangeAdded},
	}}
	opts := defaultOptions()
	opts.Enabled[KindDecisions] = false
	opts.Enabled[KindChangelog] = false

	cl := Classify(cs, opts)
	if !cl.NothingToDo() {
		t.Fatalf("expected nothing to do, triggered: %v", cl.Triggered)
	}
	for _, k := range []Kind{KindArchitecture, KindAPI, KindOnboarding} {
		if cl.Skipped[k] != ReasonNoTrigger {
			t.Errorf("kind %s: skip reason = %s, want %s", k, cl.Skipped[k], ReasonNoTrigger)
		}
	}
}

func TestClassifyOutputDirOnlyNeverLoopsHistoryKinds(t *testing.T) {
	// All kinds enabled: even always-regenerate kinds stay quiet when the
	// push touched nothing but generated documents, otherwise every doc
	// commit would trigger the next run.
	cs := ChangeSet{Changes: []Change{{Path: "docs/autodoc/CHANGELOG.md", Kind: ChangeModified}}}
	cl := Classify(cs, defaultOptions())

	if !cl.NothingToDo() {
		t.Fatalf("expected nothing to do, triggered: %v", cl.Triggered)
	}
	for _, k := range AllKinds() {
		if cl.Skipped[k] != ReasonNoTrigger {
			t.Errorf("kind %s: skip reason = %s, want %s", k, cl.Skipped[k], ReasonNoTrigger)
		}
	}
}

func TestClassifyNonSourceChangeSkipsFileDerivedKinds(t *testing.T) {
	cs := ChangeSet{Changes: []Change{
		{Path: "README.md", Kind: ChangeModified},
		{Path: "docs/autodoc/API.md", Kind: ChangeModified},
	}}
	opts := defaultOptions()
	opts.Enabled[KindDecisions] = false
	opts.Enabled[KindChangelog] = false

	cl := Classify(cs, opts)
	if len(cl.Triggered) != 0 {
		t.Fatalf("expected empty trigger set, got %v", cl.Triggered)
	}
}

func TestClassifyDisabledKindAlwaysSkipped(t *testing.T) {
	opts := defaultOptions()
	opts.Enabled[KindAPI] = false

	cl := Classify(ChangeSet{}, opts)
	if _, ok := cl.Triggered[KindAPI]; ok {
		t.Fatal("disabled kind must not trigger, even on a full run")
	}
	if cl.Skipped[KindAPI] != ReasonKindDisabled {
		t.Errorf("skip reason = %s, want %s", cl.Skipped[KindAPI], ReasonKindDisabled)
	}
}

func TestClassifyDiffModeOffRegeneratesAll(t *testing.T) {
	opts := defaultOptions()
	opts.DiffMode = false
	cs := ChangeSet{Changes: []Change{{Path: "README.md", Kind: ChangeModified}}}

	cl := Classify(cs, opts)
	if len(cl.Triggered) != 5 {
		t.Fatalf("expected all kinds triggered with diff mode off, got %d", len(cl.Triggered))
	}
	for k, reason := range cl.Triggered {
		if reason != ReasonDiffDisabled {
			t.Errorf("kind %s: reason = %s, want %s", k, reason, ReasonDiffDisabled)
		}
	}
}

func TestClassifyEveryKindAppearsExactlyOnce(t *testing.T) {
	cs := ChangeSet{Changes: []Change{{Path: "main.go", Kind: ChangeAdded}}}
	cl := Classify(cs, defaultOptions())

	for _, k := range AllKinds() {
		_, triggered := cl.Triggered[k]
		_, skipped := cl.Skipped[k]
		if triggered == skipped {
			t.Errorf("kind %s: triggered=%v skipped=%v, want exactly one", k, triggered, skipped)
		}
	}
}

func TestExcludeDirRemovesOutputPaths(t *testing.T) {
	cs := ChangeSet{Changes: []Change{
		{Path: "docs/autodoc/API.md", Kind: ChangeModified},
		{Path: "docs/autodocs-unrelated/file.py", Kind: ChangeModified},
		{Path: "src/app.py", Kind: ChangeModified},
	}}
	got := cs.ExcludeDir("docs/autodoc").Paths()
	want := []string{"docs/autodocs-unrelated/file.py", "src/app.py"}
	if len(got) != len(want) {
		t.Fatalf("ExcludeDir paths = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("path[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestHasExtensionCaseInsensitive(t *testing.T) {
	cs := ChangeSet{Changes: []Change{{Path: "src/Main.PY", Kind: ChangeAdded}}}
	if p, ok := cs.HasExtension([]string{".py"}); !ok || p != "src/Main.PY" {
		t.Errorf("HasExtension = (%s, %v), want match on src/Main.PY", p, ok)
	}
	if _, ok := cs.HasExtension([]string{".rs"}); ok {
		t.Error("HasExtension matched an absent extension")
	}
}
