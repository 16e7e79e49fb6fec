package docplan

import (
	"path"
	"strings"
)

// ChangeKind describes how a path changed between two revisions.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRenamed  ChangeKind = "renamed"
)

// Change is a single changed path with its change kind. For renames Path is
// the new name.
type Change struct {
	Path string
	Kind ChangeKind
}

// ChangeSet is the ordered set of paths that differ between two revisions.
// An empty ChangeSet signals a full run (first invocation or an explicit
// full-regeneration request).
type ChangeSet struct {
	Changes []Change
}

// Empty reports whether no changes are recorded.
func (cs ChangeSet) Empty() bool { return len(cs.Changes) == 0 }

// Paths returns the changed paths in order.
func (cs ChangeSet) Paths() []string {
	out := make([]string, 0, len(cs.Changes))
	for _, c := range cs.Changes {
		out = append(out, c.Path)
	}
	return out
}

// ExcludeDir returns a copy of the ChangeSet with every path under dir
// removed. Applied to the configured output directory before classification it
// is the loop-prevention precondition: a push that only touches generated
// documents must never trigger regeneration of those documents.
func (cs ChangeSet) ExcludeDir(dir string) ChangeSet {
	dir = path.Clean(strings.TrimSuffix(dir, "/"))
	if dir == "." || dir == "" {
		return cs
	}
	kept := make([]Change, 0, len(cs.Changes))
	for _, c := range cs.Changes {
		if c.Path == dir || strings.HasPrefix(c.Path, dir+"/") {
			continue
		}
		kept = append(kept, c)
	}
	return ChangeSet{Changes: kept}
}

// HasExtension reports whether any changed path carries one of the given
// extensions (compared case-insensitively, extensions include the dot).
func (cs ChangeSet) HasExtension(exts []string) (string, bool) {
	for _, c := range cs.Changes {
		lp := strings.ToLower(c.Path)
		for _, ext := range exts {
			if ext == "" {
				continue
			}
			if strings.HasSuffix(lp, strings.ToLower(ext)) {
				return c.Path, true
			}
		}
	}
	return "", false
}
