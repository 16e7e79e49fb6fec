package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// directoryTree renders a bounded directory tree for the generation context.
// Depth and line caps keep the rendering small regardless of repository size.
func directoryTree(root string, maxDepth, maxLines int) string {
	lines := []string{filepath.Base(root) + "/"}

	var walk func(dir, prefix string, depth int)
	walk = func(dir, prefix string, depth int) {
		if depth > maxDepth || len(lines) >= maxLines {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		// Directories first, each group sorted by name.
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].IsDir() != entries[j].IsDir() {
				return entries[i].IsDir()
			}
			return entries[i].Name() < entries[j].Name()
		})
		kept := entries[:0]
		for _, e := range entries {
			if e.IsDir() && skipDirs[e.Name()] {
				continue
			}
			kept = append(kept, e)
		}
		for i, e := range kept {
			if len(lines) >= maxLines {
				return
			}
			last := i == len(kept)-1
			connector := "├── "
			childPrefix := prefix + "│   "
			if last {
				connector = "└── "
				childPrefix = prefix + "    "
			}
			lines = append(lines, prefix+connector+e.Name())
			if e.IsDir() {
				walk(filepath.Join(dir, e.Name()), childPrefix, depth+1)
			}
		}
	}

	walk(root, "", 1)
	return strings.Join(lines, "\n")
}
