// Package scan builds the bounded repository snapshot handed to the external
// generator: capped source file contents, well-known config files, a
// directory tree rendering and the recent commit log.
package scan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kiara-inc/autodoc/internal/logfields"
)

// SourceFile is one scanned source file with (possibly truncated) content.
type SourceFile struct {
	Path      string
	Content   string
	Size      int64
	Truncated bool
}

// ConfigFile is a project metadata file (manifest, Makefile, README, ...).
type ConfigFile struct {
	Path    string
	Content string
}

// Snapshot is the read-only view of the repository a run generates from.
type Snapshot struct {
	Root      string
	Tree      string
	Sources   []SourceFile
	Configs   []ConfigFile
	CommitLog []string
}

// Options bound the scan. OutputDir is skipped so generated documents never
// feed back into their own generation context.
type Options struct {
	MaxFiles    int
	MaxFileSize int
	Extensions  []string
	OutputDir   string
}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "__pycache__": true,
	".venv": true, "venv": true, "dist": true, "build": true,
	".next": true, ".tox": true, ".mypy_cache": true,
	".pytest_cache": true, "vendor": true,
}

// configFileNames are scanned in this order when present at the repo root.
var configFileNames = []string{
	"package.json", "pyproject.toml", "setup.py", "setup.cfg",
	"Cargo.toml", "go.mod", "pom.xml", "build.gradle",
	"Makefile", "Dockerfile", "docker-compose.yml",
	"README.md", "README.rst", ".env.example",
}

const configFileCap = 10_000

// Scanner walks a repository root and produces Snapshots.
type Scanner struct {
	root string
	opts Options
}

// NewScanner creates a scanner rooted at the repository working tree.
func NewScanner(root string, opts Options) *Scanner {
	return &Scanner{root: root, opts: opts}
}

// Scan collects sources, config files and the directory tree. The walk is
// lexical, so given identical inputs the selected file set is deterministic:
// the first MaxFiles matching files in walk order win.
func (s *Scanner) Scan() (*Snapshot, error) {
	snap := &Snapshot{Root: s.root}
	snap.Tree = directoryTree(s.root, 3, 200)
	snap.Configs = s.scanConfigs()

	outDir := filepath.ToSlash(filepath.Clean(s.opts.OutputDir))
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, rerr := filepath.Rel(s.root, p)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if skipDirs[d.Name()] || rel == outDir {
				return filepath.SkipDir
			}
			return nil
		}
		if len(snap.Sources) >= s.opts.MaxFiles {
			return filepath.SkipAll
		}
		if !s.matchesExtension(d.Name()) {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}
		content, cerr := os.ReadFile(p)
		if cerr != nil {
			slog.Debug("skipping unreadable source file", logfields.Path(rel), logfields.Error(cerr))
			return nil
		}
		sf := SourceFile{Path: rel, Size: info.Size()}
		if len(content) > s.opts.MaxFileSize {
			sf.Content = truncateToRune(string(content), s.opts.MaxFileSize) + "\n... [truncated]"
			sf.Truncated = true
		} else {
			sf.Content = string(content)
		}
		snap.Sources = append(snap.Sources, sf)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("repository scanned",
		"sources", len(snap.Sources),
		"configs", len(snap.Configs))
	return snap, nil
}

// truncateToRune caps s at max bytes without splitting a multi-byte rune,
// backing off to the nearest rune boundary.
func truncateToRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func (s *Scanner) matchesExtension(name string) bool {
	ln := strings.ToLower(name)
	for _, ext := range s.opts.Extensions {
		if strings.HasSuffix(ln, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func (s *Scanner) scanConfigs() []ConfigFile {
	configs := make([]ConfigFile, 0, len(configFileNames))
	for _, name := range configFileNames {
		content, err := os.ReadFile(filepath.Join(s.root, name))
		if err != nil {
			continue
		}
		text := string(content)
		if len(text) > configFileCap {
			text = truncateToRune(text, configFileCap) + "\n... [truncated]"
		}
		configs = append(configs, ConfigFile{Path: name, Content: text})
	}
	return configs
}
