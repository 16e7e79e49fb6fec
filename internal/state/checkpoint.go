// Package state persists the last published revision per branch as a small
// JSON checkpoint file. When the caller supplies no previous revision, the
// checkpoint provides it; absent both, the run is treated as a first run.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Checkpoint is the on-disk document.
type Checkpoint struct {
	// Revisions maps branch name to the last revision published from it.
	Revisions map[string]string `json:"revisions"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store reads and writes the checkpoint file. A Store with an empty path is a
// valid no-op store: Get always misses and Save does nothing.
type Store struct {
	path string
	mu   sync.Mutex
	cp   Checkpoint
}

// NewStore loads the checkpoint at path. A missing file yields an empty
// checkpoint, not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, cp: Checkpoint{Revisions: map[string]string{}}}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoint %s: %w", path, err)
	}
	if uerr := json.Unmarshal(data, &s.cp); uerr != nil {
		return nil, fmt.Errorf("parse checkpoint %s: %w", path, uerr)
	}
	if s.cp.Revisions == nil {
		s.cp.Revisions = map[string]string{}
	}
	return s, nil
}

// LastPublished returns the recorded revision for branch, if any.
func (s *Store) LastPublished(branch string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rev, ok := s.cp.Revisions[branch]
	return rev, ok && rev != ""
}

// RecordPublished stores the revision for branch and persists the checkpoint.
func (s *Store) RecordPublished(branch, revision string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cp.Revisions[branch] = revision
	s.cp.UpdatedAt = time.Now().UTC()
	if s.path == "" {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.cp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", s.path, err)
	}
	return nil
}
