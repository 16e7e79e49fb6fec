package ci

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteStepOutputsAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(path, []byte("existing=1\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	t.Setenv("GITHUB_OUTPUT", path)

	if err := WriteStepOutputs(map[string]string{"docs_generated": "3"}); err != nil {
		t.Fatalf("WriteStepOutputs: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "existing=1\n") {
		t.Error("prior content must be preserved")
	}
	if !strings.Contains(string(data), "docs_generated=3\n") {
		t.Errorf("output missing: %s", data)
	}
}

func TestWriteStepOutputsNoopWithoutEnv(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	if err := WriteStepOutputs(map[string]string{"k": "v"}); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
