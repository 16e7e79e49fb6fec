package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# autodoc configuration
# Every key is optional; AUTODOC_* environment variables override file values.

output_dir: docs/autodoc

# en, ja, or both (both writes an additional *_ja.md variant per document)
language: en

include_architecture: true
include_api_docs: true
include_onboarding: true
include_decisions: true
include_changelog: true

# When true, only document kinds implicated by the push's changed files are
# regenerated. Set false to force a full regeneration on every run.
diff_mode: true

max_files: 50
max_file_size: 50000
file_extensions: [".py", ".ts", ".tsx", ".js", ".jsx", ".go", ".rs", ".java", ".rb", ".php"]

# direct: commit generated docs to the current branch
# pr:     push a new branch and open a pull request (requires GITHUB_TOKEN)
commit_strategy: direct

# Optional run summary webhook (slack or discord payload shape).
# webhook_url: https://hooks.slack.com/services/...
webhook_format: slack

model: gemini-2.0-flash
max_concurrent: 3
generation_timeout: 120s
publish_timeout: 60s

# Optional checkpoint file recording the last published revision per branch.
# state_file: .autodoc-state.json

commit_author_name: autodoc[bot]
commit_author_email: autodoc[bot]@users.noreply.github.com
`

// Init writes a commented example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
