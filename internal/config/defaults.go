package config

import "time"

// Default values match the documented option set. The extension allow-list
// mirrors the languages the generator understands well enough to document.
const (
	DefaultOutputDir      = "docs/autodoc"
	DefaultModel          = "gemini-2.0-flash"
	DefaultMaxFiles       = 50
	DefaultMaxFileSize    = 50_000
	DefaultMaxConcurrent  = 3
	DefaultCommitStrategy = "direct"
	DefaultWebhookFormat  = "slack"
	DefaultAuthorName     = "autodoc[bot]"
	DefaultAuthorEmail    = "autodoc[bot]@users.noreply.github.com"
)

// DefaultFileExtensions lists the source extensions that mark a push as
// documentation-relevant for file-derived kinds.
var DefaultFileExtensions = []string{
	".py", ".ts", ".tsx", ".js", ".jsx", ".go", ".rs", ".java", ".rb", ".php",
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = DefaultMaxFiles
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if len(cfg.FileExtensions) == 0 {
		cfg.FileExtensions = append([]string(nil), DefaultFileExtensions...)
	}
	if cfg.CommitStrategy == "" {
		cfg.CommitStrategy = DefaultCommitStrategy
	}
	if cfg.WebhookFormat == "" {
		cfg.WebhookFormat = DefaultWebhookFormat
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxConcurrent == 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.GenerationTimeout == 0 {
		cfg.GenerationTimeout = Duration(120 * time.Second)
	}
	if cfg.PublishTimeout == 0 {
		cfg.PublishTimeout = Duration(60 * time.Second)
	}
	if cfg.CommitAuthorName == "" {
		cfg.CommitAuthorName = DefaultAuthorName
	}
	if cfg.CommitAuthorEmail == "" {
		cfg.CommitAuthorEmail = DefaultAuthorEmail
	}
	if cfg.PR.APIURL == "" {
		cfg.PR.APIURL = "https://api.github.com"
	}
}
