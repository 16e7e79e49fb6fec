package config

import (
	"fmt"

	"golang.org/x/text/language"
)

// ConfigurationError marks an invalid option value. It is fatal: the run
// aborts before any external call is made.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Validate checks the resolved snapshot. Called once at the end of Load.
func (c *Config) Validate() error {
	if !c.Language.Valid() {
		return &ConfigurationError{Field: "language", Reason: fmt.Sprintf("must be one of en, ja, both (got %q)", c.Language)}
	}
	// "both" expands to concrete tags; each must be a well-formed BCP 47 tag.
	for _, lang := range c.Language.Languages() {
		if _, err := language.Parse(lang); err != nil {
			return &ConfigurationError{Field: "language", Reason: fmt.Sprintf("unparseable language tag %q: %v", lang, err)}
		}
	}
	switch c.CommitStrategy {
	case "direct", "pr":
	default:
		return &ConfigurationError{Field: "commit_strategy", Reason: fmt.Sprintf("must be direct or pr (got %q)", c.CommitStrategy)}
	}
	if c.CommitStrategy == "pr" && c.PR.Token == "" {
		return &ConfigurationError{Field: "pr", Reason: "pr strategy requires AUTODOC_GITHUB_TOKEN or GITHUB_TOKEN"}
	}
	switch c.WebhookFormat {
	case "slack", "discord":
	default:
		return &ConfigurationError{Field: "webhook_format", Reason: fmt.Sprintf("must be slack or discord (got %q)", c.WebhookFormat)}
	}
	if c.MaxFiles <= 0 {
		return &ConfigurationError{Field: "max_files", Reason: "must be positive"}
	}
	if c.MaxFileSize <= 0 {
		return &ConfigurationError{Field: "max_file_size", Reason: "must be positive"}
	}
	if c.MaxConcurrent <= 0 {
		return &ConfigurationError{Field: "max_concurrent", Reason: "must be positive"}
	}
	if c.GenerationTimeout <= 0 {
		return &ConfigurationError{Field: "generation_timeout", Reason: "must be positive"}
	}
	if c.PublishTimeout <= 0 {
		return &ConfigurationError{Field: "publish_timeout", Reason: "must be positive"}
	}
	return nil
}
