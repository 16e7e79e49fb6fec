package config

import (
	"os"
	"strconv"

	"github.com/kiara-inc/autodoc/internal/docplan"
)

// applyEnvOverrides layers AUTODOC_* environment variables over the file
// values. The variable names match the original action's documented surface,
// so existing CI workflows keep working unchanged.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AUTODOC_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("AUTODOC_LANGUAGE"); v != "" {
		cfg.Language = docplan.LanguageMode(v)
	}

	envBool(&cfg.IncludeArchitecture, "AUTODOC_INCLUDE_ARCH")
	envBool(&cfg.IncludeAPIDocs, "AUTODOC_INCLUDE_API")
	envBool(&cfg.IncludeOnboarding, "AUTODOC_INCLUDE_ONBOARD")
	envBool(&cfg.IncludeDecisions, "AUTODOC_INCLUDE_DECISIONS")
	envBool(&cfg.IncludeChangelog, "AUTODOC_INCLUDE_CHANGELOG")
	envBool(&cfg.DiffMode, "AUTODOC_DIFF_MODE")

	if v := os.Getenv("AUTODOC_MAX_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFiles = n
		}
	}
	if v := os.Getenv("AUTODOC_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFileSize = n
		}
	}
	if v := os.Getenv("AUTODOC_FILE_EXTENSIONS"); v != "" {
		cfg.FileExtensions = splitExtensions(v)
	}
	if v := os.Getenv("AUTODOC_COMMIT_STRATEGY"); v != "" {
		cfg.CommitStrategy = v
	}
	if v := os.Getenv("AUTODOC_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("AUTODOC_WEBHOOK_FORMAT"); v != "" {
		cfg.WebhookFormat = v
	}
	if v := os.Getenv("AUTODOC_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("AUTODOC_STATE_FILE"); v != "" {
		cfg.StateFile = v
	}

	// Token resolution order: explicit autodoc variable, then the ambient
	// Actions token.
	if v := os.Getenv("AUTODOC_GITHUB_TOKEN"); v != "" {
		cfg.PR.Token = v
	} else if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.PR.Token = v
	}
}

func envBool(target **bool, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	b := v == "true" || v == "1"
	*target = &b
}
