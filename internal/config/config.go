package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kiara-inc/autodoc/internal/docplan"
)

// Config is the immutable per-run option snapshot. It is resolved once at
// startup (file, then AUTODOC_* environment overrides, then defaults and
// validation) and never mutated afterwards.
type Config struct {
	OutputDir string               `yaml:"output_dir"`
	Language  docplan.LanguageMode `yaml:"language"`

	IncludeArchitecture *bool `yaml:"include_architecture"`
	IncludeAPIDocs      *bool `yaml:"include_api_docs"`
	IncludeOnboarding   *bool `yaml:"include_onboarding"`
	IncludeDecisions    *bool `yaml:"include_decisions"`
	IncludeChangelog    *bool `yaml:"include_changelog"`

	DiffMode       *bool    `yaml:"diff_mode"`
	MaxFiles       int      `yaml:"max_files"`
	MaxFileSize    int      `yaml:"max_file_size"`
	FileExtensions []string `yaml:"file_extensions"`

	CommitStrategy string `yaml:"commit_strategy"`
	WebhookURL     string `yaml:"webhook_url"`
	WebhookFormat  string `yaml:"webhook_format"`

	Model             string   `yaml:"model"`
	MaxConcurrent     int      `yaml:"max_concurrent"`
	GenerationTimeout Duration `yaml:"generation_timeout"`
	PublishTimeout    Duration `yaml:"publish_timeout"`

	StateFile string `yaml:"state_file"`

	CommitAuthorName  string `yaml:"commit_author_name"`
	CommitAuthorEmail string `yaml:"commit_author_email"`

	PR PRConfig `yaml:"pr"`
}

// PRConfig holds pull-request strategy settings. The API token is never read
// from the config file; it comes from the environment only.
type PRConfig struct {
	BaseBranch string `yaml:"base_branch,omitempty"`
	APIURL     string `yaml:"api_url,omitempty"`

	// Token is populated from AUTODOC_GITHUB_TOKEN or GITHUB_TOKEN.
	Token string `yaml:"-"`
}

// Duration wraps time.Duration with YAML string parsing ("120s", "2m").
type Duration time.Duration

// UnmarshalYAML parses a duration string or a bare integer of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		if parsed, perr := time.ParseDuration(s); perr == nil {
			*d = Duration(parsed)
			return nil
		}
	}
	var secs int
	if err := value.Decode(&secs); err != nil {
		return fmt.Errorf("invalid duration value")
	}
	*d = Duration(time.Duration(secs) * time.Second)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load resolves the configuration: optional .env file, YAML config file (a
// missing file is not an error, the defaults describe a complete run),
// environment overrides, defaults, validation.
func Load(configPath string) (*Config, error) {
	// Existing process environment always wins over .env contents.
	_ = godotenv.Load()

	cfg := &Config{}
	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if uerr := yaml.Unmarshal([]byte(expanded), cfg); uerr != nil {
			return nil, &ConfigurationError{Field: "file", Reason: fmt.Sprintf("parse %s: %v", configPath, uerr)}
		}
	} else if !os.IsNotExist(err) {
		return nil, &ConfigurationError{Field: "file", Reason: fmt.Sprintf("read %s: %v", configPath, err)}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Enabled reports whether the given kind is switched on.
func (c *Config) Enabled(k docplan.Kind) bool {
	flag := map[docplan.Kind]*bool{
		docplan.KindArchitecture: c.IncludeArchitecture,
		docplan.KindAPI:          c.IncludeAPIDocs,
		docplan.KindOnboarding:   c.IncludeOnboarding,
		docplan.KindDecisions:    c.IncludeDecisions,
		docplan.KindChangelog:    c.IncludeChangelog,
	}[k]
	return flag == nil || *flag
}

// DiffModeOn reports whether diff-based selective regeneration is active.
func (c *Config) DiffModeOn() bool { return c.DiffMode == nil || *c.DiffMode }

// PlanOptions translates the snapshot into the classifier's narrow view.
func (c *Config) PlanOptions() docplan.Options {
	enabled := make(map[docplan.Kind]bool, len(docplan.AllKinds()))
	for _, k := range docplan.AllKinds() {
		enabled[k] = c.Enabled(k)
	}
	return docplan.Options{
		Enabled:        enabled,
		DiffMode:       c.DiffModeOn(),
		FileExtensions: c.FileExtensions,
		OutputDir:      c.OutputDir,
		LanguageMode:   c.Language,
	}
}

func splitExtensions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, p)
	}
	return out
}
