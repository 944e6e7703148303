package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// ValidationMode selects the parameter comparison algorithm.
type ValidationMode string

const (
	// ModeExact requires before/after to equal the expected pair.
	ModeExact ValidationMode = "exact"
	// ModeAny requires before to differ from after.
	ModeAny ValidationMode = "any"
	// ModeRange requires before to fall within a configured range.
	ModeRange ValidationMode = "range"
)

// DefaultConfigPath is where the policy file is looked up relative to the working directory.
const DefaultConfigPath = ".verifier/config.yaml"

// EnvironmentConfig names the environment variables credentials are read from.
type EnvironmentConfig struct {
	// TokenVar is the variable holding the API token
	TokenVar string `yaml:"token_var"`

	// OwnerVar is the variable holding the repository owner
	OwnerVar string `yaml:"owner_var"`

	// RepoVar is the variable holding the repository name
	RepoVar string `yaml:"repo_var"`

	// DefaultOwner is used when OwnerVar is unset
	DefaultOwner string `yaml:"default_owner"`

	// DefaultRepo is used when RepoVar is unset
	DefaultRepo string `yaml:"default_repo"`

	// EnvFile is an optional dotenv file consulted after the process environment
	EnvFile string `yaml:"env_file"`
}

// RemoteConfig configures the live API client.
type RemoteConfig struct {
	// BaseURL is the REST API root (no trailing /repos)
	BaseURL string `yaml:"base_url"`

	// Timeout bounds every request
	Timeout time.Duration `yaml:"timeout"`
}

// AnalysisConfig locates the analysis document in the repository.
type AnalysisConfig struct {
	// FilePath is the repository path of the document
	FilePath string `yaml:"file_path"`

	// Ref is an optional branch, tag or commit for the contents lookup
	Ref string `yaml:"ref"`

	// Format is the document encoding; only "json" is supported
	Format string `yaml:"format"`
}

// ExpectedChange is the before/after pair required in exact mode.
type ExpectedChange struct {
	Before interface{} `yaml:"before"`
	After  interface{} `yaml:"after"`
}

// ValueRange bounds a parameter's before value in range mode (inclusive).
type ValueRange struct {
	MinBefore float64 `yaml:"min_before"`
	MaxBefore float64 `yaml:"max_before"`
}

// ParameterPolicy drives the parameter validator.
type ParameterPolicy struct {
	Required []string                  `yaml:"required"`
	Mode     ValidationMode            `yaml:"mode"`
	Expected map[string]ExpectedChange `yaml:"expected"`
	Ranges   map[string]ValueRange     `yaml:"ranges"`
}

// IssuePolicy drives the issue validator.
type IssuePolicy struct {
	// Keywords are matched case-insensitively against title and body
	Keywords []string `yaml:"keywords"`

	// IncludePullRequests keeps pull requests in the expected issue set
	IncludePullRequests Toggle `yaml:"include_pull_requests"`

	// AllowEmpty accepts an empty related issue list
	AllowEmpty Toggle `yaml:"allow_empty"`

	// StrictMatch turns an issue set mismatch into a failure
	StrictMatch Toggle `yaml:"strict_match"`

	// PageSize is the per_page value used when listing issues
	PageSize int `yaml:"page_size"`

	// MaxPages caps the listing walk
	MaxPages int `yaml:"max_pages"`
}

// ChecksConfig enables checks and holds shared check settings.
type ChecksConfig struct {
	Commit     Toggle `yaml:"commit"`
	Parameters Toggle `yaml:"parameters"`
	Issues     Toggle `yaml:"issues"`

	// DateFormat is the regular expression commit_date must match
	DateFormat string `yaml:"date_format"`
}

// Config is the verification policy. It is built once at startup and passed
// by pointer to constructors; nothing mutates it afterwards.
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a run log file when non-empty
	LogDir string `yaml:"log_dir"`

	Environment EnvironmentConfig `yaml:"environment"`
	Remote      RemoteConfig      `yaml:"remote"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Parameters  ParameterPolicy   `yaml:"parameters"`
	Issues      IssuePolicy       `yaml:"issues"`
	Checks      ChecksConfig      `yaml:"checks"`
}

// DefaultConfig returns the built-in policy for the sample analysis.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		LogDir:   "",
		Environment: EnvironmentConfig{
			TokenVar:     "MCP_GITHUB_TOKEN",
			OwnerVar:     "REPO_OWNER",
			RepoVar:      "REPO_NAME",
			DefaultOwner: "example-owner",
			DefaultRepo:  "example-repo",
			EnvFile:      ".env",
		},
		Remote: RemoteConfig{
			BaseURL: "https://api.github.com",
			Timeout: 10 * time.Second,
		},
		Analysis: AnalysisConfig{
			FilePath: "analysis_results.json",
			Format:   "json",
		},
		Parameters: ParameterPolicy{
			Required: []string{
				"micro_batch_size_per_device_for_update",
				"micro_batch_size_per_device_for_experience",
			},
			Mode: ModeExact,
			Expected: map[string]ExpectedChange{
				"micro_batch_size_per_device_for_update":     {Before: 4, After: 2},
				"micro_batch_size_per_device_for_experience": {Before: 8, After: 4},
			},
			Ranges: map[string]ValueRange{
				"micro_batch_size_per_device_for_update": {MinBefore: 1, MaxBefore: 16},
			},
		},
		Issues: IssuePolicy{
			Keywords:            []string{"oom", "memory", "显存"},
			IncludePullRequests: false,
			AllowEmpty:          false,
			StrictMatch:         true,
			PageSize:            100,
			MaxPages:            100,
		},
		Checks: ChecksConfig{
			Commit:     true,
			Parameters: true,
			Issues:     true,
			DateFormat: `^\d{4}-\d{2}-\d{2}$`,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// yaml.v3 merges into existing maps, so a policy that declares its own
	// expected values or ranges must start from empty maps.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if params, ok := rawMap["parameters"].(map[string]interface{}); ok {
		if _, exists := params["expected"]; exists {
			cfg.Parameters.Expected = nil
		}
		if _, exists := params["ranges"]; exists {
			cfg.Parameters.Ranges = nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .verifier/config.yaml in the specified directory.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigPath))
}

// Validate validates the configuration values.
// The parameter mode is deliberately not checked here: an unknown mode is
// reported by the parameter check as a policy fault.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Environment.TokenVar == "" {
		return fmt.Errorf("environment.token_var cannot be empty")
	}

	if c.Remote.Timeout < 0 {
		return fmt.Errorf("remote.timeout must be >= 0, got %v", c.Remote.Timeout)
	}

	if c.Analysis.FilePath == "" {
		return fmt.Errorf("analysis.file_path cannot be empty")
	}
	if c.Analysis.Format == "" {
		return fmt.Errorf("analysis.format cannot be empty")
	}

	if c.Issues.PageSize <= 0 {
		return fmt.Errorf("issues.page_size must be > 0, got %d", c.Issues.PageSize)
	}
	if c.Issues.MaxPages <= 0 {
		return fmt.Errorf("issues.max_pages must be > 0, got %d", c.Issues.MaxPages)
	}

	if _, err := regexp.Compile(c.Checks.DateFormat); err != nil {
		return fmt.Errorf("invalid checks.date_format %q: %w", c.Checks.DateFormat, err)
	}

	for name, r := range c.Parameters.Ranges {
		if r.MinBefore > r.MaxBefore {
			return fmt.Errorf("parameters.ranges.%s: min_before %v exceeds max_before %v", name, r.MinBefore, r.MaxBefore)
		}
	}

	return nil
}
