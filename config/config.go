package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the repository root.
const DefaultFileName = ".commitrange.yaml"

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants.
const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
)

// EnvPrefix is prepended to upper-cased key names for environment lookup;
// key "log_level" maps to COMMITRANGE_LOG_LEVEL.
const EnvPrefix = "COMMITRANGE_"

// Config is the resolved commit-range configuration.
type Config struct {
	// Provider selects the parent-lookup backend when no local checkout
	// is available: "auto" (detect from remote URL), "github", "gitlab",
	// or "none" (local checkout only).
	Provider string `yaml:"provider"`

	// APIBaseURL overrides the platform API endpoint for self-hosted
	// GitHub Enterprise or GitLab instances.
	APIBaseURL string `yaml:"api_base_url"`

	// TokenEnv names the environment variable holding the API token.
	// Empty selects the conventional per-provider variables.
	TokenEnv string `yaml:"token_env"`

	// AppID, InstallationID and PrivateKeyPath switch GitHub access to
	// App authentication when all are set.
	AppID          string `yaml:"app_id"`
	InstallationID int64  `yaml:"installation_id"`
	PrivateKeyPath string `yaml:"private_key_path"`

	// Remote is the git remote consulted for URLs and history deepening.
	Remote string `yaml:"remote"`

	// FetchDepth is how much extra history to fetch when a shallow clone
	// cannot reach the oldest commit's parents. 0 unshallows fully.
	FetchDepth int `yaml:"fetch_depth"`

	// Output selects where the computed range is published:
	// "github-output" (the GITHUB_OUTPUT file) or "stdout".
	Output string `yaml:"output"`

	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text or json

	sources map[string]Source

	// Warnings collects non-fatal issues seen during resolution.
	Warnings []string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{
		Provider:   "auto",
		Remote:     "origin",
		FetchDepth: 100,
		Output:     "github-output",
		LogLevel:   "info",
		LogFormat:  "text",
		sources:    make(map[string]Source),
	}
	for _, key := range keys {
		c.sources[key.name] = SourceDefault
	}
	return c
}

// Load resolves configuration from defaults, the YAML file at path, and
// the environment. An empty path means DefaultFileName in the current
// directory; a missing file is not an error, a malformed one is.
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		path = DefaultFileName
	}
	if err := c.applyFile(path); err != nil {
		return nil, err
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	return c, nil
}

// Source returns which layer supplied a key's value.
func (c *Config) Source(key string) Source {
	return c.sources[key]
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	// Decode twice: once into the struct, once into a map to learn which
	// keys the file actually set.
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	var present map[string]any
	if err := yaml.Unmarshal(data, &present); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for name := range present {
		if _, known := c.sources[name]; known {
			c.sources[name] = SourceFile
		} else {
			c.Warnings = append(c.Warnings, fmt.Sprintf("%s: unknown key %q", path, name))
		}
	}

	return nil
}

func (c *Config) applyEnv() error {
	for _, key := range keys {
		val, ok := os.LookupEnv(key.env())
		if !ok || val == "" {
			continue
		}
		if err := key.set(c, val); err != nil {
			return fmt.Errorf("%s: %w", key.env(), err)
		}
		c.sources[key.name] = SourceEnv
	}
	return nil
}

type keySpec struct {
	name string
	set  func(*Config, string) error
}

func (k keySpec) env() string {
	return EnvPrefix + strings.ToUpper(k.name)
}

func stringKey(name string, field func(*Config) *string) keySpec {
	return keySpec{name: name, set: func(c *Config, v string) error {
		*field(c) = v
		return nil
	}}
}

func intKey(name string, field func(*Config) *int) keySpec {
	return keySpec{name: name, set: func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		*field(c) = n
		return nil
	}}
}

var keys = []keySpec{
	stringKey("provider", func(c *Config) *string { return &c.Provider }),
	stringKey("api_base_url", func(c *Config) *string { return &c.APIBaseURL }),
	stringKey("token_env", func(c *Config) *string { return &c.TokenEnv }),
	stringKey("app_id", func(c *Config) *string { return &c.AppID }),
	{name: "installation_id", set: func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		c.InstallationID = n
		return nil
	}},
	stringKey("private_key_path", func(c *Config) *string { return &c.PrivateKeyPath }),
	stringKey("remote", func(c *Config) *string { return &c.Remote }),
	intKey("fetch_depth", func(c *Config) *int { return &c.FetchDepth }),
	stringKey("output", func(c *Config) *string { return &c.Output }),
	stringKey("log_level", func(c *Config) *string { return &c.LogLevel }),
	stringKey("log_format", func(c *Config) *string { return &c.LogFormat }),
}
