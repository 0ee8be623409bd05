// Package config loads cogniplexity's project settings the way the
// reference CLI loads its own: viper merges environment variables and an
// optional project file over built-in defaults, which are used as-is when no
// file is present. Command-line flags are applied on top by the CLI, not here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	cogerrors "github.com/rohaquinlop/cogniplexity/internal/errors"
)

// Config is the complete set of knobs the CLI and engine read.
type Config struct {
	Threshold        uint32   `json:"threshold" mapstructure:"threshold" toml:"threshold"`
	Languages        []string `json:"languages" mapstructure:"languages" toml:"languages"`
	Exclude          []string `json:"exclude" mapstructure:"exclude" toml:"exclude"`
	RespectGitignore bool     `json:"respectGitignore" mapstructure:"respectGitignore" toml:"respect_gitignore"`
	Format           string   `json:"format" mapstructure:"format" toml:"format"`
	Sort             string   `json:"sort" mapstructure:"sort" toml:"sort"`
	Limit            int      `json:"limit" mapstructure:"limit" toml:"limit"`
	Logging          Logging  `json:"logging" mapstructure:"logging" toml:"logging"`
}

// Logging mirrors the structured logger's own Config shape. The CLI takes its
// log level from Level; its log format follows the top-level Format, so
// Logging.Format is loaded but not read by any command.
type Logging struct {
	Format string `json:"format" mapstructure:"format" toml:"format"`
	Level  string `json:"level" mapstructure:"level" toml:"level"`
}

// DefaultConfig returns cogniplexity's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Threshold:        15,
		Languages:        []string{"python", "c", "cpp", "javascript", "typescript"},
		Exclude:          []string{"node_modules", "vendor", "dist", "build", ".git"},
		RespectGitignore: true,
		Format:           "human",
		Sort:             "complexity",
		Limit:            0,
		Logging: Logging{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from a .cogniplexity file (json, yaml, or
// toml, whichever viper finds first) rooted at repoRoot, falling back to
// DefaultConfig when none exists. Environment variables prefixed
// COGNIPLEXITY_ override file values, matching the CLI's flag-binding
// convention.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("threshold", def.Threshold)
	v.SetDefault("languages", def.Languages)
	v.SetDefault("exclude", def.Exclude)
	v.SetDefault("respectGitignore", def.RespectGitignore)
	v.SetDefault("format", def.Format)
	v.SetDefault("sort", def.Sort)
	v.SetDefault("limit", def.Limit)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetConfigName(".cogniplexity")
	v.AddConfigPath(repoRoot)
	v.SetEnvPrefix("COGNIPLEXITY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, cogerrors.Wrap(cogerrors.InvalidConfig, "reading project config", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cogerrors.Wrap(cogerrors.InvalidConfig, "decoding project config", err)
	}

	return &cfg, cfg.Validate()
}

// LoadTOMLFile decodes an explicit TOML config path with BurntSushi/toml,
// which gives line-numbered decode errors that viper's own TOML path does not
// surface. No command calls it; the CLI loads configuration via LoadConfig.
func LoadTOMLFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, cogerrors.Wrap(cogerrors.InvalidConfig, fmt.Sprintf("parsing %s", path), err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, cogerrors.New(cogerrors.InvalidConfig, fmt.Sprintf("unknown keys in %s: %v", path, undecoded))
	}
	return cfg, cfg.Validate()
}

// Save writes the configuration as JSON to <repoRoot>/.cogniplexity.json.
func (c *Config) Save(repoRoot string) error {
	return writeJSON(filepath.Join(repoRoot, ".cogniplexity.json"), c)
}

// Validate rejects settings the engine and CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Format {
	case "json", "human", "csv":
	default:
		return &ValidationError{Field: "format", Message: "must be one of json, human, csv"}
	}
	switch c.Sort {
	case "complexity", "name":
	default:
		return &ValidationError{Field: "sort", Message: "must be one of complexity, name"}
	}
	if c.Limit < 0 {
		return &ValidationError{Field: "limit", Message: "must be >= 0"}
	}
	return nil
}

// ValidationError names the offending field, mirroring the reference CLI's
// own config error shape.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

func writeJSON(path string, v *Config) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
