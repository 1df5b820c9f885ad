// Package config loads the optional compass YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/compasshq/compass/internal/llm"
)

// Config is the root configuration for compass.
type Config struct {
	// DBPath overrides the database location. Empty means the default.
	DBPath string
	Log    LogConfig
	LLM    llm.Config
	// SessionTTL is how long a sign-in stays valid.
	SessionTTL time.Duration
	// Path is the file the configuration was read from, empty when no
	// file was found.
	Path string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string // debug, info, warn, error
	File  string // defaults to <data dir>/compass.log
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	DBPath     string       `yaml:"db_path"`
	Log        rawLogConfig `yaml:"log"`
	LLM        rawLLMConfig `yaml:"llm"`
	SessionTTL string       `yaml:"session_ttl"`
}

type rawLogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type rawLLMConfig struct {
	Provider   string            `yaml:"provider"`
	Timeout    string            `yaml:"timeout"`
	Retry      rawRetryConfig    `yaml:"retry"`
	Gemini     rawProviderConfig `yaml:"gemini"`
	OpenAI     rawProviderConfig `yaml:"openai"`
	Anthropic  rawProviderConfig `yaml:"anthropic"`
	OpenRouter rawProviderConfig `yaml:"openrouter"`
}

type rawProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type rawRetryConfig struct {
	MaxAttempts int     `yaml:"max_attempts"`
	InitialWait string  `yaml:"initial_wait"`
	MaxWait     string  `yaml:"max_wait"`
	Multiplier  float64 `yaml:"multiplier"`
}

const defaultSessionTTL = 30 * 24 * time.Hour

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log:        LogConfig{Level: "info"},
		LLM:        llm.DefaultConfig(),
		SessionTTL: defaultSessionTTL,
	}
}

// Resolve finds and loads the configuration file, then overlays COMPASS_*
// environment variables. explicit is the --config flag value; when empty,
// COMPASS_CONFIG and then $XDG_CONFIG_HOME/compass/config.yaml are tried.
// A missing default file is not an error; a missing explicit one is.
func Resolve(explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		path = os.Getenv("COMPASS_CONFIG")
	}
	required := path != ""
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
	case !required && errors.Is(err, fs.ErrNotExist):
		cfg = Default()
	default:
		return nil, err
	}

	cfg.LLM = llm.ApplyEnv(cfg.LLM)
	if v := os.Getenv("COMPASS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, cfg.validate()
}

// DefaultPath returns $XDG_CONFIG_HOME/compass/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "compass", "config.yaml"), nil
}

// Load reads and parses the YAML config file at path and returns Config.
// Environment variables referenced as ${VAR} are expanded first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.Path = path
	cfg.DBPath = raw.DBPath
	if raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	cfg.Log.File = raw.Log.File

	if raw.SessionTTL != "" {
		if cfg.SessionTTL, err = time.ParseDuration(raw.SessionTTL); err != nil {
			return nil, fmt.Errorf("parse session_ttl %q: %w", raw.SessionTTL, err)
		}
	}

	if err := applyLLM(&cfg.LLM, raw.LLM); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyLLM(dst *llm.Config, raw rawLLMConfig) error {
	if raw.Provider != "" {
		dst.Provider = raw.Provider
	}

	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("parse llm.timeout %q: %w", raw.Timeout, err)
		}
		dst.Timeout = d
	}

	if raw.Retry.MaxAttempts != 0 {
		dst.Retry.MaxAttempts = raw.Retry.MaxAttempts
	}
	if raw.Retry.Multiplier != 0 {
		dst.Retry.Multiplier = raw.Retry.Multiplier
	}
	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"llm.retry.initial_wait", raw.Retry.InitialWait, &dst.Retry.InitialWait},
		{"llm.retry.max_wait", raw.Retry.MaxWait, &dst.Retry.MaxWait},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s %q: %w", d.name, d.raw, err)
		}
		*d.dst = v
	}

	override(&dst.Gemini.APIKey, raw.Gemini.APIKey)
	override(&dst.Gemini.Model, raw.Gemini.Model)
	override(&dst.OpenAI.APIKey, raw.OpenAI.APIKey)
	override(&dst.OpenAI.Model, raw.OpenAI.Model)
	override(&dst.OpenAI.BaseURL, raw.OpenAI.BaseURL)
	override(&dst.Anthropic.APIKey, raw.Anthropic.APIKey)
	override(&dst.Anthropic.Model, raw.Anthropic.Model)
	override(&dst.OpenRouter.APIKey, raw.OpenRouter.APIKey)
	override(&dst.OpenRouter.Model, raw.OpenRouter.Model)
	override(&dst.OpenRouter.BaseURL, raw.OpenRouter.BaseURL)
	return nil
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// validate checks field values that parsing alone cannot catch. Provider
// keys are checked later, when a provider is actually built.
func (c *Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch c.LLM.Provider {
	case "gemini", "openai", "anthropic", "openrouter", "mock":
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.LLM.Retry.MaxAttempts < 0 {
		return fmt.Errorf("llm.retry.max_attempts must not be negative")
	}
	return nil
}
