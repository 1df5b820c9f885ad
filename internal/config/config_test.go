package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "g-secret")
	path := writeConfig(t, `
db_path: /tmp/compass-test.db
session_ttl: 12h
log:
  level: debug
llm:
  provider: gemini
  timeout: 45s
  retry:
    max_attempts: 5
    initial_wait: 250ms
  gemini:
    api_key: ${TEST_GEMINI_KEY}
    model: gemini-2.5-flash
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/compass-test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want 12h", cfg.SessionTTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.LLM.Gemini.APIKey != "g-secret" {
		t.Errorf("Gemini.APIKey = %q, want expanded env value", cfg.LLM.Gemini.APIKey)
	}
	if cfg.LLM.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q", cfg.LLM.Gemini.Model)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.LLM.Retry.MaxAttempts != 5 || cfg.LLM.Retry.InitialWait != 250*time.Millisecond {
		t.Errorf("Retry = %+v", cfg.LLM.Retry)
	}
	if cfg.LLM.Retry.MaxWait != 10*time.Second {
		t.Errorf("unset MaxWait should keep default, got %v", cfg.LLM.Retry.MaxWait)
	}
	if cfg.LLM.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unset OpenAI model should keep default, got %q", cfg.LLM.OpenAI.Model)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid yaml", "log: [broken", "parse config"},
		{"bad duration", "session_ttl: forever", "session_ttl"},
		{"bad level", "log:\n  level: loud", "log.level"},
		{"bad provider", "llm:\n  provider: watson", "llm.provider"},
		{"bad timeout", "llm:\n  timeout: soon", "llm.timeout"},
		{"bad retry wait", "llm:\n  retry:\n    max_wait: x", "llm.retry.max_wait"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestResolve_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("COMPASS_CONFIG", "")
	t.Setenv("COMPASS_LLM_PROVIDER", "")
	t.Setenv("COMPASS_LOG_LEVEL", "")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini default", cfg.LLM.Provider)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
}

func TestResolve_ExplicitMissingFileFails(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: openai\n  openai:\n    api_key: from-file\n")
	t.Setenv("COMPASS_CONFIG", path)
	t.Setenv("COMPASS_LLM_PROVIDER", "mock")
	t.Setenv("COMPASS_OPENAI_API_KEY", "from-env")
	t.Setenv("COMPASS_LOG_LEVEL", "warn")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.LLM.Provider != "mock" {
		t.Errorf("Provider = %q, want mock", cfg.LLM.Provider)
	}
	if cfg.LLM.OpenAI.APIKey != "from-env" {
		t.Errorf("OpenAI.APIKey = %q, want from-env", cfg.LLM.OpenAI.APIKey)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}
