// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers TOML loading, env var expansion, validation, and defaults

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
[backend]
url = "https://assistant.example.edu"

[chat]
history_path = "/tmp/edassist/history.db"

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.URL != "https://assistant.example.edu" {
		t.Errorf("Backend.URL = %q, want %q", cfg.Backend.URL, "https://assistant.example.edu")
	}
	if cfg.Chat.HistoryPath != "/tmp/edassist/history.db" {
		t.Errorf("Chat.HistoryPath = %q, want %q", cfg.Chat.HistoryPath, "/tmp/edassist/history.db")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_EDASSIST_URL", "http://backend.internal:8000")

	path := writeConfig(t, `
[backend]
url = "${TEST_EDASSIST_URL}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend.URL != "http://backend.internal:8000" {
		t.Errorf("Backend.URL = %q, want expanded env value", cfg.Backend.URL)
	}
}

func TestLoad_MissingBackendURL(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "info"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for missing backend.url")
	}
	if !strings.Contains(err.Error(), "backend.url is required") {
		t.Errorf("error = %v, want backend.url mention", err)
	}
}

func TestLoad_RejectsNonHTTPScheme(t *testing.T) {
	path := writeConfig(t, `
[backend]
url = "ftp://assistant.example.edu"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for ftp scheme")
	}
}

func TestLoad_RejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, `
[backend]
url = "http://localhost:8000"

[logging]
level = "verbose"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for unknown log level")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("Backend.URL = %q, want default", cfg.Backend.URL)
	}
	if cfg.LogLevel() != "info" {
		t.Errorf("LogLevel() = %q, want info", cfg.LogLevel())
	}
}

func TestLoadOrDefault_EnvOverride(t *testing.T) {
	t.Setenv("EDASSIST_BACKEND_URL", "https://override.example.edu")
	path := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Backend.URL != "https://override.example.edu" {
		t.Errorf("Backend.URL = %q, want env override", cfg.Backend.URL)
	}
}

func TestLoadOrDefault_BadFileStillFails(t *testing.T) {
	path := writeConfig(t, `backend = "not a table"`)

	if _, err := LoadOrDefault(path); err == nil {
		t.Fatal("LoadOrDefault() expected error for malformed file")
	}
}

func TestLogLevel_Default(t *testing.T) {
	cfg := &Config{}
	if cfg.LogLevel() != "info" {
		t.Errorf("LogLevel() = %q, want info", cfg.LogLevel())
	}
}
