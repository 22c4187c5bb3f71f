// ABOUTME: Tests for configuration loading from environment variables
// ABOUTME: Covers env precedence and fallback defaults

package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PERFTRACK_API_URL", "")
	t.Setenv("PERFTRACK_CONFIG_DIR", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if cfg.APIURL != defaultAPIURL {
		t.Errorf("expected default API URL %q, got %q", defaultAPIURL, cfg.APIURL)
	}
	if cfg.ConfigDir == "" {
		t.Error("expected a non-empty config dir")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PERFTRACK_API_URL", "http://api.example.com/api")
	t.Setenv("PERFTRACK_CONFIG_DIR", "/tmp/perftrack-test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.APIURL != "http://api.example.com/api" {
		t.Errorf("unexpected API URL %q", cfg.APIURL)
	}
	if cfg.ConfigDir != "/tmp/perftrack-test" {
		t.Errorf("unexpected config dir %q", cfg.ConfigDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestGetEnv_WhitespaceTreatedAsUnset(t *testing.T) {
	t.Setenv("PERFTRACK_API_URL", "   ")

	if got := getEnv("PERFTRACK_API_URL", "fallback"); got != "fallback" {
		t.Errorf("expected fallback for whitespace value, got %q", got)
	}
}
