// ABOUTME: Tests for root command configuration
// ABOUTME: Verifies API URL precedence and shared test helpers

package cmd

import (
	"testing"

	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/session"
)

// seedSession persists a session in a temp config dir and points the CLI at it
func seedSession(t *testing.T, role string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PERFTRACK_CONFIG_DIR", dir)
	cfg = nil
	store := session.New(dir)
	err := store.Save(&session.Session{
		Token: "test-token",
		User: client.UserProfile{
			ID:        1,
			Email:     "admin@company.com",
			FirstName: "Admin",
			LastName:  "User",
			Role:      role,
		},
	})
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

// clearSessionDir points the CLI at an empty config dir
func clearSessionDir(t *testing.T) {
	t.Helper()
	t.Setenv("PERFTRACK_CONFIG_DIR", t.TempDir())
	cfg = nil
}

func TestGetAPIURL_FlagPrecedence(t *testing.T) {
	t.Setenv("PERFTRACK_API_URL", "http://from-env:5000/api")

	apiURL = "http://from-flag:5000/api"
	defer func() { apiURL = "" }()

	if got := GetAPIURL(); got != "http://from-flag:5000/api" {
		t.Errorf("flag should win, got %s", got)
	}
}

func TestGetAPIURL_EnvFallback(t *testing.T) {
	t.Setenv("PERFTRACK_API_URL", "http://from-env:5000/api")

	apiURL = ""
	cfg = nil

	if got := GetAPIURL(); got != "http://from-env:5000/api" {
		t.Errorf("env should win over default, got %s", got)
	}
}

func TestGetAPIURL_Default(t *testing.T) {
	t.Setenv("PERFTRACK_API_URL", "")

	apiURL = ""
	cfg = nil

	if got := GetAPIURL(); got != "http://localhost:5000/api" {
		t.Errorf("expected default URL, got %s", got)
	}
}
