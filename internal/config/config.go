// ABOUTME: Configuration loader for the PerfTrack client
// ABOUTME: Loads settings from a local .env file and environment variables

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/perftrack/perftrack-cli/internal/session"
)

const defaultAPIURL = "http://localhost:5000/api"

type Config struct {
	APIURL    string // base URL of the PerfTrack REST API
	ConfigDir string // where session state and the debug log live
	LogLevel  string // debug, info, warn, error
}

// Load reads configuration with .env file values behind real environment
// variables. A missing .env is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:    getEnv("PERFTRACK_API_URL", defaultAPIURL),
		ConfigDir: getEnv("PERFTRACK_CONFIG_DIR", session.DefaultConfigDir()),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
