// ABOUTME: Root command for the perftrack CLI
// ABOUTME: Handles global flags, configuration, and launches the TUI by default

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/perftrack/perftrack-cli/internal/auth"
	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/config"
	"github.com/perftrack/perftrack-cli/internal/logger"
	"github.com/perftrack/perftrack-cli/internal/session"
	"github.com/perftrack/perftrack-cli/internal/tui"
)

var (
	apiURL     string
	jsonOutput bool

	cfg *config.Config
)

// rootCmd is the base command. Running it with no subcommand starts the
// interactive TUI.
var rootCmd = &cobra.Command{
	Use:   "perftrack",
	Short: "Terminal client for the PerfTrack performance management system",
	Long: `perftrack is a terminal client for the PerfTrack performance management system.

Run it with no arguments for the interactive TUI, or use subcommands for
scripting and CI/CD pipelines.

Environment Variables:
  PERFTRACK_API_URL     Backend API URL (default: http://localhost:5000/api)
  PERFTRACK_CONFIG_DIR  Session storage directory (default: ~/.config/perftrack)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.Init(os.Stderr, cfg.LogLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		apiClient, authc := newAuthClient()
		return tui.Run(apiClient, authc, GetConfigDir())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PERFTRACK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if cfg != nil {
		return cfg.APIURL
	}
	return config.Load().APIURL
}

// GetConfigDir returns the session storage directory
func GetConfigDir() string {
	if cfg != nil {
		return cfg.ConfigDir
	}
	return config.Load().ConfigDir
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newAuthClient builds an API client with any persisted session attached
func newAuthClient() (*client.Client, *auth.Coordinator) {
	c := client.New(GetAPIURL())
	store := session.New(GetConfigDir())
	a := auth.New(store, c)
	a.Hydrate()
	return c, a
}
