// ABOUTME: Whoami command for the perftrack CLI
// ABOUTME: Shows the current session identity, verified against the backend

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perftrack/perftrack-cli/internal/client"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long:  `Display the current session identity. The token is verified against the backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami verifies the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	apiClient, authc := newAuthClient()

	if !authc.Authenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'perftrack login' first.")
		return 2
	}

	user, err := apiClient.Me(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			authc.Logout()
			fmt.Fprintln(w, "Session expired. Run 'perftrack login' again.")
			return 2
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s (%s)\n%s\n", user.FullName(), user.Role, user.Email)
	if user.Department != "" {
		fmt.Fprintln(w, user.Department)
	}
	return 0
}
