// ABOUTME: Logout command for the perftrack CLI
// ABOUTME: Discards the persisted session unconditionally

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	_, authc := newAuthClient()
	authc.Logout()
	fmt.Fprintln(w, "Signed out.")
	return 0
}
