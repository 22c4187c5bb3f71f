// ABOUTME: Login command for the perftrack CLI
// ABOUTME: Authenticates against the backend and persists the session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/perftrack/perftrack-cli/internal/views"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	Long: `Authenticate against the PerfTrack backend and persist the session.

Credentials can be passed as flags or entered interactively. The session
token is stored in the config directory and reused by other commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

// runLogin authenticates and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	email := loginEmail
	password := loginPassword

	if email == "" || password == "" {
		if err := promptCredentials(&email, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	_, authc := newAuthClient()
	if err := authc.Login(ctx, email, password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := authc.CurrentUser()
	fmt.Fprintf(w, "Signed in as %s (%s)\n", user.FullName(), user.Role)
	return 0
}

// promptCredentials fills any missing credential interactively
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(views.ValidateEmail))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(views.ValidateRequired("password")))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
