// ABOUTME: Status command for the perftrack CLI
// ABOUTME: Shows organization-wide performance metrics from the dashboard analytics

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perftrack/perftrack-cli/internal/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show organization performance status",
	Long:  `Display organization-wide metrics: headcount, goal completion, review completion, and average ratings. Requires a manager or admin session.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStatus(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus fetches dashboard analytics and returns exit code
func runStatus(ctx context.Context, w io.Writer) int {
	apiClient, authc := newAuthClient()

	if !authc.Authenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'perftrack login' first.")
		return 2
	}

	resp, err := apiClient.DashboardAnalytics(ctx)
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
		fmt.Fprintln(w, formatStatusJSON(resp))
	} else {
		fmt.Fprintln(w, formatStatusHuman(resp))
	}

	return 0
}

// formatStatusHuman formats the analytics for human readability
func formatStatusHuman(resp *client.DashboardAnalytics) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `Employees:          %d
Goals:              %d
Reviews:            %d

Goal completion:    %.0f%% [%s]
Review completion:  %.0f%% [%s]
Average rating:     %.1f/5
`,
		resp.TotalEmployees,
		resp.TotalGoals,
		resp.TotalReviews,
		resp.GoalCompletionRate, completionStatus(resp.GoalCompletionRate),
		resp.ReviewCompletionRate, completionStatus(resp.ReviewCompletionRate),
		resp.AverageRatings.Overall)

	if len(resp.DepartmentBreakdown) > 0 {
		sb.WriteString("\nDepartments:\n")
		for _, d := range resp.DepartmentBreakdown {
			fmt.Fprintf(&sb, "  %-20s %d\n", d.Department, d.Count)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatStatusJSON formats the analytics as JSON
func formatStatusJSON(resp *client.DashboardAnalytics) string {
	data, _ := json.MarshalIndent(resp, "", "  ")
	return string(data)
}

// completionStatus returns ok/warning/critical based on completion percentage
func completionStatus(percent float64) string {
	if percent < 50 {
		return "critical"
	}
	if percent < 80 {
		return "warning"
	}
	return "ok"
}
