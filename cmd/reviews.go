// ABOUTME: Reviews command for the perftrack CLI
// ABOUTME: Lists performance reviews visible to the current session

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
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List performance reviews",
	Long:  `List the performance reviews visible to the current session. Employees see their own reviews, managers see reviews they wrote.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReviewsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
}

// runReviewsList lists reviews and returns exit code
func runReviewsList(ctx context.Context, w io.Writer) int {
	apiClient, code := requireSession(w)
	if code != 0 {
		return code
	}

	revs, err := apiClient.Reviews(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(revs, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(revs) == 0 {
		fmt.Fprintln(w, "No reviews found.")
		return 0
	}

	for _, r := range revs {
		rating := "pending"
		if r.OverallRating > 0 {
			rating = fmt.Sprintf("%.1f/5", r.OverallRating)
		}
		fmt.Fprintf(w, "%4d  %-22s %-24s %-8s [%s]\n", r.ID, r.ReviewPeriod, r.RevieweeName, rating, r.Status)
	}
	return 0
}
