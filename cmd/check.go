// ABOUTME: Check command for the perftrack CLI
// ABOUTME: Validates goal completion and approval thresholds for CI/CD pipelines

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
	"github.com/perftrack/perftrack-cli/internal/views"
)

var (
	completionThreshold int
	approvalThreshold   int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check goal health thresholds",
	Long: `Check goal completion and approval thresholds and exit non-zero if any fall short.

Exit codes:
  0 - All checks passed
  1 - One or more thresholds not met
  2 - Error (connectivity, not signed in, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&completionThreshold, "completion-threshold", 50, "Minimum goal completion percentage")
	checkCmd.Flags().IntVar(&approvalThreshold, "approval-threshold", 75, "Minimum goal approval percentage")
}

// checkResult represents the result of a single threshold check
type checkResult struct {
	name      string
	value     float64
	threshold float64
	unit      string
	passed    bool
}

// runCheck executes the threshold checks and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	if err := validateThresholds(completionThreshold, approvalThreshold); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	apiClient, authc := newAuthClient()

	if !authc.Authenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'perftrack login' first.")
		return 2
	}

	goals, err := apiClient.Goals(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results := performChecks(goals)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// validateThresholds ensures threshold values are valid
func validateThresholds(completion, approval int) error {
	if completion < 0 || completion > 100 {
		return fmt.Errorf("--completion-threshold must be between 0 and 100")
	}
	if approval < 0 || approval > 100 {
		return fmt.Errorf("--approval-threshold must be between 0 and 100")
	}
	return nil
}

// performChecks runs all threshold checks against the goal list
func performChecks(goals []client.Goal) []checkResult {
	var results []checkResult

	completion := views.GoalCompletionRate(goals)
	results = append(results, checkResult{
		name:      "Goal completion",
		value:     completion,
		threshold: float64(completionThreshold),
		unit:      "%",
		passed:    completion >= float64(completionThreshold),
	})

	approval := views.GoalApprovedShare(goals)
	results = append(results, checkResult{
		name:      "Goal approval",
		value:     approval,
		threshold: float64(approvalThreshold),
		unit:      "%",
		passed:    approval >= float64(approvalThreshold),
	})

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %.0f%s (threshold: %.0f%s)\n",
			symbol, r.name, r.value, r.unit, r.threshold, r.unit)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) below threshold", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) met thresholds", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"unit":      r.unit,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
