// ABOUTME: Goal commands for the perftrack CLI
// ABOUTME: Non-interactive list, create, update, and approve for scripting

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/views"
)

var (
	goalTitle       string
	goalDescription string
	goalCategory    string
	goalTargetDate  string
	goalProgress    int
	goalStatus      string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage goals",
	Long:  `List, create, update, and approve goals without the interactive TUI.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runGoalsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var goalsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a goal",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runGoalsCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var goalsUpdateCmd = &cobra.Command{
	Use:   "update <goal-id>",
	Short: "Update a goal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runGoalsUpdate(ctx, os.Stdout, cmd, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var goalsApproveCmd = &cobra.Command{
	Use:   "approve <goal-id>",
	Short: "Approve a draft goal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runGoalsApprove(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(goalsCmd)
	goalsCmd.AddCommand(goalsCreateCmd)
	goalsCmd.AddCommand(goalsUpdateCmd)
	goalsCmd.AddCommand(goalsApproveCmd)

	for _, cmd := range []*cobra.Command{goalsCreateCmd, goalsUpdateCmd} {
		cmd.Flags().StringVar(&goalTitle, "title", "", "Goal title")
		cmd.Flags().StringVar(&goalDescription, "description", "", "Goal description")
		cmd.Flags().StringVar(&goalCategory, "category", "", "Goal category")
		cmd.Flags().StringVar(&goalTargetDate, "target-date", "", "Target date (YYYY-MM-DD)")
		cmd.Flags().IntVar(&goalProgress, "progress", 0, "Progress percentage (0-100)")
		cmd.Flags().StringVar(&goalStatus, "status", client.GoalStatusDraft, "Status (draft, active, completed, cancelled)")
	}
}

// requireSession builds a client with an active session or fails with exit code 2
func requireSession(w io.Writer) (*client.Client, int) {
	apiClient, authc := newAuthClient()
	if !authc.Authenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'perftrack login' first.")
		return nil, 2
	}
	return apiClient, 0
}

// runGoalsList lists goals and returns exit code
func runGoalsList(ctx context.Context, w io.Writer) int {
	apiClient, code := requireSession(w)
	if code != 0 {
		return code
	}

	goals, err := apiClient.Goals(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(goals, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(goals) == 0 {
		fmt.Fprintln(w, "No goals found.")
		return 0
	}

	for _, g := range goals {
		approved := " "
		if g.ManagerApproved {
			approved = "✓"
		}
		fmt.Fprintf(w, "%4d  [%-9s] %s %3d%%  %s\n", g.ID, g.Status, approved, g.Progress, g.Title)
	}
	return 0
}

// runGoalsCreate creates a goal from flags and returns exit code
func runGoalsCreate(ctx context.Context, w io.Writer) int {
	apiClient, code := requireSession(w)
	if code != 0 {
		return code
	}

	draft := &client.GoalDraft{
		Title:       goalTitle,
		Description: goalDescription,
		Category:    goalCategory,
		TargetDate:  goalTargetDate,
		Progress:    goalProgress,
		Status:      goalStatus,
	}
	if err := views.ValidateGoalDraft(draft); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	goal, err := apiClient.CreateGoal(ctx, draft)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created goal %d: %s\n", goal.ID, goal.Title)
	return 0
}

// runGoalsUpdate updates a goal, merging flags over the current values
func runGoalsUpdate(ctx context.Context, w io.Writer, cmd *cobra.Command, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid goal id %q\n", idArg)
		return 2
	}

	apiClient, code := requireSession(w)
	if code != 0 {
		return code
	}

	current, err := findGoal(ctx, apiClient, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	draft := &client.GoalDraft{
		Title:       current.Title,
		Description: current.Description,
		Category:    current.Category,
		TargetDate:  current.TargetDate,
		Progress:    current.Progress,
		Status:      current.Status,
	}
	if cmd.Flags().Changed("title") {
		draft.Title = goalTitle
	}
	if cmd.Flags().Changed("description") {
		draft.Description = goalDescription
	}
	if cmd.Flags().Changed("category") {
		draft.Category = goalCategory
	}
	if cmd.Flags().Changed("target-date") {
		draft.TargetDate = goalTargetDate
	}
	if cmd.Flags().Changed("progress") {
		draft.Progress = goalProgress
	}
	if cmd.Flags().Changed("status") {
		draft.Status = goalStatus
	}

	if err := views.ValidateGoalDraft(draft); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	goal, err := apiClient.UpdateGoal(ctx, id, draft)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated goal %d: %s\n", goal.ID, goal.Title)
	return 0
}

// runGoalsApprove approves a goal and returns exit code
func runGoalsApprove(ctx context.Context, w io.Writer, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid goal id %q\n", idArg)
		return 2
	}

	apiClient, code := requireSession(w)
	if code != 0 {
		return code
	}

	goal, err := apiClient.ApproveGoal(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Approved goal %d: %s\n", goal.ID, goal.Title)
	return 0
}

// findGoal looks up a goal by id from the visible list
func findGoal(ctx context.Context, c *client.Client, id int) (*client.Goal, error) {
	goals, err := c.Goals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i], nil
		}
	}
	return nil, fmt.Errorf("goal %d not found", id)
}
