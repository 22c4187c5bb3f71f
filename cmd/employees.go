// ABOUTME: Employee commands for the perftrack CLI
// ABOUTME: Non-interactive roster list, create, and update for admins

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
	empEmail      string
	empFirstName  string
	empLastName   string
	empPassword   string
	empRole       string
	empDepartment string
	empPosition   string
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Manage the employee roster",
	Long:  `List, create, and update employees without the interactive TUI. Create and update require an admin session.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runEmployeesList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var employeesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an employee",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runEmployeesCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var employeesUpdateCmd = &cobra.Command{
	Use:   "update <employee-id>",
	Short: "Update an employee",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runEmployeesUpdate(ctx, os.Stdout, cmd, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(employeesCmd)
	employeesCmd.AddCommand(employeesCreateCmd)
	employeesCmd.AddCommand(employeesUpdateCmd)

	for _, cmd := range []*cobra.Command{employeesCreateCmd, employeesUpdateCmd} {
		cmd.Flags().StringVar(&empEmail, "email", "", "Account email")
		cmd.Flags().StringVar(&empFirstName, "first-name", "", "First name")
		cmd.Flags().StringVar(&empLastName, "last-name", "", "Last name")
		cmd.Flags().StringVar(&empRole, "role", client.RoleEmployee, "Role (employee, manager, admin)")
		cmd.Flags().StringVar(&empDepartment, "department", "", "Department")
		cmd.Flags().StringVar(&empPosition, "position", "", "Position")
	}
	employeesCreateCmd.Flags().StringVar(&empPassword, "password", "", "Initial password")
}

// runEmployeesList lists the roster and returns exit code
func runEmployeesList(ctx context.Context, w io.Writer) int {
	apiClient, code := requireSession(w)
	if code != 0 {
		return code
	}

	emps, err := apiClient.Employees(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(emps, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(emps) == 0 {
		fmt.Fprintln(w, "No employees found.")
		return 0
	}

	for _, e := range emps {
		fmt.Fprintf(w, "%4d  %-24s %-28s %-8s %s\n", e.ID, e.FullName(), e.Email, e.Role, e.Department)
	}
	return 0
}

// runEmployeesCreate creates an employee from flags and returns exit code
func runEmployeesCreate(ctx context.Context, w io.Writer) int {
	apiClient, code := requireSession(w)
	if code != 0 {
		return code
	}

	draft := &client.EmployeeDraft{
		Email:      empEmail,
		FirstName:  empFirstName,
		LastName:   empLastName,
		Password:   empPassword,
		Role:       empRole,
		Department: empDepartment,
		Position:   empPosition,
	}
	if err := views.ValidateEmployeeDraft(draft, true); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	emp, err := apiClient.CreateEmployee(ctx, draft)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created employee %d: %s\n", emp.ID, emp.FullName())
	return 0
}

// runEmployeesUpdate updates an employee, merging flags over current values
func runEmployeesUpdate(ctx context.Context, w io.Writer, cmd *cobra.Command, idArg string) int {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid employee id %q\n", idArg)
		return 2
	}

	apiClient, code := requireSession(w)
	if code != 0 {
		return code
	}

	current, err := findEmployee(ctx, apiClient, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	draft := &client.EmployeeDraft{
		Email:      current.Email,
		FirstName:  current.FirstName,
		LastName:   current.LastName,
		Role:       current.Role,
		Department: current.Department,
		Position:   current.Position,
	}
	if cmd.Flags().Changed("email") {
		draft.Email = empEmail
	}
	if cmd.Flags().Changed("first-name") {
		draft.FirstName = empFirstName
	}
	if cmd.Flags().Changed("last-name") {
		draft.LastName = empLastName
	}
	if cmd.Flags().Changed("role") {
		draft.Role = empRole
	}
	if cmd.Flags().Changed("department") {
		draft.Department = empDepartment
	}
	if cmd.Flags().Changed("position") {
		draft.Position = empPosition
	}

	if err := views.ValidateEmployeeDraft(draft, false); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	emp, err := apiClient.UpdateEmployee(ctx, id, draft)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated employee %d: %s\n", emp.ID, emp.FullName())
	return 0
}

// findEmployee looks up an employee by id from the roster
func findEmployee(ctx context.Context, c *client.Client, id int) (*client.Employee, error) {
	emps, err := c.Employees(ctx)
	if err != nil {
		return nil, err
	}
	for i := range emps {
		if emps[i].ID == id {
			return &emps[i], nil
		}
	}
	return nil, fmt.Errorf("employee %d not found", id)
}
