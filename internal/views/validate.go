// ABOUTME: Client-side validation for goal and employee drafts
// ABOUTME: Rejects bad input before a request is dispatched

package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/perftrack/perftrack-cli/internal/client"
)

var goalStatuses = map[string]bool{
	client.GoalStatusDraft:     true,
	client.GoalStatusActive:    true,
	client.GoalStatusCompleted: true,
	client.GoalStatusCancelled: true,
}

var roles = map[string]bool{
	client.RoleAdmin:    true,
	client.RoleManager:  true,
	client.RoleEmployee: true,
}

// ValidateGoalDraft checks a goal draft before dispatch
func ValidateGoalDraft(d *client.GoalDraft) error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if d.Progress < 0 || d.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	if d.Status != "" && !goalStatuses[d.Status] {
		return fmt.Errorf("invalid status %q", d.Status)
	}
	return nil
}

// ValidateEmployeeDraft checks an employee draft before dispatch.
// A password is required only when creating.
func ValidateEmployeeDraft(d *client.EmployeeDraft, creating bool) error {
	if err := ValidateEmail(d.Email); err != nil {
		return err
	}
	if strings.TrimSpace(d.FirstName) == "" {
		return fmt.Errorf("first name is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		return fmt.Errorf("last name is required")
	}
	if !roles[d.Role] {
		return fmt.Errorf("invalid role %q", d.Role)
	}
	if creating && d.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidateEmail performs the same shape check the login form uses
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateRequired is a huh-compatible validator for mandatory text fields
func ValidateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// ValidateProgressInput is a huh-compatible validator for the progress field
func ValidateProgressInput(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // empty means 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("progress must be a number")
	}
	if n < 0 || n > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}
