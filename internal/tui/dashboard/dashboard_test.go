// ABOUTME: Tests for the dashboard screen
// ABOUTME: Validates per-role rendering and stale-data behavior on failed loads

package dashboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/perftrack/perftrack-cli/internal/auth"
	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/session"
	"github.com/perftrack/perftrack-cli/internal/views"
)

func testAuth(t *testing.T, role string) *auth.Coordinator {
	t.Helper()
	dir := t.TempDir()
	store := session.New(dir)
	err := store.Save(&session.Session{
		Token: "test-token",
		User: client.UserProfile{
			ID:        1,
			Email:     "user@company.com",
			FirstName: "Jordan",
			LastName:  "Smith",
			Role:      role,
		},
	})
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	c := auth.New(store, client.New("http://localhost:1"))
	c.Hydrate()
	return c
}

func loadedDashboard(t *testing.T, role string) *Dashboard {
	t.Helper()
	d := New(client.New("http://localhost:1"), testAuth(t, role), 120, 40)

	d.Update(GoalsLoadedMsg{Result: views.LoadResult[client.Goal]{Items: []client.Goal{
		{ID: 1, Title: "Ship v2", Status: client.GoalStatusActive, Progress: 60},
		{ID: 2, Title: "Mentor juniors", Status: client.GoalStatusCompleted, Progress: 100},
	}}})
	d.Update(ReviewsLoadedMsg{Result: views.LoadResult[client.Review]{Items: []client.Review{
		{ID: 1, ReviewPeriod: "2026 H1", RevieweeName: "Devon Lane", ReviewerName: "Jordan Smith", OverallRating: 4.0, Status: client.ReviewStatusCompleted},
	}}})
	return d
}

func TestDashboardView_Employee(t *testing.T) {
	d := loadedDashboard(t, client.RoleEmployee)
	view := d.View()

	tests := []string{
		"Welcome back, Jordan!",
		"My Goals Status",
		"active",
		"completed",
		"2026 H1",
	}
	for _, expected := range tests {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}

	if strings.Contains(view, "Team Goals Status") {
		t.Error("employee must not see the team chart title")
	}
}

func TestDashboardView_ManagerWithAnalytics(t *testing.T) {
	d := loadedDashboard(t, client.RoleManager)
	d.Update(AnalyticsLoadedMsg{Analytics: &client.DashboardAnalytics{
		TotalEmployees:     12,
		TotalGoals:         40,
		TotalReviews:       18,
		GoalCompletionRate:   62.5,
		ReviewCompletionRate: 88.9,
		AverageRatings:       client.AverageRatings{Overall: 4.1, Technical: 4.3},
		DepartmentBreakdown: []client.DepartmentCount{
			{Department: "Engineering", Count: 7},
			{Department: "Sales", Count: 5},
		},
	}})

	view := d.View()

	tests := []string{
		"Team Goals Status",
		"Employees",
		"Completion",
		"Reviews Done",
		"Overall",
		"Headcount by Department",
		"Engineering",
		"Devon Lane", // managers see the reviewee
	}
	for _, expected := range tests {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}
}

func TestDashboard_FailedAnalyticsKeepsOldData(t *testing.T) {
	d := loadedDashboard(t, client.RoleManager)
	d.Update(AnalyticsLoadedMsg{Analytics: &client.DashboardAnalytics{
		TotalEmployees: 12,
	}})
	d.Update(AnalyticsLoadedMsg{Err: errors.New("backend down")})

	view := d.View()
	if !strings.Contains(view, "Employees") {
		t.Error("failed refresh must keep previously loaded analytics")
	}
	if !strings.Contains(view, "backend down") {
		t.Error("expected surfaced error")
	}
}

func TestDashboard_LoadingState(t *testing.T) {
	d := New(client.New("http://localhost:1"), testAuth(t, client.RoleEmployee), 120, 40)
	d.Init()

	view := d.View()
	if !strings.Contains(view, "Loading") {
		t.Errorf("expected loading message, got:\n%s", view)
	}
}
