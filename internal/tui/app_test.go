// ABOUTME: Tests for the root TUI model
// ABOUTME: Verifies screen routing, role gating, and forced logout on expiry

package tui

import (
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/tui/goals"
	"github.com/perftrack/perftrack-cli/internal/views"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	app := testApp(t, "")
	if app.screen != ScreenLogin {
		t.Errorf("expected login screen, got %v", app.screen)
	}
}

func TestStartsOnDashboardWithSession(t *testing.T) {
	app := testApp(t, client.RoleEmployee)
	if app.screen != ScreenDashboard {
		t.Errorf("expected dashboard screen, got %v", app.screen)
	}
}

func TestNavigation(t *testing.T) {
	app := testApp(t, client.RoleManager)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	model, _ := app.Update(keyMsg("g"))
	app = model.(*App)
	if app.screen != ScreenGoals {
		t.Errorf("expected goals screen, got %v", app.screen)
	}

	model, _ = app.Update(keyMsg("v"))
	app = model.(*App)
	if app.screen != ScreenReviews {
		t.Errorf("expected reviews screen, got %v", app.screen)
	}

	model, _ = app.Update(keyMsg("d"))
	app = model.(*App)
	if app.screen != ScreenDashboard {
		t.Errorf("expected dashboard screen, got %v", app.screen)
	}
}

func TestEmployeesScreenGatedByRole(t *testing.T) {
	app := testApp(t, client.RoleEmployee)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	model, _ := app.Update(keyMsg("t"))
	app = model.(*App)
	if app.screen == ScreenEmployees {
		t.Error("employee role must not reach the roster screen")
	}

	mgr := testApp(t, client.RoleManager)
	mgr.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	model, _ = mgr.Update(keyMsg("t"))
	mgr = model.(*App)
	if mgr.screen != ScreenEmployees {
		t.Errorf("manager should reach the roster screen, got %v", mgr.screen)
	}
}

func TestLoginResultInstallsSession(t *testing.T) {
	app := testApp(t, "")
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	// The login command only performs the HTTP exchange; the session is
	// installed here, on the goroutine that renders from it
	model, _ := app.Update(loginResultMsg{resp: &client.LoginResponse{
		AccessToken: "fresh-token",
		User: client.UserProfile{
			ID:        1,
			Email:     "user@company.com",
			FirstName: "Jordan",
			Role:      client.RoleEmployee,
		},
	}})
	app = model.(*App)

	if !app.auth.Authenticated() {
		t.Fatal("expected an authenticated session after a successful login")
	}
	if app.auth.Token() != "fresh-token" {
		t.Errorf("expected installed token, got %q", app.auth.Token())
	}
	if app.screen != ScreenDashboard {
		t.Errorf("expected dashboard after login, got %v", app.screen)
	}
}

func TestExpiredSessionForcesLogin(t *testing.T) {
	app := testApp(t, client.RoleEmployee)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app.Update(keyMsg("g"))

	expired := goals.LoadedMsg{Result: views.LoadResult[client.Goal]{
		Err: &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Token has expired"},
	}}
	model, _ := app.Update(expired)
	app = model.(*App)

	if app.screen != ScreenLogin {
		t.Errorf("expected forced login, got %v", app.screen)
	}
	if app.auth.Authenticated() {
		t.Error("expected session cleared")
	}
	if !strings.Contains(app.View(), "Session expired") {
		t.Error("expected expiry notice on the login screen")
	}
}

func TestSignOut(t *testing.T) {
	app := testApp(t, client.RoleEmployee)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	model, _ := app.Update(keyMsg("o"))
	app = model.(*App)

	if app.screen != ScreenLogin {
		t.Errorf("expected login screen after sign out, got %v", app.screen)
	}
	if app.auth.Authenticated() {
		t.Error("expected session cleared after sign out")
	}
}

func TestOtherAPIErrorsKeepSession(t *testing.T) {
	app := testApp(t, client.RoleEmployee)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app.Update(keyMsg("g"))

	failed := goals.LoadedMsg{Result: views.LoadResult[client.Goal]{
		Err: &client.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"},
	}}
	model, _ := app.Update(failed)
	app = model.(*App)

	if app.screen != ScreenGoals {
		t.Errorf("server errors must not change screens, got %v", app.screen)
	}
	if !app.auth.Authenticated() {
		t.Error("server errors must not end the session")
	}
}
