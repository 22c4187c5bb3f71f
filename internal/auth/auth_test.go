// ABOUTME: Tests for the auth coordinator
// ABOUTME: Verifies login persistence, hydration, role checks, and expiry handling

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/session"
)

func loginServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req client.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(client.LoginResponse{
			AccessToken: "token-xyz",
			User: client.UserProfile{
				ID:        1,
				Email:     req.Email,
				FirstName: "Admin",
				LastName:  "User",
				Role:      client.RoleAdmin,
			},
		})
	}))
}

func TestLogin_PersistsSession(t *testing.T) {
	server := loginServer(t)
	defer server.Close()

	dir := t.TempDir()
	api := client.New(server.URL)
	c := New(session.New(dir), api)

	if err := c.Login(context.Background(), "admin@company.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !c.Authenticated() {
		t.Error("expected authenticated coordinator")
	}
	if !api.HasToken() {
		t.Error("expected token attached to client")
	}

	// A fresh coordinator hydrates from the same store
	api2 := client.New(server.URL)
	c2 := New(session.New(dir), api2)
	c2.Hydrate()
	if !c2.Authenticated() {
		t.Error("expected hydrated session")
	}
	if user := c2.CurrentUser(); user == nil || user.Email != "admin@company.com" {
		t.Errorf("expected persisted user, got %+v", user)
	}
	if !api2.HasToken() {
		t.Error("expected hydrated token on client")
	}
}

func TestLogin_Failure(t *testing.T) {
	server := loginServer(t)
	defer server.Close()

	c := New(session.New(t.TempDir()), client.New(server.URL))

	err := c.Login(context.Background(), "admin@company.com", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if c.Authenticated() {
		t.Error("failed login must not leave a session")
	}
}

func TestLogout(t *testing.T) {
	server := loginServer(t)
	defer server.Close()

	dir := t.TempDir()
	api := client.New(server.URL)
	c := New(session.New(dir), api)

	if err := c.Login(context.Background(), "admin@company.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	c.Logout()

	if c.Authenticated() {
		t.Error("expected unauthenticated after logout")
	}
	if api.HasToken() {
		t.Error("expected token cleared from client")
	}

	c2 := New(session.New(dir), client.New(server.URL))
	c2.Hydrate()
	if c2.Authenticated() {
		t.Error("logout must clear the persisted session")
	}
}

func TestHasRole(t *testing.T) {
	server := loginServer(t)
	defer server.Close()

	c := New(session.New(t.TempDir()), client.New(server.URL))

	if c.HasRole(client.RoleAdmin) {
		t.Error("unauthenticated coordinator must not have roles")
	}

	if err := c.Login(context.Background(), "admin@company.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	tests := []struct {
		roles []string
		want  bool
	}{
		{[]string{client.RoleAdmin}, true},
		{[]string{client.RoleManager}, false},
		{[]string{client.RoleAdmin, client.RoleManager}, true},
		{[]string{}, false},
	}
	for _, tt := range tests {
		if got := c.HasRole(tt.roles...); got != tt.want {
			t.Errorf("HasRole(%v) = %v, want %v", tt.roles, got, tt.want)
		}
	}
}

func TestHandleAPIError_Expiry(t *testing.T) {
	server := loginServer(t)
	defer server.Close()

	api := client.New(server.URL)
	c := New(session.New(t.TempDir()), api)

	if err := c.Login(context.Background(), "admin@company.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	unauth := &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Token has expired"}
	if !c.HandleAPIError(unauth) {
		t.Error("expected expiry to be handled")
	}
	if c.Authenticated() {
		t.Error("expected forced logout on expiry")
	}
	if api.HasToken() {
		t.Error("expected token cleared on expiry")
	}

	// Without a session there is nothing to expire
	if c.HandleAPIError(unauth) {
		t.Error("no active session, nothing to handle")
	}
}

func TestHandleAPIError_OtherErrors(t *testing.T) {
	server := loginServer(t)
	defer server.Close()

	c := New(session.New(t.TempDir()), client.New(server.URL))
	if err := c.Login(context.Background(), "admin@company.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	serverErr := &client.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	if c.HandleAPIError(serverErr) {
		t.Error("server errors must not end the session")
	}
	if c.HandleAPIError(nil) {
		t.Error("nil error must not end the session")
	}
	if !c.Authenticated() {
		t.Error("session should survive non-auth errors")
	}
}
