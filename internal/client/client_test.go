// ABOUTME: Tests for the PerfTrack API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Email != "admin@company.com" {
			t.Errorf("expected email admin@company.com, got %s", req.Email)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "token-123",
			User: UserProfile{
				ID:        1,
				Email:     "admin@company.com",
				FirstName: "Admin",
				LastName:  "User",
				Role:      RoleAdmin,
			},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "admin@company.com", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken != "token-123" {
		t.Errorf("expected token-123, got %s", resp.AccessToken)
	}
	if resp.User.Role != RoleAdmin {
		t.Errorf("expected admin role, got %s", resp.User.Role)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "admin@company.com", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsUnauthorized(err) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid email or password") {
		t.Errorf("expected backend message in error, got %v", err)
	}
}

func TestDo_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("expected Bearer token-123, got %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Goal{})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("token-123")
	if _, err := c.Goals(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_NoAuthHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Goal{})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Goals(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorResponse_FallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Goals(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var apiErr *APIError
	if !IsAPIError(err) {
		t.Fatalf("expected API error, got %v", err)
	}
	apiErr = err.(*APIError)
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, http.StatusText(http.StatusInternalServerError)) {
		t.Errorf("expected fallback status text, got %q", apiErr.Message)
	}
}

func TestConnectionError_NotAPIError(t *testing.T) {
	c := New("http://localhost:1")
	_, err := c.Goals(context.Background())
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if IsAPIError(err) {
		t.Errorf("connection failure should not be an API error: %v", err)
	}
	if IsUnauthorized(err) {
		t.Errorf("connection failure should not read as unauthorized: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(server.URL)
	_, err := c.Goals(ctx)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timed out message, got %v", err)
	}
}

func TestCreateGoal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/goals" || r.Method != http.MethodPost {
			t.Errorf("expected POST /goals, got %s %s", r.Method, r.URL.Path)
		}
		var draft GoalDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("failed to decode draft: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Goal{
			ID:       7,
			Title:    draft.Title,
			Status:   draft.Status,
			Progress: draft.Progress,
		})
	}))
	defer server.Close()

	c := New(server.URL)
	goal, err := c.CreateGoal(context.Background(), &GoalDraft{
		Title:    "Learn Kubernetes",
		Status:   GoalStatusDraft,
		Progress: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.ID != 7 {
		t.Errorf("expected id 7, got %d", goal.ID)
	}
	if goal.Title != "Learn Kubernetes" {
		t.Errorf("expected title echoed back, got %s", goal.Title)
	}
}

func TestApproveGoal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/goals/42/approve" || r.Method != http.MethodPost {
			t.Errorf("expected POST /goals/42/approve, got %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Goal{ID: 42, ManagerApproved: true})
	}))
	defer server.Close()

	c := New(server.URL)
	goal, err := c.ApproveGoal(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !goal.ManagerApproved {
		t.Error("expected goal to be approved")
	}
}

func TestUpdateEmployee_NeverSendsPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if _, ok := raw["password"]; ok {
			t.Error("update must not carry a password field")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Employee{ID: 3, Email: "dev@company.com"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.UpdateEmployee(context.Background(), 3, &EmployeeDraft{
		Email:     "dev@company.com",
		FirstName: "Dev",
		LastName:  "Eloper",
		Password:  "should-be-dropped",
		Role:      RoleEmployee,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDashboardAnalytics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analytics/dashboard" {
			t.Errorf("expected path /analytics/dashboard, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DashboardAnalytics{
			TotalEmployees:     12,
			TotalGoals:         40,
			GoalCompletionRate: 62.5,
			AverageRatings:     AverageRatings{Overall: 4.1},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.DashboardAnalytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalEmployees != 12 {
		t.Errorf("expected 12 employees, got %d", resp.TotalEmployees)
	}
	if resp.AverageRatings.Overall != 4.1 {
		t.Errorf("expected overall 4.1, got %f", resp.AverageRatings.Overall)
	}
}
