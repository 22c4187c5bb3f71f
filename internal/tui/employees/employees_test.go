// ABOUTME: Tests for the employee roster screen
// ABOUTME: Verifies roster rendering, admin gating, and single-submit forms

package employees

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/perftrack/perftrack-cli/internal/auth"
	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/session"
	"github.com/perftrack/perftrack-cli/internal/views"
)

func testAuth(t *testing.T, role string) *auth.Coordinator {
	t.Helper()
	store := session.New(t.TempDir())
	err := store.Save(&session.Session{
		Token: "test-token",
		User: client.UserProfile{
			ID:        1,
			Email:     "admin@company.com",
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

func TestRosterRendersDisplayNames(t *testing.T) {
	e := New(client.New("http://localhost:1"), testAuth(t, client.RoleAdmin), 120, 30)

	e.Update(LoadedMsg{Result: views.LoadResult[client.Employee]{Items: []client.Employee{
		{ID: 1, Email: "devon@company.com", FirstName: "Devon", LastName: "Lane", Role: client.RoleEmployee},
		{ID: 2, Email: "noname@company.com", Role: client.RoleEmployee},
	}}})

	view := e.View()
	if !strings.Contains(view, "Devon Lane") {
		t.Error("expected first and last name in the roster")
	}
	// Entries without a name fall back to the email address
	if !strings.Contains(view, "noname@company.com") {
		t.Error("expected email fallback for a nameless entry")
	}
}

func TestCreateFormGatedToAdmins(t *testing.T) {
	e := New(client.New("http://localhost:1"), testAuth(t, client.RoleManager), 120, 30)

	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if e.InForm() {
		t.Error("managers must not open the create form")
	}

	admin := New(client.New("http://localhost:1"), testAuth(t, client.RoleAdmin), 120, 30)
	admin.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if !admin.InForm() {
		t.Error("admins should open the create form")
	}
}

func TestCompletedFormSubmitsOnce(t *testing.T) {
	var creates atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			creates.Add(1)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":3,"email":"new@company.com","first_name":"New","last_name":"Hire","role":"employee"}`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	e := New(client.New(server.URL), testAuth(t, client.RoleAdmin), 120, 30)
	e.openCreateForm()
	e.email = "new@company.com"
	e.firstName = "New"
	e.lastName = "Hire"
	e.password = "welcome1"
	e.form.State = huh.StateCompleted

	// Stray messages keep arriving while the create request is in flight;
	// only the first pass through the completed form may dispatch it
	_, first := e.Update(struct{}{})
	_, second := e.Update(struct{}{})

	for _, cmd := range []tea.Cmd{first, second} {
		if cmd != nil {
			e.Update(cmd())
		}
	}

	if got := creates.Load(); got != 1 {
		t.Fatalf("expected exactly one create request, got %d", got)
	}
	if e.InForm() {
		t.Error("successful mutation must close the form")
	}
}

func TestFailedMutationKeepsDraft(t *testing.T) {
	e := New(client.New("http://localhost:1"), testAuth(t, client.RoleAdmin), 120, 30)

	e.openCreateForm()
	e.email = "new@company.com"
	e.firstName = "New"

	e.handleMutated(MutatedMsg{
		Action: "create",
		Result: views.MutateResult[client.Employee]{MutationErr: errEmailTaken},
	})

	if !e.InForm() {
		t.Error("rejected mutation must keep the form open")
	}
	if e.email != "new@company.com" {
		t.Errorf("draft email lost, got %q", e.email)
	}
	if !strings.Contains(e.View(), "Email already registered") {
		t.Error("expected surfaced error above the form")
	}
}

var errEmailTaken = &client.APIError{StatusCode: http.StatusBadRequest, Message: "Email already registered"}
