// ABOUTME: Auth coordinator owning login/logout transitions and the current session
// ABOUTME: Hydrates from the persisted store and exposes a role-membership predicate

package auth

import (
	"context"
	"log/slog"

	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/session"
)

// Coordinator owns the session lifecycle. Two states: unauthenticated
// (session == nil) and authenticated. Constructed explicitly and passed to
// consumers; there is no package-level singleton.
type Coordinator struct {
	store   *session.Store
	api     *client.Client
	session *session.Session
}

// New creates a coordinator bound to a persisted store and an API client
func New(store *session.Store, api *client.Client) *Coordinator {
	return &Coordinator{store: store, api: api}
}

// Hydrate loads a persisted session at process start. A well-formed session
// arms the API client token; anything else leaves the coordinator
// unauthenticated. Never fails hard.
func (c *Coordinator) Hydrate() {
	sess, err := c.store.Load()
	if err != nil || sess == nil {
		c.session = nil
		return
	}
	c.session = sess
	c.api.SetToken(sess.Token)
	slog.Debug("session hydrated", "email", sess.User.Email, "role", sess.User.Role)
}

// Authenticate exchanges credentials for a login response without touching
// coordinator state. Safe to call from a background goroutine; pass the
// response to Install on the goroutine that owns the coordinator.
func (c *Coordinator) Authenticate(ctx context.Context, email, password string) (*client.LoginResponse, error) {
	return c.api.Login(ctx, email, password)
}

// Install persists an authenticated login response and transitions to
// authenticated. Must run on the goroutine that owns the coordinator.
func (c *Coordinator) Install(resp *client.LoginResponse) {
	sess := &session.Session{Token: resp.AccessToken, User: resp.User}
	if err := c.store.Save(sess); err != nil {
		// The login itself succeeded; keep the in-memory session usable
		slog.Warn("failed to persist session", "error", err)
	}
	c.session = sess
	c.api.SetToken(sess.Token)
}

// Login exchanges credentials for a session, persists it, and transitions to
// authenticated. On failure the coordinator stays unauthenticated and the
// error message is returned for display.
func (c *Coordinator) Login(ctx context.Context, email, password string) error {
	resp, err := c.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}
	c.Install(resp)
	return nil
}

// Logout clears the persisted store and transitions to unauthenticated
// unconditionally. No server call is made.
func (c *Coordinator) Logout() {
	if err := c.store.Clear(); err != nil {
		slog.Warn("failed to clear persisted session", "error", err)
	}
	c.session = nil
	c.api.ClearToken()
}

// Authenticated reports whether a session is active
func (c *Coordinator) Authenticated() bool {
	return c.session != nil
}

// CurrentUser returns the profile of the active session, or nil
func (c *Coordinator) CurrentUser() *client.UserProfile {
	if c.session == nil {
		return nil
	}
	return &c.session.User
}

// Token returns the active bearer token, or empty
func (c *Coordinator) Token() string {
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

// HasRole reports whether the current user's role is one of the given roles.
// False when unauthenticated. Presentation-only: real authorization is
// enforced server-side on every request.
func (c *Coordinator) HasRole(roles ...string) bool {
	if c.session == nil {
		return false
	}
	for _, role := range roles {
		if c.session.User.Role == role {
			return true
		}
	}
	return false
}

// HandleAPIError forces a logout when the backend rejects the token.
// Returns true when the session was destroyed so callers can route back to
// the login view.
func (c *Coordinator) HandleAPIError(err error) bool {
	if err == nil || !client.IsUnauthorized(err) {
		return false
	}
	if c.session == nil {
		return false
	}
	slog.Info("token rejected by backend, clearing session")
	c.Logout()
	return true
}
