// ABOUTME: HTTP client for the PerfTrack API
// ABOUTME: Attaches bearer auth and surfaces typed errors for CLI and TUI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// APIError is an HTTP-level failure: a response was received with a status
// outside 2xx. Message carries the server-provided explanation when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// IsUnauthorized reports whether err is an HTTP 401 from the backend.
// Used to force logout when a persisted token has expired.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsAPIError reports whether err came from an HTTP response rather than
// the transport layer
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Client is the API client for the PerfTrack backend
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token attached to subsequent requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken removes the bearer token
func (c *Client) ClearToken() {
	c.token = ""
}

// HasToken reports whether a bearer token is set
func (c *Client) HasToken() bool {
	return c.token != ""
}

// do issues a JSON request and decodes the response into out when non-nil.
// Transport failures are wrapped plain errors; non-2xx responses become
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts transport failures to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error bodies. The backend carries the
// explanation in a "message" field; fall back to the status text.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
}

// Login calls POST /auth/login. The token is not attached automatically;
// the auth coordinator decides what to do with the response.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", &LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me calls GET /auth/me and returns the profile for the current token
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var user UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Goals calls GET /goals, scoped server-side to the caller's visibility
func (c *Client) Goals(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if err := c.do(ctx, http.MethodGet, "/goals", nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CreateGoal calls POST /goals
func (c *Client) CreateGoal(ctx context.Context, draft *GoalDraft) (*Goal, error) {
	var goal Goal
	if err := c.do(ctx, http.MethodPost, "/goals", draft, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal calls PUT /goals/{id}
func (c *Client) UpdateGoal(ctx context.Context, id int, draft *GoalDraft) (*Goal, error) {
	var goal Goal
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/goals/%d", id), draft, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// ApproveGoal calls POST /goals/{id}/approve, manager/admin only
func (c *Client) ApproveGoal(ctx context.Context, id int) (*Goal, error) {
	var goal Goal
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/goals/%d/approve", id), nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// Reviews calls GET /reviews, scoped server-side by role
func (c *Client) Reviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, "/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Employees calls GET /employees
func (c *Client) Employees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// CreateEmployee calls POST /employees, admin only. The password is supplied
// at creation and never afterwards.
func (c *Client) CreateEmployee(ctx context.Context, draft *EmployeeDraft) (*Employee, error) {
	var employee Employee
	if err := c.do(ctx, http.MethodPost, "/employees", draft, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployee calls PUT /employees/{id}, admin only. The password field
// is stripped before the request is sent.
func (c *Client) UpdateEmployee(ctx context.Context, id int, draft *EmployeeDraft) (*Employee, error) {
	sanitized := *draft
	sanitized.Password = ""
	var employee Employee
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/employees/%d", id), &sanitized, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// DashboardAnalytics calls GET /analytics/dashboard, manager/admin only
func (c *Client) DashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	var analytics DashboardAnalytics
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard", nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// PerformanceTrends calls GET /analytics/performance-trends, manager/admin only
func (c *Client) PerformanceTrends(ctx context.Context) (*PerformanceTrends, error) {
	var trends PerformanceTrends
	if err := c.do(ctx, http.MethodGet, "/analytics/performance-trends", nil, &trends); err != nil {
		return nil, err
	}
	return &trends, nil
}
