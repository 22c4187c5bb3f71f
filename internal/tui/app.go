// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, session lifecycle, and routes input to child screens

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/perftrack/perftrack-cli/internal/auth"
	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/tui/dashboard"
	"github.com/perftrack/perftrack-cli/internal/tui/debuglog"
	"github.com/perftrack/perftrack-cli/internal/tui/employees"
	"github.com/perftrack/perftrack-cli/internal/tui/goals"
	"github.com/perftrack/perftrack-cli/internal/tui/icons"
	"github.com/perftrack/perftrack-cli/internal/tui/login"
	"github.com/perftrack/perftrack-cli/internal/tui/reviews"
	"github.com/perftrack/perftrack-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenGoals
	ScreenEmployees
	ScreenReviews
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	framePadding     = 4  // Horizontal padding consumed by the frame borders
)

// loginResultMsg is sent when a login attempt completes. The response is
// installed in Update so session state is only written on the UI goroutine.
type loginResultMsg struct {
	resp *client.LoginResponse
	err  error
}

// App is the root model for the TUI
type App struct {
	client *client.Client
	auth   *auth.Coordinator
	screen Screen
	width  int
	height int

	lastUpdate time.Time

	// Child models
	loginScreen     *login.Login
	dashboardScreen *dashboard.Dashboard
	goalsScreen     *goals.Goals
	employeesScreen *employees.Employees
	reviewsScreen   *reviews.Reviews
}

// New creates a new TUI application
func New(apiClient *client.Client, authc *auth.Coordinator) *App {
	a := &App{
		client:      apiClient,
		auth:        authc,
		screen:      ScreenLogin,
		loginScreen: login.New(),
	}
	if authc.Authenticated() {
		a.screen = ScreenDashboard
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenDashboard {
		return a.openDashboard()
	}
	return a.loginScreen.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Expired sessions bounce back to the login screen no matter which
	// screen triggered the rejected request
	if err := loadError(msg); err != nil && a.auth.HandleAPIError(err) {
		debuglog.Printf("session expired, returning to login")
		return a, a.forceLogin("Session expired. Please sign in again.")
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		w, h := a.contentWidth(), a.contentHeight()
		if a.dashboardScreen != nil {
			a.dashboardScreen.SetSize(w, h)
		}
		if a.goalsScreen != nil {
			a.goalsScreen.SetSize(w, h)
		}
		if a.employeesScreen != nil {
			a.employeesScreen.SetSize(w, h)
		}
		if a.reviewsScreen != nil {
			a.reviewsScreen.SetSize(w, h)
		}
		if a.loginScreen != nil {
			a.loginScreen.SetWidth(w)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case login.SubmitMsg:
		return a, a.doLogin(msg.Email, msg.Password)

	case loginResultMsg:
		if msg.err != nil {
			a.loginScreen.SetError(msg.err.Error())
			return a, nil
		}
		a.auth.Install(msg.resp)
		return a, a.openDashboard()

	case dashboard.GoalsLoadedMsg, dashboard.ReviewsLoadedMsg,
		dashboard.AnalyticsLoadedMsg, dashboard.TrendsLoadedMsg:
		a.lastUpdate = time.Now()
		return a.forwardTo(ScreenDashboard, msg)

	case goals.LoadedMsg, goals.MutatedMsg:
		a.lastUpdate = time.Now()
		return a.forwardTo(ScreenGoals, msg)

	case employees.LoadedMsg, employees.MutatedMsg:
		a.lastUpdate = time.Now()
		return a.forwardTo(ScreenEmployees, msg)

	case reviews.LoadedMsg:
		a.lastUpdate = time.Now()
		return a.forwardTo(ScreenReviews, msg)
	}

	// Everything else (spinner ticks, huh internals) goes to the active screen
	return a.forwardToActive(msg)
}

// loadError extracts the API error carried by a fetch or mutation message,
// if any, so session handling can run before the screen sees it
func loadError(msg tea.Msg) error {
	switch msg := msg.(type) {
	case dashboard.GoalsLoadedMsg:
		return msg.Result.Err
	case dashboard.ReviewsLoadedMsg:
		return msg.Result.Err
	case dashboard.AnalyticsLoadedMsg:
		return msg.Err
	case dashboard.TrendsLoadedMsg:
		return msg.Err
	case goals.LoadedMsg:
		return msg.Result.Err
	case goals.MutatedMsg:
		if msg.Result.MutationErr != nil {
			return msg.Result.MutationErr
		}
		return msg.Result.Load.Err
	case employees.LoadedMsg:
		return msg.Result.Err
	case employees.MutatedMsg:
		if msg.Result.MutationErr != nil {
			return msg.Result.MutationErr
		}
		return msg.Result.Load.Err
	case reviews.LoadedMsg:
		return msg.Result.Err
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Login screen and open forms own the keyboard
	if a.screen == ScreenLogin {
		return a.forwardToActive(msg)
	}
	if a.inForm() {
		return a.forwardToActive(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "d":
		return a, a.openDashboard()
	case "g":
		return a, a.openGoals()
	case "t":
		if a.auth.HasRole(client.RoleAdmin, client.RoleManager) {
			return a, a.openEmployees()
		}
	case "v":
		return a, a.openReviews()
	case "o":
		return a, a.signOut()
	case "r":
		return a, a.refreshActive()
	}

	return a.forwardToActive(msg)
}

// inForm reports whether the active screen has a modal form open
func (a *App) inForm() bool {
	switch a.screen {
	case ScreenGoals:
		return a.goalsScreen != nil && a.goalsScreen.InForm()
	case ScreenEmployees:
		return a.employeesScreen != nil && a.employeesScreen.InForm()
	}
	return false
}

func (a *App) forwardTo(screen Screen, msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch screen {
	case ScreenDashboard:
		if a.dashboardScreen != nil {
			_, cmd = a.dashboardScreen.Update(msg)
		}
	case ScreenGoals:
		if a.goalsScreen != nil {
			_, cmd = a.goalsScreen.Update(msg)
		}
	case ScreenEmployees:
		if a.employeesScreen != nil {
			_, cmd = a.employeesScreen.Update(msg)
		}
	case ScreenReviews:
		if a.reviewsScreen != nil {
			_, cmd = a.reviewsScreen.Update(msg)
		}
	}
	return a, cmd
}

func (a *App) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin:
		if a.loginScreen != nil {
			_, cmd := a.loginScreen.Update(msg)
			return a, cmd
		}
		return a, nil
	}
	return a.forwardTo(a.screen, msg)
}

func (a *App) doLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.auth.Authenticate(context.Background(), email, password)
		return loginResultMsg{resp: resp, err: err}
	}
}

// forceLogin drops all authenticated screens and shows the login form
func (a *App) forceLogin(notice string) tea.Cmd {
	a.dashboardScreen = nil
	a.goalsScreen = nil
	a.employeesScreen = nil
	a.reviewsScreen = nil
	a.loginScreen = login.New()
	a.loginScreen.SetWidth(a.contentWidth())
	if notice != "" {
		a.loginScreen.SetNotice(notice)
	}
	a.screen = ScreenLogin
	return a.loginScreen.Init()
}

func (a *App) signOut() tea.Cmd {
	a.auth.Logout()
	debuglog.Printf("signed out")
	return a.forceLogin("You have been signed out.")
}

func (a *App) refreshActive() tea.Cmd {
	switch a.screen {
	case ScreenDashboard:
		if a.dashboardScreen != nil {
			return a.dashboardScreen.Refresh()
		}
	case ScreenGoals:
		if a.goalsScreen != nil {
			return a.goalsScreen.Refresh()
		}
	case ScreenEmployees:
		if a.employeesScreen != nil {
			return a.employeesScreen.Refresh()
		}
	case ScreenReviews:
		if a.reviewsScreen != nil {
			return a.reviewsScreen.Refresh()
		}
	}
	return nil
}

func (a *App) openDashboard() tea.Cmd {
	a.screen = ScreenDashboard
	if a.dashboardScreen == nil {
		a.dashboardScreen = dashboard.New(a.client, a.auth, a.contentWidth(), a.contentHeight())
		return a.dashboardScreen.Init()
	}
	return a.dashboardScreen.Refresh()
}

func (a *App) openGoals() tea.Cmd {
	a.screen = ScreenGoals
	if a.goalsScreen == nil {
		a.goalsScreen = goals.New(a.client, a.auth, a.contentWidth(), a.contentHeight())
		return a.goalsScreen.Init()
	}
	return a.goalsScreen.Refresh()
}

func (a *App) openEmployees() tea.Cmd {
	a.screen = ScreenEmployees
	if a.employeesScreen == nil {
		a.employeesScreen = employees.New(a.client, a.auth, a.contentWidth(), a.contentHeight())
		return a.employeesScreen.Init()
	}
	return a.employeesScreen.Refresh()
}

func (a *App) openReviews() tea.Cmd {
	a.screen = ScreenReviews
	if a.reviewsScreen == nil {
		a.reviewsScreen = reviews.New(a.client, a.auth, a.contentWidth(), a.contentHeight())
		return a.reviewsScreen.Init()
	}
	return a.reviewsScreen.Refresh()
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		if a.loginScreen != nil {
			content = a.loginScreen.View()
		}
	case ScreenDashboard:
		body := "Loading..."
		if a.dashboardScreen != nil {
			body = a.dashboardScreen.View()
		}
		content = a.viewPanel(body)
	case ScreenGoals:
		body := "Loading..."
		if a.goalsScreen != nil {
			body = a.goalsScreen.View()
		}
		content = a.viewPanel(body)
	case ScreenEmployees:
		body := "Loading..."
		if a.employeesScreen != nil {
			body = a.employeesScreen.View()
		}
		content = a.viewPanel(body)
	case ScreenReviews:
		body := "Loading..."
		if a.reviewsScreen != nil {
			body = a.reviewsScreen.View()
		}
		content = a.viewPanel(body)
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewPanel(body string) string {
	return styles.ActivePanel.Width(a.contentWidth()).Render(body)
}

// contentWidth calculates the width available inside the frame
func (a *App) contentWidth() int {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width - framePadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, panel border and padding, footer
	return a.height - 8
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("PerfTrack"))

	rightText := ""
	if user := a.auth.CurrentUser(); user != nil && a.screen != ScreenLogin {
		rightText = contextStyle.Render(fmt.Sprintf("%s (%s)", user.FullName(), user.Role)) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	fillWidth := width - 4 - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if fillWidth < 0 {
		fillWidth = 0
	}
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╭─" + leftRendered + fill + rightRendered + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch {
	case a.screen == ScreenLogin:
		shortcuts = []string{"Tab Next field", "Enter Submit", "Ctrl+c Quit"}
	case a.inForm():
		shortcuts = []string{"Tab Next field", "Enter Submit", "Esc Cancel"}
	case a.screen == ScreenGoals:
		shortcuts = []string{"↑↓ Navigate", "n New", "e Edit", "a Approve", "r Refresh", "d Dashboard", "q Quit"}
	case a.screen == ScreenEmployees:
		if a.auth.HasRole(client.RoleAdmin) {
			shortcuts = []string{"↑↓ Navigate", "n New", "e Edit", "r Refresh", "d Dashboard", "q Quit"}
		} else {
			shortcuts = []string{"↑↓ Navigate", "r Refresh", "d Dashboard", "q Quit"}
		}
	case a.screen == ScreenReviews:
		shortcuts = []string{"↑↓ Navigate", "r Refresh", "d Dashboard", "q Quit"}
	default:
		shortcuts = []string{"g Goals"}
		if a.auth.HasRole(client.RoleAdmin, client.RoleManager) {
			shortcuts = append(shortcuts, "t Team")
		}
		shortcuts = append(shortcuts, "v Reviews", "r Refresh", "o Sign out", "q Quit")
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen != ScreenLogin {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╰─" + leftText + fill + rightText + "─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, authc *auth.Coordinator, configDir string) error {
	debuglog.Init(configDir)
	defer debuglog.Close()

	app := New(apiClient, authc)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
