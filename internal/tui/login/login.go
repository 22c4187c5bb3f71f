// ABOUTME: Login screen as a bubbletea model
// ABOUTME: Uses a huh form for credentials and reports submissions to the app

package login

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/perftrack/perftrack-cli/internal/tui/icons"
	"github.com/perftrack/perftrack-cli/internal/tui/styles"
	"github.com/perftrack/perftrack-cli/internal/views"
)

// SubmitMsg is sent when the user confirms the login form
type SubmitMsg struct {
	Email    string
	Password string
}

// Login is the credentials screen
type Login struct {
	form     *huh.Form
	email    string
	password string
	errMsg   string
	notice   string
	busy     bool
	width    int
}

// New creates the login screen
func New() *Login {
	l := &Login{}
	l.form = l.buildForm()
	return l
}

func (l *Login) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email address").
				Placeholder("you@company.com").
				Value(&l.email).
				Validate(views.ValidateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(views.ValidateRequired("password")),
		).Title("Sign in to your account"),
	).WithTheme(huh.ThemeBase())
}

// SetError surfaces a failed login and reopens the form with the draft intact
func (l *Login) SetError(msg string) {
	l.errMsg = msg
	l.busy = false
	l.form = l.buildForm()
}

// SetNotice shows an informational line above the form (e.g. session expired)
func (l *Login) SetNotice(msg string) {
	l.notice = msg
}

// SetWidth updates the available width
func (l *Login) SetWidth(width int) {
	l.width = width
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wm, ok := msg.(tea.WindowSizeMsg); ok {
		l.width = wm.Width
	}

	if l.busy {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.busy = true
		l.errMsg = ""
		email, password := l.email, l.password
		return l, func() tea.Msg {
			return SubmitMsg{Email: email, Password: password}
		}
	}

	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb []string

	sb = append(sb, styles.Title.Render(icons.Lock.String()+" Performance Management System"))

	if l.notice != "" {
		sb = append(sb, styles.NoticeLine.Render(l.notice))
	}
	if l.errMsg != "" {
		sb = append(sb, styles.ErrorLine.Render("Login failed: "+l.errMsg))
	}

	if l.busy {
		sb = append(sb, "Signing in...")
	} else {
		sb = append(sb, l.form.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sb...)
}
