// ABOUTME: Read-only performance review list shown per-role
// ABOUTME: Managers see who they reviewed, employees see who reviewed them

package reviews

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/perftrack/perftrack-cli/internal/auth"
	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/tui/icons"
	"github.com/perftrack/perftrack-cli/internal/tui/styles"
	"github.com/perftrack/perftrack-cli/internal/views"
)

// LoadedMsg carries the reviews fetch result
type LoadedMsg struct {
	Result views.LoadResult[client.Review]
}

// Reviews is the performance review list screen
type Reviews struct {
	api  *client.Client
	auth *auth.Coordinator
	co   *views.ListCoordinator[client.Review]

	tbl    table.Model
	spin   spinner.Model
	errMsg string
	width  int
	height int
}

// New creates the reviews screen
func New(api *client.Client, authc *auth.Coordinator, width, height int) *Reviews {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	r := &Reviews{
		api:    api,
		auth:   authc,
		co:     views.NewList(api.Reviews),
		spin:   s,
		width:  width,
		height: height,
	}
	r.tbl = r.buildTable(nil)
	return r
}

// SetSize updates the screen dimensions
func (r *Reviews) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.tbl.SetHeight(r.tableHeight())
}

func (r *Reviews) tableHeight() int {
	h := r.height - 8
	if h < 4 {
		h = 4
	}
	return h
}

func (r *Reviews) buildTable(reviews []client.Review) table.Model {
	manager := r.auth.HasRole(client.RoleAdmin, client.RoleManager)
	nameTitle := "Reviewer"
	if manager {
		nameTitle = "Employee"
	}

	columns := []table.Column{
		{Title: "Period", Width: 22},
		{Title: nameTitle, Width: 24},
		{Title: "Rating", Width: 10},
		{Title: "Status", Width: 12},
	}

	rows := make([]table.Row, 0, len(reviews))
	for _, rev := range reviews {
		name := rev.ReviewerName
		if manager {
			name = rev.RevieweeName
		}
		rating := icons.Pending.String() + " Pending"
		if rev.OverallRating > 0 {
			rating = fmt.Sprintf("%s %.1f/5", icons.Star.String(), rev.OverallRating)
		}
		rows = append(rows, table.Row{
			rev.ReviewPeriod,
			name,
			rating,
			rev.Status,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(r.tableHeight()),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(styles.Primary).
		Bold(false)
	t.SetStyles(st)
	return t
}

// Init implements tea.Model
func (r *Reviews) Init() tea.Cmd {
	return tea.Batch(r.spin.Tick, r.load())
}

func (r *Reviews) load() tea.Cmd {
	r.co.Begin()
	return func() tea.Msg {
		return LoadedMsg{Result: r.co.Fetch(context.Background())}
	}
}

// Refresh re-fetches the list
func (r *Reviews) Refresh() tea.Cmd {
	r.errMsg = ""
	return r.load()
}

// Update implements tea.Model
func (r *Reviews) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spin, cmd = r.spin.Update(msg)
		return r, cmd

	case LoadedMsg:
		r.co.Apply(msg.Result)
		if msg.Result.Err != nil {
			r.errMsg = msg.Result.Err.Error()
		}
		r.tbl = r.buildTable(r.co.Items())
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return r, r.Refresh()
		}
		var cmd tea.Cmd
		r.tbl, cmd = r.tbl.Update(msg)
		return r, cmd
	}
	return r, nil
}

// View implements tea.Model
func (r *Reviews) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Review.String() + " Performance Reviews"))
	sb.WriteString("\n")

	if r.co.Loading() {
		sb.WriteString(r.spin.View() + " Loading reviews...\n")
		return sb.String()
	}

	if r.errMsg != "" {
		sb.WriteString(styles.ErrorLine.Render("Error: "+r.errMsg) + "\n")
	}

	items := r.co.Items()
	if len(items) == 0 {
		sb.WriteString("\nNo reviews found.\n")
		return sb.String()
	}

	completed := 0
	for _, rev := range items {
		if rev.Status == client.ReviewStatusCompleted {
			completed++
		}
	}
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d reviews, %d completed", len(items), completed)) + "\n\n")
	sb.WriteString(r.tbl.View())
	return sb.String()
}
