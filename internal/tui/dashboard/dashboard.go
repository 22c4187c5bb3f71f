// ABOUTME: Dashboard screen showing aggregate statistics and charts
// ABOUTME: Fetches goals, reviews, and analytics concurrently on entry

package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/perftrack/perftrack-cli/internal/auth"
	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/tui/icons"
	"github.com/perftrack/perftrack-cli/internal/tui/styles"
	"github.com/perftrack/perftrack-cli/internal/tui/widgets"
	"github.com/perftrack/perftrack-cli/internal/views"
)

// GoalsLoadedMsg carries the goals fetch result
type GoalsLoadedMsg struct {
	Result views.LoadResult[client.Goal]
}

// ReviewsLoadedMsg carries the reviews fetch result
type ReviewsLoadedMsg struct {
	Result views.LoadResult[client.Review]
}

// AnalyticsLoadedMsg carries the analytics fetch result
type AnalyticsLoadedMsg struct {
	Analytics *client.DashboardAnalytics
	Err       error
}

// TrendsLoadedMsg carries the performance trends fetch result
type TrendsLoadedMsg struct {
	Trends *client.PerformanceTrends
	Err    error
}

// Dashboard is the landing screen after login
type Dashboard struct {
	api  *client.Client
	auth *auth.Coordinator

	goals     *views.ListCoordinator[client.Goal]
	reviews   *views.ListCoordinator[client.Review]
	analytics *client.DashboardAnalytics
	trends    *client.PerformanceTrends

	spin   spinner.Model
	errMsg string
	width  int
	height int
}

// New creates the dashboard screen
func New(api *client.Client, authc *auth.Coordinator, width, height int) *Dashboard {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Dashboard{
		api:     api,
		auth:    authc,
		goals:   views.NewList(api.Goals),
		reviews: views.NewList(api.Reviews),
		spin:    s,
		width:   width,
		height:  height,
	}
}

// SetSize updates the screen dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Init implements tea.Model. Goals, reviews, and analytics touch disjoint
// state, so their fetches run as independent commands.
func (d *Dashboard) Init() tea.Cmd {
	cmds := []tea.Cmd{d.spin.Tick, d.loadGoals(), d.loadReviews()}
	if d.auth.HasRole(client.RoleAdmin, client.RoleManager) {
		cmds = append(cmds, d.loadAnalytics(), d.loadTrends())
	}
	return tea.Batch(cmds...)
}

func (d *Dashboard) loadGoals() tea.Cmd {
	d.goals.Begin()
	return func() tea.Msg {
		return GoalsLoadedMsg{Result: d.goals.Fetch(context.Background())}
	}
}

func (d *Dashboard) loadReviews() tea.Cmd {
	d.reviews.Begin()
	return func() tea.Msg {
		return ReviewsLoadedMsg{Result: d.reviews.Fetch(context.Background())}
	}
}

func (d *Dashboard) loadAnalytics() tea.Cmd {
	return func() tea.Msg {
		analytics, err := d.api.DashboardAnalytics(context.Background())
		return AnalyticsLoadedMsg{Analytics: analytics, Err: err}
	}
}

func (d *Dashboard) loadTrends() tea.Cmd {
	return func() tea.Msg {
		trends, err := d.api.PerformanceTrends(context.Background())
		return TrendsLoadedMsg{Trends: trends, Err: err}
	}
}

// Refresh re-issues all fetches
func (d *Dashboard) Refresh() tea.Cmd {
	d.errMsg = ""
	return d.Init()
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return d, cmd

	case GoalsLoadedMsg:
		d.goals.Apply(msg.Result)
		if msg.Result.Err != nil {
			d.errMsg = msg.Result.Err.Error()
		}
		return d, nil

	case ReviewsLoadedMsg:
		d.reviews.Apply(msg.Result)
		if msg.Result.Err != nil {
			d.errMsg = msg.Result.Err.Error()
		}
		return d, nil

	case AnalyticsLoadedMsg:
		if msg.Err != nil {
			// Stale-but-present beats empty-and-broken
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.analytics = msg.Analytics
		return d, nil

	case TrendsLoadedMsg:
		if msg.Err == nil {
			d.trends = msg.Trends
		}
		return d, nil
	}

	return d, nil
}

// Loading reports whether any fetch is still in flight
func (d *Dashboard) Loading() bool {
	return d.goals.Loading() || d.reviews.Loading()
}

// View implements tea.Model
func (d *Dashboard) View() string {
	user := d.auth.CurrentUser()
	if user == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("Welcome back, %s!", user.FirstName)))
	sb.WriteString("\n")

	if d.Loading() {
		sb.WriteString(d.spin.View() + " Loading dashboard data...\n")
		return sb.String()
	}

	if d.errMsg != "" {
		sb.WriteString(styles.ErrorLine.Render("Error: "+d.errMsg) + "\n\n")
	}

	manager := d.auth.HasRole(client.RoleAdmin, client.RoleManager)

	if manager && d.analytics != nil {
		sb.WriteString(d.renderStatCards())
		sb.WriteString("\n\n")
	}

	sb.WriteString(d.renderGoalStatus(manager))
	sb.WriteString("\n\n")
	sb.WriteString(d.renderRecentReviews(manager))

	if manager && d.analytics != nil {
		sb.WriteString("\n\n")
		sb.WriteString(d.renderRatings())
	}
	if manager && d.analytics != nil && len(d.analytics.DepartmentBreakdown) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(d.renderDepartments())
	}
	if manager && d.trends != nil && len(d.trends.Trends) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(d.renderTrends())
	}

	return sb.String()
}

func (d *Dashboard) renderStatCards() string {
	cfg := widgets.DefaultStatCardConfig()

	cards := []string{
		widgets.CountCard(icons.Team, "Employees", d.analytics.TotalEmployees, "total", cfg),
		widgets.CountCard(icons.Goal, "Goals", d.analytics.TotalGoals, "tracked", cfg),
		widgets.CountCard(icons.Review, "Reviews", d.analytics.TotalReviews, "on record", cfg),
		widgets.PercentCard(icons.Chart, "Completion", d.analytics.GoalCompletionRate, "goals completed", cfg),
		widgets.PercentCard(icons.Review, "Reviews Done", d.analytics.ReviewCompletionRate, "reviews completed", cfg),
	}

	// Two columns when the terminal is narrow
	if d.width > 0 && d.width < len(cards)*24 {
		rows := make([]string, 0, (len(cards)+1)/2)
		for i := 0; i < len(cards); i += 2 {
			if i+1 < len(cards) {
				rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i], " ", cards[i+1]))
			} else {
				rows = append(rows, cards[i])
			}
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}
	joined := cards[0]
	for _, c := range cards[1:] {
		joined = lipgloss.JoinHorizontal(lipgloss.Top, joined, " ", c)
	}
	return joined
}

func (d *Dashboard) renderGoalStatus(manager bool) string {
	title := "My Goals Status"
	if manager {
		title = "Team Goals Status"
	}

	goals := d.goals.Items()
	if len(goals) == 0 {
		return styles.Subtitle.Render(title) + "\nNo goals found"
	}

	counts := views.GoalStatusCounts(goals)
	rows := make([]widgets.BarRow, 0, len(counts))
	for _, sc := range counts {
		rows = append(rows, widgets.BarRow{
			Label: sc.Status,
			Value: float64(sc.Count),
			Color: styles.StatusColor(sc.Status),
		})
	}

	chart := widgets.BarChart(rows, 24, func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	})
	return styles.Subtitle.Render(title) + "\n" + chart
}

func (d *Dashboard) renderRecentReviews(manager bool) string {
	reviews := d.reviews.Items()
	if len(reviews) == 0 {
		return styles.Subtitle.Render("Recent Reviews") + "\nNo reviews found"
	}

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Recent Reviews"))
	sb.WriteString("\n")

	limit := 5
	if len(reviews) < limit {
		limit = len(reviews)
	}
	for i := 0; i < limit; i++ {
		r := reviews[i]
		name := r.ReviewerName
		if manager {
			name = r.RevieweeName
		}
		rating := "Pending"
		if r.OverallRating > 0 {
			rating = fmt.Sprintf("%.1f/5", r.OverallRating)
		}
		sb.WriteString(fmt.Sprintf("%s  %s · %s  %s %s\n",
			widgets.ReviewStatusBadge(r.Status),
			name,
			r.ReviewType,
			styles.ValueStyle.Render(rating),
			styles.Subtitle.Render(r.ReviewPeriod),
		))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (d *Dashboard) renderRatings() string {
	ratings := views.RatingRows(d.analytics.AverageRatings)
	rows := make([]widgets.BarRow, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, widgets.BarRow{Label: r.Name, Value: r.Value, Color: styles.Primary})
	}
	return styles.Subtitle.Render("Average Performance Ratings") + "\n" + widgets.RatingChart(rows, 24)
}

func (d *Dashboard) renderDepartments() string {
	rows := make([]widgets.BarRow, 0, len(d.analytics.DepartmentBreakdown))
	for _, dep := range d.analytics.DepartmentBreakdown {
		rows = append(rows, widgets.BarRow{Label: dep.Department, Value: float64(dep.Count), Color: styles.Secondary})
	}
	chart := widgets.BarChart(rows, 24, func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	})
	return styles.Subtitle.Render("Headcount by Department") + "\n" + chart
}

func (d *Dashboard) renderTrends() string {
	points := d.trends.Trends
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.AverageRating
	}
	spark := widgets.Sparkline(values, styles.Accent)
	first := points[0].Month
	last := points[len(points)-1].Month
	return styles.Subtitle.Render("Rating Trend") + "\n" +
		fmt.Sprintf("%s  %s → %s", spark, first, last)
}
