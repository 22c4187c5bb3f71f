// ABOUTME: Goal tracking screen with list, create/edit form, and approval
// ABOUTME: Mutations reconcile by re-fetching; drafts survive failed submits

package goals

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/perftrack/perftrack-cli/internal/auth"
	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/tui/icons"
	"github.com/perftrack/perftrack-cli/internal/tui/styles"
	"github.com/perftrack/perftrack-cli/internal/tui/widgets"
	"github.com/perftrack/perftrack-cli/internal/views"
)

// LoadedMsg carries the goals fetch result
type LoadedMsg struct {
	Result views.LoadResult[client.Goal]
}

// MutatedMsg carries the outcome of create/update/approve plus reconcile
type MutatedMsg struct {
	Action string
	Result views.MutateResult[client.Goal]
}

type mode int

const (
	modeList mode = iota
	modeForm
)

// Goal categories offered by the create/edit form
var categoryOptions = []huh.Option[string]{
	huh.NewOption("Professional Development", "Professional Development"),
	huh.NewOption("Leadership", "Leadership"),
	huh.NewOption("Technical Skills", "Technical Skills"),
	huh.NewOption("Performance", "Performance"),
	huh.NewOption("Other", "Other"),
}

var statusOptions = []huh.Option[string]{
	huh.NewOption("Draft", client.GoalStatusDraft),
	huh.NewOption("Active", client.GoalStatusActive),
	huh.NewOption("Completed", client.GoalStatusCompleted),
	huh.NewOption("Cancelled", client.GoalStatusCancelled),
}

// Goals is the goal-tracking screen
type Goals struct {
	api  *client.Client
	auth *auth.Coordinator
	co   *views.ListCoordinator[client.Goal]

	mode       mode
	cursor     int
	editing    *client.Goal // nil while creating
	form       *huh.Form
	submitting bool // a mutation is in flight; the form must not resubmit

	// Form field values (strings for huh)
	title       string
	description string
	category    string
	targetDate  string
	progress    string
	status      string

	spin   spinner.Model
	errMsg string
	notice string
	width  int
	height int
}

// New creates the goals screen
func New(api *client.Client, authc *auth.Coordinator, width, height int) *Goals {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Goals{
		api:    api,
		auth:   authc,
		co:     views.NewList(api.Goals),
		spin:   s,
		width:  width,
		height: height,
	}
}

// SetSize updates the screen dimensions
func (g *Goals) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// InForm reports whether the create/edit form is open, so the app routes
// keys to it rather than to navigation.
func (g *Goals) InForm() bool {
	return g.mode == modeForm
}

// Init implements tea.Model
func (g *Goals) Init() tea.Cmd {
	return tea.Batch(g.spin.Tick, g.load())
}

func (g *Goals) load() tea.Cmd {
	g.co.Begin()
	return func() tea.Msg {
		return LoadedMsg{Result: g.co.Fetch(context.Background())}
	}
}

// Refresh re-fetches the list
func (g *Goals) Refresh() tea.Cmd {
	g.errMsg = ""
	g.notice = ""
	return g.load()
}

// Update implements tea.Model
func (g *Goals) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		g.spin, cmd = g.spin.Update(msg)
		return g, cmd

	case LoadedMsg:
		g.co.Apply(msg.Result)
		if msg.Result.Err != nil {
			g.errMsg = msg.Result.Err.Error()
		}
		g.clampCursor()
		return g, nil

	case MutatedMsg:
		return g.handleMutated(msg)

	case tea.KeyMsg:
		if g.mode == modeForm {
			return g.updateForm(msg)
		}
		return g.updateList(msg)
	}

	if g.mode == modeForm {
		// huh needs non-key messages for its internals
		return g.updateForm(msg)
	}
	return g, nil
}

func (g *Goals) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := g.co.Items()

	switch msg.String() {
	case "up", "k":
		if g.cursor > 0 {
			g.cursor--
		}
	case "down", "j":
		if g.cursor < len(items)-1 {
			g.cursor++
		}
	case "r":
		return g, g.Refresh()
	case "n":
		g.openCreateForm()
		return g, g.form.Init()
	case "e":
		if g.cursor < len(items) {
			goal := items[g.cursor]
			g.openEditForm(&goal)
			return g, g.form.Init()
		}
	case "a":
		if g.cursor < len(items) {
			goal := items[g.cursor]
			if g.canApprove(&goal) {
				return g, g.approve(goal.ID)
			}
		}
	}
	return g, nil
}

// canApprove mirrors the web client: manager/admin only, draft goals that
// have not been approved yet
func (g *Goals) canApprove(goal *client.Goal) bool {
	return g.auth.HasRole(client.RoleAdmin, client.RoleManager) &&
		goal.Status == client.GoalStatusDraft &&
		!goal.ManagerApproved
}

func (g *Goals) openCreateForm() {
	g.editing = nil
	g.title = ""
	g.description = ""
	g.category = ""
	g.targetDate = ""
	g.progress = "0"
	g.status = client.GoalStatusDraft
	g.form = g.buildForm()
	g.mode = modeForm
	g.errMsg = ""
	g.notice = ""
}

func (g *Goals) openEditForm(goal *client.Goal) {
	g.editing = goal
	g.title = goal.Title
	g.description = goal.Description
	g.category = goal.Category
	g.targetDate = goal.TargetDate
	g.progress = strconv.Itoa(goal.Progress)
	g.status = goal.Status
	g.form = g.buildForm()
	g.mode = modeForm
	g.errMsg = ""
	g.notice = ""
}

func (g *Goals) buildForm() *huh.Form {
	heading := icons.Add.String() + " Create New Goal"
	if g.editing != nil {
		heading = "Edit Goal"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Goal title").
				Value(&g.title).
				Validate(views.ValidateRequired("title")),
			huh.NewText().
				Title("Description").
				Placeholder("Goal description").
				Lines(3).
				Value(&g.description),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&g.category),
			huh.NewInput().
				Title("Target date").
				Placeholder("YYYY-MM-DD").
				Value(&g.targetDate),
			huh.NewInput().
				Title("Progress (%)").
				Placeholder("0").
				CharLimit(3).
				Value(&g.progress).
				Validate(views.ValidateProgressInput),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions...).
				Value(&g.status),
		).Title(heading),
	).WithTheme(huh.ThemeBase())
}

func (g *Goals) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if g.submitting {
		// Stray messages while the mutation is in flight must not re-enter
		// the completed form and dispatch it again
		return g, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		g.mode = modeList
		g.form = nil
		return g, nil
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		return g, g.submitForm()
	}
	return g, cmd
}

// submitForm validates the draft and dispatches create or update. Rejected
// drafts never leave the client.
func (g *Goals) submitForm() tea.Cmd {
	progress := 0
	if strings.TrimSpace(g.progress) != "" {
		progress, _ = strconv.Atoi(strings.TrimSpace(g.progress))
	}

	draft := &client.GoalDraft{
		Title:       strings.TrimSpace(g.title),
		Description: strings.TrimSpace(g.description),
		Category:    g.category,
		TargetDate:  strings.TrimSpace(g.targetDate),
		Progress:    progress,
		Status:      g.status,
	}

	if err := views.ValidateGoalDraft(draft); err != nil {
		// Keep the form open with the draft intact
		g.errMsg = err.Error()
		g.form = g.buildForm()
		return g.form.Init()
	}

	action := "create"
	var mutation func(context.Context) error
	if g.editing != nil {
		action = "update"
		id := g.editing.ID
		mutation = func(ctx context.Context) error {
			_, err := g.api.UpdateGoal(ctx, id, draft)
			return err
		}
	} else {
		mutation = func(ctx context.Context) error {
			_, err := g.api.CreateGoal(ctx, draft)
			return err
		}
	}

	g.submitting = true
	g.co.Begin()
	return func() tea.Msg {
		return MutatedMsg{Action: action, Result: g.co.MutateThenFetch(context.Background(), mutation)}
	}
}

func (g *Goals) approve(id int) tea.Cmd {
	g.co.Begin()
	return func() tea.Msg {
		return MutatedMsg{Action: "approve", Result: g.co.MutateThenFetch(context.Background(), func(ctx context.Context) error {
			_, err := g.api.ApproveGoal(ctx, id)
			return err
		})}
	}
}

func (g *Goals) handleMutated(msg MutatedMsg) (tea.Model, tea.Cmd) {
	g.submitting = false
	g.co.ApplyMutate(msg.Result)

	if msg.Result.MutationErr != nil {
		// Mutation rejected: reopen the form with the draft intact so the
		// user can retry. Approvals have no form to reopen.
		g.errMsg = msg.Result.MutationErr.Error()
		if msg.Action != "approve" && g.form != nil {
			g.form = g.buildForm()
			g.mode = modeForm
			return g, g.form.Init()
		}
		return g, nil
	}

	g.mode = modeList
	g.form = nil
	g.editing = nil

	switch msg.Action {
	case "create":
		g.notice = "Goal created successfully"
	case "update":
		g.notice = "Goal updated successfully"
	case "approve":
		g.notice = "Goal approved successfully"
	}

	if msg.Result.Load.Err != nil {
		g.errMsg = msg.Result.Load.Err.Error()
	}
	g.clampCursor()
	return g, nil
}

func (g *Goals) clampCursor() {
	if n := len(g.co.Items()); g.cursor >= n && n > 0 {
		g.cursor = n - 1
	} else if n == 0 {
		g.cursor = 0
	}
}

// View implements tea.Model
func (g *Goals) View() string {
	if g.mode == modeForm && g.form != nil {
		var sb strings.Builder
		if g.errMsg != "" {
			sb.WriteString(styles.ErrorLine.Render("Error: "+g.errMsg) + "\n\n")
		}
		sb.WriteString(g.form.View())
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Goal.String() + " Goals"))
	sb.WriteString("\n")

	if g.co.Loading() {
		sb.WriteString(g.spin.View() + " Loading goals...\n")
		return sb.String()
	}

	if g.errMsg != "" {
		sb.WriteString(styles.ErrorLine.Render("Error: "+g.errMsg) + "\n")
	}
	if g.notice != "" {
		sb.WriteString(styles.NoticeLine.Render(g.notice) + "\n")
	}

	items := g.co.Items()
	if len(items) == 0 {
		sb.WriteString("\nNo goals found. Press n to create your first goal.\n")
		return sb.String()
	}

	manager := g.auth.HasRole(client.RoleAdmin, client.RoleManager)
	sb.WriteString("\n")
	for i, goal := range items {
		sb.WriteString(g.renderGoal(&goal, i == g.cursor, manager))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (g *Goals) renderGoal(goal *client.Goal, selected, manager bool) string {
	marker := "  "
	if selected {
		marker = styles.KeyStyle.Render("> ")
	}

	title := goal.Title
	if selected {
		title = styles.ValueStyle.Render(title)
	}

	line := fmt.Sprintf("%s%s %s", marker, widgets.GoalStatusBadge(goal.Status), title)
	if manager && goal.EmployeeName != "" {
		line += styles.Subtitle.Render(" · " + goal.EmployeeName)
	}
	if goal.ManagerApproved {
		line += " " + widgets.ApprovedBadge(true)
	} else if g.canApprove(goal) && selected {
		line += styles.Help.Render("  (a to approve)")
	}

	detail := "    " + widgets.ProgressBarWithLabel(float64(goal.Progress), 20)
	if goal.TargetDate != "" {
		detail += styles.Subtitle.Render("  due " + goal.TargetDate)
	}
	if goal.Category != "" {
		detail += styles.Subtitle.Render("  " + goal.Category)
	}

	return line + "\n" + detail
}
