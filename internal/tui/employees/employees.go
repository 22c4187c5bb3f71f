// ABOUTME: Employee roster screen backed by a table, with admin create/edit
// ABOUTME: Passwords are collected on create only and never echoed

package employees

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/perftrack/perftrack-cli/internal/auth"
	"github.com/perftrack/perftrack-cli/internal/client"
	"github.com/perftrack/perftrack-cli/internal/tui/icons"
	"github.com/perftrack/perftrack-cli/internal/tui/styles"
	"github.com/perftrack/perftrack-cli/internal/views"
)

// LoadedMsg carries the roster fetch result
type LoadedMsg struct {
	Result views.LoadResult[client.Employee]
}

// MutatedMsg carries the outcome of a create/update plus reconcile
type MutatedMsg struct {
	Action string
	Result views.MutateResult[client.Employee]
}

type mode int

const (
	modeList mode = iota
	modeForm
)

var roleOptions = []huh.Option[string]{
	huh.NewOption("Employee", client.RoleEmployee),
	huh.NewOption("Manager", client.RoleManager),
	huh.NewOption("Admin", client.RoleAdmin),
}

// Employees is the roster management screen
type Employees struct {
	api  *client.Client
	auth *auth.Coordinator
	co   *views.ListCoordinator[client.Employee]

	mode       mode
	tbl        table.Model
	editing    *client.Employee // nil while creating
	form       *huh.Form
	submitting bool // a mutation is in flight; the form must not resubmit

	email      string
	firstName  string
	lastName   string
	password   string
	role       string
	department string
	position   string

	spin   spinner.Model
	errMsg string
	notice string
	width  int
	height int
}

// New creates the employees screen
func New(api *client.Client, authc *auth.Coordinator, width, height int) *Employees {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	e := &Employees{
		api:    api,
		auth:   authc,
		co:     views.NewList(api.Employees),
		spin:   s,
		width:  width,
		height: height,
	}
	e.tbl = e.buildTable(nil)
	return e
}

// SetSize updates the screen dimensions
func (e *Employees) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.tbl.SetHeight(e.tableHeight())
}

// InForm reports whether the create/edit form is open
func (e *Employees) InForm() bool {
	return e.mode == modeForm
}

func (e *Employees) tableHeight() int {
	h := e.height - 8
	if h < 4 {
		h = 4
	}
	return h
}

func (e *Employees) buildTable(employees []client.Employee) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Role", Width: 10},
		{Title: "Department", Width: 16},
		{Title: "Position", Width: 20},
	}

	rows := make([]table.Row, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, table.Row{
			emp.FullName(),
			emp.Email,
			emp.Role,
			emp.Department,
			emp.Position,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(e.tableHeight()),
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
func (e *Employees) Init() tea.Cmd {
	return tea.Batch(e.spin.Tick, e.load())
}

func (e *Employees) load() tea.Cmd {
	e.co.Begin()
	return func() tea.Msg {
		return LoadedMsg{Result: e.co.Fetch(context.Background())}
	}
}

// Refresh re-fetches the roster
func (e *Employees) Refresh() tea.Cmd {
	e.errMsg = ""
	e.notice = ""
	return e.load()
}

// Update implements tea.Model
func (e *Employees) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		e.spin, cmd = e.spin.Update(msg)
		return e, cmd

	case LoadedMsg:
		e.co.Apply(msg.Result)
		if msg.Result.Err != nil {
			e.errMsg = msg.Result.Err.Error()
		}
		e.tbl = e.buildTable(e.co.Items())
		return e, nil

	case MutatedMsg:
		return e.handleMutated(msg)

	case tea.KeyMsg:
		if e.mode == modeForm {
			return e.updateForm(msg)
		}
		return e.updateList(msg)
	}

	if e.mode == modeForm {
		return e.updateForm(msg)
	}
	return e, nil
}

func (e *Employees) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	admin := e.auth.HasRole(client.RoleAdmin)

	switch msg.String() {
	case "r":
		return e, e.Refresh()
	case "n":
		if admin {
			e.openCreateForm()
			return e, e.form.Init()
		}
		return e, nil
	case "e":
		if admin {
			items := e.co.Items()
			if idx := e.tbl.Cursor(); idx >= 0 && idx < len(items) {
				emp := items[idx]
				e.openEditForm(&emp)
				return e, e.form.Init()
			}
		}
		return e, nil
	}

	var cmd tea.Cmd
	e.tbl, cmd = e.tbl.Update(msg)
	return e, cmd
}

func (e *Employees) openCreateForm() {
	e.editing = nil
	e.email = ""
	e.firstName = ""
	e.lastName = ""
	e.password = ""
	e.role = client.RoleEmployee
	e.department = ""
	e.position = ""
	e.form = e.buildForm()
	e.mode = modeForm
	e.errMsg = ""
	e.notice = ""
}

func (e *Employees) openEditForm(emp *client.Employee) {
	e.editing = emp
	e.email = emp.Email
	e.firstName = emp.FirstName
	e.lastName = emp.LastName
	e.password = ""
	e.role = emp.Role
	e.department = emp.Department
	e.position = emp.Position
	e.form = e.buildForm()
	e.mode = modeForm
	e.errMsg = ""
	e.notice = ""
}

func (e *Employees) buildForm() *huh.Form {
	creating := e.editing == nil
	heading := icons.Add.String() + " Add New Employee"
	if !creating {
		heading = "Edit Employee"
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("user@company.com").
			Value(&e.email).
			Validate(views.ValidateEmail),
		huh.NewInput().
			Title("First name").
			Value(&e.firstName).
			Validate(views.ValidateRequired("first name")),
		huh.NewInput().
			Title("Last name").
			Value(&e.lastName).
			Validate(views.ValidateRequired("last name")),
	}
	if creating {
		fields = append(fields,
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&e.password).
				Validate(views.ValidateRequired("password")),
		)
	}
	fields = append(fields,
		huh.NewSelect[string]().
			Title("Role").
			Options(roleOptions...).
			Value(&e.role),
		huh.NewInput().
			Title("Department").
			Value(&e.department),
		huh.NewInput().
			Title("Position").
			Value(&e.position),
	)

	return huh.NewForm(
		huh.NewGroup(fields...).Title(heading),
	).WithTheme(huh.ThemeBase())
}

func (e *Employees) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e.submitting {
		// Stray messages while the mutation is in flight must not re-enter
		// the completed form and dispatch it again
		return e, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		e.mode = modeList
		e.form = nil
		return e, nil
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		return e, e.submitForm()
	}
	return e, cmd
}

func (e *Employees) submitForm() tea.Cmd {
	creating := e.editing == nil

	draft := &client.EmployeeDraft{
		Email:      strings.TrimSpace(e.email),
		FirstName:  strings.TrimSpace(e.firstName),
		LastName:   strings.TrimSpace(e.lastName),
		Password:   e.password,
		Role:       e.role,
		Department: strings.TrimSpace(e.department),
		Position:   strings.TrimSpace(e.position),
	}

	if err := views.ValidateEmployeeDraft(draft, creating); err != nil {
		e.errMsg = err.Error()
		e.form = e.buildForm()
		return e.form.Init()
	}

	action := "create"
	var mutation func(context.Context) error
	if !creating {
		action = "update"
		id := e.editing.ID
		mutation = func(ctx context.Context) error {
			_, err := e.api.UpdateEmployee(ctx, id, draft)
			return err
		}
	} else {
		mutation = func(ctx context.Context) error {
			_, err := e.api.CreateEmployee(ctx, draft)
			return err
		}
	}

	e.submitting = true
	e.co.Begin()
	return func() tea.Msg {
		return MutatedMsg{Action: action, Result: e.co.MutateThenFetch(context.Background(), mutation)}
	}
}

func (e *Employees) handleMutated(msg MutatedMsg) (tea.Model, tea.Cmd) {
	e.submitting = false
	e.co.ApplyMutate(msg.Result)

	if msg.Result.MutationErr != nil {
		e.errMsg = msg.Result.MutationErr.Error()
		if e.form != nil {
			e.form = e.buildForm()
			e.mode = modeForm
			return e, e.form.Init()
		}
		return e, nil
	}

	e.mode = modeList
	e.form = nil
	e.editing = nil

	switch msg.Action {
	case "create":
		e.notice = "Employee created successfully"
	case "update":
		e.notice = "Employee updated successfully"
	}

	if msg.Result.Load.Err != nil {
		e.errMsg = msg.Result.Load.Err.Error()
	}
	e.tbl = e.buildTable(e.co.Items())
	return e, nil
}

// View implements tea.Model
func (e *Employees) View() string {
	if e.mode == modeForm && e.form != nil {
		var sb strings.Builder
		if e.errMsg != "" {
			sb.WriteString(styles.ErrorLine.Render("Error: "+e.errMsg) + "\n\n")
		}
		sb.WriteString(e.form.View())
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Team.String() + " Employees"))
	sb.WriteString("\n")

	if e.co.Loading() {
		sb.WriteString(e.spin.View() + " Loading employees...\n")
		return sb.String()
	}

	if e.errMsg != "" {
		sb.WriteString(styles.ErrorLine.Render("Error: "+e.errMsg) + "\n")
	}
	if e.notice != "" {
		sb.WriteString(styles.NoticeLine.Render(e.notice) + "\n")
	}

	items := e.co.Items()
	if len(items) == 0 {
		sb.WriteString("\nNo employees found.\n")
		return sb.String()
	}

	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s %d employees", icons.Employee, len(items))) + "\n\n")
	sb.WriteString(e.tbl.View())
	return sb.String()
}
