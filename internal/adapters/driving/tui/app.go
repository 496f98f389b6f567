package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/views/report"
	"github.com/custodia-labs/gradebook/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView   *menu.View
	reportView *report.View
	forms      map[messages.ViewType]*form.View
	statusBar  *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, km),
		reportView:  report.NewView(s, km, ports.Records),
		statusBar:   status.NewBar(s),
		currentView: messages.ViewMenu,
	}
	a.forms = a.buildForms()
	return a, nil
}

// buildForms creates one form per menu action that takes input.
func (a *App) buildForms() map[messages.ViewType]*form.View {
	records := a.ports.Records
	newForm := func(id messages.ViewType, title string, fields []form.Field, submit form.SubmitFunc) *form.View {
		return form.NewView(a.styles, a.keymap, id, title, fields, submit)
	}

	return map[messages.ViewType]*form.View{
		messages.ViewAddStudent: newForm(messages.ViewAddStudent, "Add Student",
			[]form.Field{{Label: "Student ID", Placeholder: "S1"}, {Label: "Name", Placeholder: "Ann"}},
			func(ctx context.Context, v []string) (string, error) {
				if err := records.AddStudent(ctx, domain.NewStudent(v[0], v[1])); err != nil {
					return "", err
				}
				return "Student added successfully.", nil
			}),

		messages.ViewAddCourse: newForm(messages.ViewAddCourse, "Add Course",
			[]form.Field{{Label: "Course ID", Placeholder: "CS101"}, {Label: "Name", Placeholder: "Intro to CS"}},
			func(ctx context.Context, v []string) (string, error) {
				if err := records.AddCourse(ctx, domain.NewCourse(v[0], v[1])); err != nil {
					return "", err
				}
				return "Course added successfully.", nil
			}),

		messages.ViewRecordGrade: newForm(messages.ViewRecordGrade, "Record Grades",
			[]form.Field{
				{Label: "Student ID", Placeholder: "S1"},
				{Label: "Course ID", Placeholder: "CS101"},
				{Label: "Score", Placeholder: "88.5"},
			},
			func(ctx context.Context, v []string) (string, error) {
				score, err := strconv.ParseFloat(v[2], 64)
				if err != nil {
					return "", fmt.Errorf("invalid score %q: %w", v[2], domain.ErrInvalidInput)
				}
				if err := records.RecordGrade(ctx, v[0], v[1], score); err != nil {
					return "", err
				}
				return "Grade recorded successfully.", nil
			}),

		messages.ViewGPA: newForm(messages.ViewGPA, "Calculate GPA",
			[]form.Field{{Label: "Student ID", Placeholder: "S1"}},
			func(ctx context.Context, v []string) (string, error) {
				gpa, err := records.GPA(ctx, v[0])
				if err != nil {
					return "", err
				}
				student, err := records.Student(ctx, v[0])
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("GPA for student %s: %s", student.Name, domain.FormatGPA(gpa)), nil
			}),
	}
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.reportView.WithContext(ctx)
	for _, f := range a.forms {
		f.WithContext(ctx)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("gradebook")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.ForceQuit) {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewMenu {
			a.statusBar.Clear()
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		if f, ok := a.forms[msg.View]; ok {
			return a, f.Init()
		}
		if msg.View == messages.ViewReport {
			return a, a.reportView.Init()
		}
		return a, nil

	case messages.ActionCompleted:
		if msg.Err != nil {
			a.statusBar.SetError(msg.Err)
			return a, nil
		}
		a.statusBar.SetMessage(msg.Message)
		a.currentView = messages.ViewMenu
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	default:
		if f, ok := a.forms[a.currentView]; ok {
			a.forms[a.currentView], cmd = f.Update(msg)
		}
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	var body string
	hints := a.keymap.FormHelp()

	switch a.currentView {
	case messages.ViewMenu:
		body = a.menuView.View()
		hints = a.keymap.MenuHelp()
	case messages.ViewReport:
		body = a.reportView.View()
		hints = a.keymap.ReportHelp()
	default:
		if f, ok := a.forms[a.currentView]; ok {
			body = f.View()
		}
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(a.statusBar.View(hints))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Status returns the status bar message and whether it is an error.
func (a *App) Status() (string, bool) {
	return a.statusBar.Message(), a.statusBar.IsError()
}

// Form returns the form for a view, or nil.
func (a *App) Form(view messages.ViewType) *form.View {
	return a.forms[view]
}
