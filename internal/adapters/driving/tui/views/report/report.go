// Package report provides the grade report view for the TUI.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/ports/driving"
)

// View shows every student's name and GPA.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	records driving.RecordService
	ctx     context.Context
	entries []domain.ReportEntry
	loaded  bool
}

// NewView creates a report view over the record service.
func NewView(s *styles.Styles, km *keymap.KeyMap, records driving.RecordService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		records: records,
		ctx:     context.Background(),
	}
}

// WithContext sets the context used to compute the report.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init computes the report.
func (v *View) Init() tea.Cmd {
	v.loaded = false
	return v.load()
}

func (v *View) load() tea.Cmd {
	records := v.records
	ctx := v.ctx
	return func() tea.Msg {
		var entries []domain.ReportEntry
		if records != nil {
			for entry := range records.Report(ctx) {
				entries = append(entries, entry)
			}
		}
		return messages.ReportLoaded{Entries: entries}
	}
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ReportLoaded:
		v.entries = msg.Entries
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case key.Matches(msg, v.keymap.Refresh):
			return v, v.load()
		}
	}

	return v, nil
}

// Entries returns the last computed report.
func (v *View) Entries() []domain.ReportEntry {
	return v.entries
}

// View renders the report.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Grade Report"))
	b.WriteString("\n\n")

	switch {
	case !v.loaded:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("No students."))
		b.WriteString("\n")
	default:
		for _, e := range v.entries {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Student: %s, GPA: %s", e.Name, domain.FormatGPA(e.GPA))))
			b.WriteString("\n")
		}
	}

	return b.String()
}
