// Package form provides a multi-field input form view for the TUI.
// Each menu action that needs operator input is one form.
package form

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/styles"
)

// Field describes one input of the form.
type Field struct {
	Label       string
	Placeholder string
}

// SubmitFunc performs the form action with the entered values, in field
// order, and returns the message to show on success.
type SubmitFunc func(ctx context.Context, values []string) (string, error)

// View is a form with one or more text fields.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	ctx    context.Context
	id     messages.ViewType
	title  string
	fields []*input.Field
	focus  int
	submit SubmitFunc
}

// NewView creates a form. id identifies the form in ActionCompleted messages.
func NewView(
	s *styles.Styles, km *keymap.KeyMap, id messages.ViewType, title string, fields []Field, submit SubmitFunc,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	inputs := make([]*input.Field, 0, len(fields))
	for _, f := range fields {
		inputs = append(inputs, input.NewField(s, f.Label, f.Placeholder))
	}

	return &View{
		styles: s,
		keymap: km,
		ctx:    context.Background(),
		id:     id,
		title:  title,
		fields: inputs,
		submit: submit,
	}
}

// WithContext sets the context passed to the submit function.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init clears every field and focuses the first one.
func (v *View) Init() tea.Cmd {
	for _, f := range v.fields {
		f.Reset()
		f.Blur()
	}
	v.focus = 0
	if len(v.fields) == 0 {
		return nil
	}
	return v.fields[0].Focus()
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, v.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case key.Matches(keyMsg, v.keymap.Select):
		if v.focus < len(v.fields)-1 {
			return v, v.moveFocus(1)
		}
		return v, v.submitCmd()

	case key.Matches(keyMsg, v.keymap.NextField):
		return v, v.moveFocus(1)

	case key.Matches(keyMsg, v.keymap.PrevField):
		return v, v.moveFocus(-1)
	}

	return v, v.updateFocused(msg)
}

func (v *View) updateFocused(msg tea.Msg) tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return cmd
}

// moveFocus cycles focus by delta fields.
func (v *View) moveFocus(delta int) tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	v.fields[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	return v.fields[v.focus].Focus()
}

func (v *View) submitCmd() tea.Cmd {
	values := v.Values()
	ctx := v.ctx
	id := v.id
	submit := v.submit
	return func() tea.Msg {
		if submit == nil {
			return messages.ActionCompleted{View: id}
		}
		msg, err := submit(ctx, values)
		return messages.ActionCompleted{View: id, Message: msg, Err: err}
	}
}

// Values returns the trimmed field values in order.
func (v *View) Values() []string {
	values := make([]string, 0, len(v.fields))
	for _, f := range v.fields {
		values = append(values, strings.TrimSpace(f.Value()))
	}
	return values
}

// SetValues fills fields in order; extra values are ignored.
func (v *View) SetValues(values ...string) {
	for i, val := range values {
		if i < len(v.fields) {
			v.fields[i].SetValue(val)
		}
	}
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Title returns the form title.
func (v *View) Title() string {
	return v.title
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	return b.String()
}
