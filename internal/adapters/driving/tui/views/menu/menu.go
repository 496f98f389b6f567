// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
}

// NewView creates a new menu view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		items: []Item{
			{Label: "Add Student", View: messages.ViewAddStudent},
			{Label: "Add Course", View: messages.ViewAddCourse},
			{Label: "Record Grades", View: messages.ViewRecordGrade},
			{Label: "Calculate GPA", View: messages.ViewGPA},
			{Label: "Generate Grade Report", View: messages.ViewReport},
			{Label: "Exit", Quit: true},
		},
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch {
	case key.Matches(keyMsg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case key.Matches(keyMsg, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
		return v, nil

	case key.Matches(keyMsg, v.keymap.Select):
		return v, v.choose(v.selected)

	case key.Matches(keyMsg, v.keymap.Quit):
		return v, tea.Quit
	}

	// Number keys pick an entry directly.
	if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'0') <= len(v.items) {
		v.selected = int(s[0]-'1')
		return v, v.choose(v.selected)
	}

	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Gradebook"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Students, courses and grades"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}

		b.WriteString(cursor + style.Render(fmt.Sprintf("%d. %s", i+1, item.Label)))
		b.WriteString("\n")
	}

	return b.String()
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
