// Package status provides the status line shown under every TUI view.
package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui/styles"
)

// Bar displays the outcome of the last action and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	message string
	isError bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Bar{
		styles: s,
		width:  80,
	}
}

// SetMessage shows a success message.
func (b *Bar) SetMessage(msg string) {
	b.message = msg
	b.isError = false
}

// SetError shows an error message.
func (b *Bar) SetError(err error) {
	if err == nil {
		b.Clear()
		return
	}
	b.message = err.Error()
	b.isError = true
}

// Clear removes the current message.
func (b *Bar) Clear() {
	b.message = ""
	b.isError = false
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// IsError reports whether the current message is an error.
func (b *Bar) IsError() bool {
	return b.isError
}

// SetWidth sets the rendering width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// View renders the message on the left and the hints on the right.
func (b *Bar) View(hints []key.Binding) string {
	left := ""
	if b.message != "" {
		if b.isError {
			left = b.styles.Error.Render("Error: " + b.message)
		} else {
			left = b.styles.Success.Render(b.message)
		}
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, "["+h.Help().Key+"] "+h.Help().Desc)
	}
	right := b.styles.Muted.Render(strings.Join(parts, "  "))

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
}
