package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gradebook/internal/adapters/driving/tui"
)

// isTerminal reports whether stdin is interactive. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Open the interactive menu for adding students and courses, recording
grades and viewing GPAs and the grade report.

Controls:
  ↑/k, ↓/j  - Navigate the menu
  1-6       - Pick an entry
  Enter     - Select / next field / submit
  Tab       - Next field
  Esc       - Back to the menu
  q         - Quit from the menu`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	if err := requireRecords(); err != nil {
		return err
	}
	if !isTerminal() {
		return errors.New("menu requires an interactive terminal; use the student, course, grade, gpa and report commands instead")
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in menu: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(recordService))
	if err != nil {
		return fmt.Errorf("failed to create menu: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("menu error: %w", err)
	}

	return nil
}
