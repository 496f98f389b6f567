// Package cli provides the gradebook command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook/internal/logger"
)

// skipBootstrap marks commands that run without the record services.
const skipBootstrap = "skip-bootstrap"

// version is set at build time via SetVersion.
var version = "dev"

var (
	verbose bool
	homeDir string
)

// Services configured by Init or SetServices.
var (
	recordService   driving.RecordService
	settingsService driving.SettingsService
	closeServices   func() error
)

// Services bundles everything the commands call into.
type Services struct {
	Records  driving.RecordService
	Settings driving.SettingsService

	// Close releases the backing store. May be nil.
	Close func() error
}

// Bootstrap builds the services once global flags are parsed.
// home is the value of --home; empty selects the default config directory.
type Bootstrap func(ctx context.Context, home string) (*Services, error)

var bootstrap Bootstrap

var rootCmd = &cobra.Command{
	Use:   "gradebook",
	Short: "Manage students, courses and grades",
	Long: `Gradebook keeps student and course records in plain text files
(or a SQLite database) and computes GPAs and grade reports from them.

Every change is written back to storage immediately. Run 'gradebook menu'
for the interactive menu.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show diagnostic output")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "config directory (default ~/.gradebook)")
}

// SetVersion sets the version reported by 'gradebook version'.
func SetVersion(v string) {
	version = v
}

// Init registers the function that builds services before a command runs.
func Init(b Bootstrap) {
	bootstrap = b
}

// SetServices installs already-built services.
func SetServices(s *Services) {
	if s == nil {
		recordService, settingsService, closeServices = nil, nil, nil
		return
	}
	recordService = s.Records
	settingsService = s.Settings
	closeServices = s.Close
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipBootstrap] == "true" || bootstrap == nil || recordService != nil {
		return nil
	}

	svc, err := bootstrap(cmd.Context(), homeDir)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(svc)

	printLoadSummary(cmd, recordService.Load(cmd.Context()))
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	return closeServices()
}

// printLoadSummary reports kinds that could not be read and lines that were
// skipped. Missing data is normal on first run, so the process carries on
// with what it has.
func printLoadSummary(cmd *cobra.Command, summary domain.LoadSummary) {
	for _, kind := range domain.Kinds() {
		err, failed := summary.Failures[kind]
		if !failed {
			continue
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			cmd.PrintErrf("No %s loaded from %s.\n", kind.Plural(), summary.Locations[kind])
			logger.Debug("%v", err)
			continue
		}
		cmd.PrintErrf("Failed to load %s: %v\n", kind.Plural(), err)
	}

	for _, kind := range domain.Kinds() {
		for _, skipped := range summary.Skipped[kind] {
			cmd.PrintErrf("Skipped line %d of %s: %v\n", skipped.Number, summary.Locations[kind], skipped.Err)
		}
	}
	if n := summary.SkippedCount(); n > 0 {
		cmd.PrintErrf("Warning: %d unreadable line(s) will be dropped the next time that data is saved.\n", n)
	}
}

func requireRecords() error {
	if recordService == nil {
		return errors.New("record service not configured")
	}
	return nil
}
