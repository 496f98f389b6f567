package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the grade report when the data files change",
	Long: `Print the grade report, then reload and print it again every time the
students or courses file is changed by another program. Press Ctrl+C to stop.

Only the text storage backend can be watched.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	ctx := cmd.Context()
	changes, err := recordService.Changes(ctx)
	if errors.Is(err, domain.ErrNotImplemented) {
		return errors.New("watch requires the text storage backend")
	}
	if err != nil {
		return fmt.Errorf("failed to watch records: %w", err)
	}

	out := cmd.OutOrStdout()
	writeReport(ctx, out)

	for {
		select {
		case <-ctx.Done():
			return nil
		case kind, ok := <-changes:
			if !ok {
				return nil
			}
			cmd.Printf("\n%s changed on disk, reloading.\n", recordService.Location(kind))
			printLoadSummary(cmd, recordService.Reload(ctx))
			writeReport(ctx, out)
		}
	}
}
