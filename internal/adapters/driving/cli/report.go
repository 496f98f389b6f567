package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the grade report",
	Long:  `Print every student's name and GPA in the order they were added.`,
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	if reportJSON {
		return writeReportJSON(cmd.Context(), cmd.OutOrStdout())
	}

	writeReport(cmd.Context(), cmd.OutOrStdout())
	return nil
}

// writeReport prints the report in the historical layout.
func writeReport(ctx context.Context, w io.Writer) {
	fmt.Fprintln(w, "Grade Report")
	for entry := range recordService.Report(ctx) {
		fmt.Fprintf(w, "Student: %s, GPA: %s\n", entry.Name, domain.FormatGPA(entry.GPA))
	}
}

func writeReportJSON(ctx context.Context, w io.Writer) error {
	type entryJSONView struct {
		StudentID string  `json:"student_id"`
		Name      string  `json:"name"`
		GPA       float64 `json:"gpa"`
	}

	entries := []entryJSONView{}
	for entry := range recordService.Report(ctx) {
		entries = append(entries, entryJSONView{StudentID: entry.StudentID, Name: entry.Name, GPA: entry.GPA})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
