package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Manage grades",
}

var gradeRecordCmd = &cobra.Command{
	Use:   "record [student-id] [course-id] [score]",
	Short: "Record a grade for a student",
	Long: `Record a score for a student in a course and save the student list.

The course ID is stored as given; it does not have to match a known course.`,
	Args: cobra.ExactArgs(3),
	RunE: runGradeRecord,
}

var gpaCmd = &cobra.Command{
	Use:   "gpa [student-id]",
	Short: "Calculate a student's GPA",
	Long:  `Print the mean of all scores recorded for a student. A student with no grades has a GPA of 0.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGPA,
}

func init() {
	gradeCmd.AddCommand(gradeRecordCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(gpaCmd)
}

func runGradeRecord(cmd *cobra.Command, args []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	score, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", args[2], domain.ErrInvalidInput)
	}

	if err := recordService.RecordGrade(cmd.Context(), args[0], args[1], score); err != nil {
		return fmt.Errorf("failed to record grade: %w", err)
	}

	cmd.Println("Grade recorded successfully.")
	return nil
}

func runGPA(cmd *cobra.Command, args []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	ctx := cmd.Context()
	gpa, err := recordService.GPA(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to calculate GPA: %w", err)
	}
	student, err := recordService.Student(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to calculate GPA: %w", err)
	}

	cmd.Printf("GPA for student %s: %s\n", student.Name, domain.FormatGPA(gpa))
	return nil
}
