package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

var (
	courseName string
	courseJSON bool
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
}

var courseAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Add a course",
	Long: `Add a course and save the course list.

If no ID is given a new one is generated. IDs and names must not contain
',', '|', ';' or line breaks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCourseAdd,
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	Args:  cobra.NoArgs,
	RunE:  runCourseList,
}

func init() {
	courseAddCmd.Flags().StringVar(&courseName, "name", "", "course name")
	_ = courseAddCmd.MarkFlagRequired("name")
	courseListCmd.Flags().BoolVar(&courseJSON, "json", false, "output courses as JSON")

	courseCmd.AddCommand(courseAddCmd)
	courseCmd.AddCommand(courseListCmd)
	rootCmd.AddCommand(courseCmd)
}

func runCourseAdd(cmd *cobra.Command, args []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	id, generated := idFromArgs(args)
	if err := recordService.AddCourse(cmd.Context(), domain.NewCourse(id, courseName)); err != nil {
		return fmt.Errorf("failed to add course: %w", err)
	}

	cmd.Println("Course added successfully.")
	if generated {
		cmd.Printf("ID: %s\n", id)
	}
	return nil
}

func runCourseList(cmd *cobra.Command, _ []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	courses := recordService.Courses(cmd.Context())

	if courseJSON {
		type courseJSONView struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		views := make([]courseJSONView, 0, len(courses))
		for _, c := range courses {
			views = append(views, courseJSONView{ID: c.ID, Name: c.Name})
		}
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal courses: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(courses) == 0 {
		cmd.Println("No courses found.")
		return nil
	}

	cmd.Printf("Courses (%d):\n\n", len(courses))
	for _, c := range courses {
		cmd.Printf("  %s  %s\n", c.ID, c.Name)
	}
	return nil
}
