package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

var (
	studentName string
	studentJSON bool
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage students",
}

var studentAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Add a student",
	Long: `Add a student and save the student list.

If no ID is given a new one is generated. IDs and names must not contain
',', '|', ';' or line breaks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStudentAdd,
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students",
	Args:  cobra.NoArgs,
	RunE:  runStudentList,
}

var studentShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a student's grades and GPA",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentShow,
}

func init() {
	studentAddCmd.Flags().StringVar(&studentName, "name", "", "student name")
	_ = studentAddCmd.MarkFlagRequired("name")
	studentListCmd.Flags().BoolVar(&studentJSON, "json", false, "output students as JSON")

	studentCmd.AddCommand(studentAddCmd)
	studentCmd.AddCommand(studentListCmd)
	studentCmd.AddCommand(studentShowCmd)
	rootCmd.AddCommand(studentCmd)
}

func runStudentAdd(cmd *cobra.Command, args []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	id, generated := idFromArgs(args)
	if err := recordService.AddStudent(cmd.Context(), domain.NewStudent(id, studentName)); err != nil {
		return fmt.Errorf("failed to add student: %w", err)
	}

	cmd.Println("Student added successfully.")
	if generated {
		cmd.Printf("ID: %s\n", id)
	}
	return nil
}

// studentJSONView is the JSON shape of a listed student.
type studentJSONView struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Grades []gradeJSONView `json:"grades"`
	GPA    float64         `json:"gpa"`
}

type gradeJSONView struct {
	CourseID string  `json:"course_id"`
	Score    float64 `json:"score"`
}

func runStudentList(cmd *cobra.Command, _ []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	students := recordService.Students(cmd.Context())

	if studentJSON {
		views := make([]studentJSONView, 0, len(students))
		for i := range students {
			views = append(views, toStudentJSON(students[i]))
		}
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal students: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(students) == 0 {
		cmd.Println("No students found.")
		return nil
	}

	cmd.Printf("Students (%d):\n\n", len(students))
	for i := range students {
		s := &students[i]
		cmd.Printf("  %s  %s  (%d grades, GPA %s)\n", s.ID, s.Name, len(s.Grades), domain.FormatGPA(s.GPA()))
	}
	return nil
}

func runStudentShow(cmd *cobra.Command, args []string) error {
	if err := requireRecords(); err != nil {
		return err
	}

	student, err := recordService.Student(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get student: %w", err)
	}

	cmd.Printf("ID:   %s\n", student.ID)
	cmd.Printf("Name: %s\n", student.Name)
	if len(student.Grades) == 0 {
		cmd.Println("Grades: (none)")
	} else {
		cmd.Println("Grades:")
		for _, g := range student.Grades {
			cmd.Printf("  %s  %s\n", g.CourseID(), domain.FormatGPA(g.Score()))
		}
	}
	cmd.Printf("GPA:  %s\n", domain.FormatGPA(student.GPA()))
	return nil
}

func toStudentJSON(s domain.Student) studentJSONView {
	grades := make([]gradeJSONView, 0, len(s.Grades))
	for _, g := range s.Grades {
		grades = append(grades, gradeJSONView{CourseID: g.CourseID(), Score: g.Score()})
	}
	return studentJSONView{ID: s.ID, Name: s.Name, Grades: grades, GPA: s.GPA()}
}

// idFromArgs returns the id argument, or a generated one when absent.
func idFromArgs(args []string) (string, bool) {
	if len(args) > 0 {
		return args[0], false
	}
	return uuid.NewString(), true
}
