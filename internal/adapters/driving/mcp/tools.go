package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

// StudentInput is the input schema for the add_student tool.
type StudentInput struct {
	ID   string `json:"id" jsonschema:"unique student ID; must not contain ',', '|' or ';'"`
	Name string `json:"name" jsonschema:"the student's name"`
}

// CourseInput is the input schema for the add_course tool.
type CourseInput struct {
	ID   string `json:"id" jsonschema:"unique course ID; must not contain ',', '|' or ';'"`
	Name string `json:"name" jsonschema:"the course name"`
}

// GradeInput is the input schema for the record_grade tool.
type GradeInput struct {
	StudentID string  `json:"student_id" jsonschema:"ID of an existing student"`
	CourseID  string  `json:"course_id" jsonschema:"ID of the course the score is for"`
	Score     float64 `json:"score" jsonschema:"the score to record"`
}

// GPAInput is the input schema for the get_gpa tool.
type GPAInput struct {
	StudentID string `json:"student_id" jsonschema:"ID of the student"`
}

// MessageOutput is returned by tools that change the gradebook.
type MessageOutput struct {
	Message string `json:"message"`
}

// GPAOutput is the output schema for the get_gpa tool.
type GPAOutput struct {
	StudentID string  `json:"student_id"`
	Name      string  `json:"name"`
	GPA       float64 `json:"gpa"`
	Grades    int     `json:"grades"`
}

// ReportInput is the (empty) input schema for the grade_report tool.
type ReportInput struct{}

// ReportOutput is the output schema for the grade_report tool.
type ReportOutput struct {
	Students []ReportEntryOutput `json:"students"`
	Count    int                 `json:"count"`
}

// ReportEntryOutput is one line of the grade report.
type ReportEntryOutput struct {
	StudentID string  `json:"student_id"`
	Name      string  `json:"name"`
	GPA       float64 `json:"gpa"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_student",
		Description: "Add a student to the gradebook",
	}, s.handleAddStudent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_course",
		Description: "Add a course to the gradebook",
	}, s.handleAddCourse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "record_grade",
		Description: "Record a score for a student in a course",
	}, s.handleRecordGrade)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_gpa",
		Description: "Get a student's GPA (mean of all recorded scores)",
	}, s.handleGetGPA)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "grade_report",
		Description: "List every student with their GPA",
	}, s.handleGradeReport)
}

func (s *Server) handleAddStudent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StudentInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	if err := s.ports.Records.AddStudent(ctx, domain.NewStudent(input.ID, input.Name)); err != nil {
		return nil, MessageOutput{}, fmt.Errorf("adding student: %w", err)
	}
	return nil, MessageOutput{Message: "Student added successfully."}, nil
}

func (s *Server) handleAddCourse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CourseInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	if err := s.ports.Records.AddCourse(ctx, domain.NewCourse(input.ID, input.Name)); err != nil {
		return nil, MessageOutput{}, fmt.Errorf("adding course: %w", err)
	}
	return nil, MessageOutput{Message: "Course added successfully."}, nil
}

func (s *Server) handleRecordGrade(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GradeInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	if err := s.ports.Records.RecordGrade(ctx, input.StudentID, input.CourseID, input.Score); err != nil {
		return nil, MessageOutput{}, fmt.Errorf("recording grade: %w", err)
	}
	return nil, MessageOutput{Message: "Grade recorded successfully."}, nil
}

func (s *Server) handleGetGPA(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GPAInput,
) (*mcp.CallToolResult, GPAOutput, error) {
	gpa, err := s.ports.Records.GPA(ctx, input.StudentID)
	if err != nil {
		return nil, GPAOutput{}, fmt.Errorf("getting GPA: %w", err)
	}
	student, err := s.ports.Records.Student(ctx, input.StudentID)
	if err != nil {
		return nil, GPAOutput{}, fmt.Errorf("getting GPA: %w", err)
	}
	return nil, GPAOutput{
		StudentID: student.ID,
		Name:      student.Name,
		GPA:       gpa,
		Grades:    len(student.Grades),
	}, nil
}

func (s *Server) handleGradeReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	output := ReportOutput{Students: []ReportEntryOutput{}}
	for entry := range s.ports.Records.Report(ctx) {
		output.Students = append(output.Students, ReportEntryOutput{
			StudentID: entry.StudentID,
			Name:      entry.Name,
			GPA:       entry.GPA,
		})
	}
	output.Count = len(output.Students)
	return nil, output, nil
}
