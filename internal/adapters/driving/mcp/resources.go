package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for gradebook resources.
	uriScheme = "gradebook://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "students",
		Name:        "students",
		Description: "All students with their grades and GPA",
		MIMEType:    "application/json",
	}, s.handleStudentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "courses",
		Name:        "courses",
		Description: "All courses",
		MIMEType:    "application/json",
	}, s.handleCoursesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "students/{studentId}",
		Name:        "student",
		Description: "A single student with their grades and GPA",
		MIMEType:    "application/json",
	}, s.handleStudentResource)
}

type gradeInfo struct {
	CourseID string  `json:"course_id"`
	Score    float64 `json:"score"`
}

type studentInfo struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Grades []gradeInfo `json:"grades"`
	GPA    float64     `json:"gpa"`
}

func toStudentInfo(s domain.Student) studentInfo {
	grades := make([]gradeInfo, len(s.Grades))
	for i, g := range s.Grades {
		grades[i] = gradeInfo{CourseID: g.CourseID(), Score: g.Score()}
	}
	return studentInfo{ID: s.ID, Name: s.Name, Grades: grades, GPA: s.GPA()}
}

// handleStudentsResource returns every student.
func (s *Server) handleStudentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	students := s.ports.Records.Students(ctx)

	infos := make([]studentInfo, len(students))
	for i := range students {
		infos[i] = toStudentInfo(students[i])
	}

	return jsonResult(req.Params.URI, infos)
}

// handleCoursesResource returns every course.
func (s *Server) handleCoursesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type courseInfo struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	courses := s.ports.Records.Courses(ctx)
	infos := make([]courseInfo, len(courses))
	for i, c := range courses {
		infos[i] = courseInfo{ID: c.ID, Name: c.Name}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleStudentResource returns one student by ID.
func (s *Server) handleStudentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract studentId from URI: gradebook://students/{studentId}
	studentID := extractStudentID(req.Params.URI)
	if studentID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	student, err := s.ports.Records.Student(ctx, studentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting student: %w", err)
	}

	return jsonResult(req.Params.URI, toStudentInfo(*student))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractStudentID extracts the student ID from a URI like gradebook://students/{studentId}.
func extractStudentID(uri string) string {
	const prefix = uriScheme + "students/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
