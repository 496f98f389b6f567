package mcp

import (
	"context"
	"fmt"
	"iter"

	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/ports/driving"
)

// Ensure the mock satisfies the port.
var _ driving.RecordService = (*mockRecordService)(nil)

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	students []domain.Student
	courses  []domain.Course
	err      error

	// recorded calls
	added    []domain.Record
	grades   []string
	gpaCalls int
}

func (m *mockRecordService) Load(context.Context) domain.LoadSummary {
	return domain.LoadSummary{}
}

func (m *mockRecordService) Reload(context.Context) domain.LoadSummary {
	return domain.LoadSummary{}
}

func (m *mockRecordService) AddStudent(_ context.Context, s domain.Student) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, domain.StudentRecord(s))
	m.students = append(m.students, s)
	return nil
}

func (m *mockRecordService) AddCourse(_ context.Context, c domain.Course) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, domain.CourseRecord(c))
	m.courses = append(m.courses, c)
	return nil
}

func (m *mockRecordService) RecordGrade(_ context.Context, studentID, courseID string, score float64) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.students {
		if m.students[i].ID == studentID {
			m.students[i].AddGrade(domain.NewGradeRecord(courseID, score))
			m.grades = append(m.grades, fmt.Sprintf("%s:%s", studentID, domain.NewGradeRecord(courseID, score).Encode()))
			return nil
		}
	}
	return fmt.Errorf("student with ID %s: %w", studentID, domain.ErrNotFound)
}

func (m *mockRecordService) GPA(ctx context.Context, studentID string) (float64, error) {
	m.gpaCalls++
	s, err := m.Student(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return s.GPA(), nil
}

func (m *mockRecordService) Student(_ context.Context, id string) (*domain.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.students {
		if m.students[i].ID == id {
			s := m.students[i].Clone()
			return &s, nil
		}
	}
	return nil, fmt.Errorf("student with ID %s: %w", id, domain.ErrNotFound)
}

func (m *mockRecordService) Students(context.Context) []domain.Student {
	return m.students
}

func (m *mockRecordService) Courses(context.Context) []domain.Course {
	return m.courses
}

func (m *mockRecordService) Report(context.Context) iter.Seq[domain.ReportEntry] {
	return func(yield func(domain.ReportEntry) bool) {
		for _, s := range m.students {
			if !yield(domain.ReportEntry{StudentID: s.ID, Name: s.Name, GPA: s.GPA()}) {
				return
			}
		}
	}
}

func (m *mockRecordService) Changes(context.Context) (<-chan domain.Kind, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockRecordService) Location(domain.Kind) string {
	return "mock"
}

func annWithGrades() domain.Student {
	ann := domain.NewStudent("S1", "Ann")
	ann.AddGrade(domain.NewGradeRecord("MATH101", 88.5))
	ann.AddGrade(domain.NewGradeRecord("CS101", 91.0))
	return ann
}
