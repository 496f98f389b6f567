package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

// RecordService is the operations layer over the in-memory collection.
// Every mutating operation rewrites the store for the affected kind.
type RecordService interface {
	// Load reads every kind from the store into memory.
	// A kind that cannot be read is reported in the summary, not as an error.
	Load(ctx context.Context) domain.LoadSummary

	// Reload discards the in-memory collection and loads it again.
	Reload(ctx context.Context) domain.LoadSummary

	// AddStudent appends a student and persists all students.
	AddStudent(ctx context.Context, student domain.Student) error

	// AddCourse appends a course and persists all courses.
	AddCourse(ctx context.Context, course domain.Course) error

	// RecordGrade appends a grade to the first student with studentID.
	// Returns domain.ErrNotFound without changing anything if there is no such student.
	RecordGrade(ctx context.Context, studentID, courseID string, score float64) error

	// GPA returns the mean score of the first student with studentID.
	// Returns domain.ErrNotFound if there is no such student.
	GPA(ctx context.Context, studentID string) (float64, error)

	// Student returns the first student with the id.
	Student(ctx context.Context, id string) (*domain.Student, error)

	// Students returns all students in collection order.
	Students(ctx context.Context) []domain.Student

	// Courses returns all courses in collection order.
	Courses(ctx context.Context) []domain.Course

	// Report yields (name, GPA) for every student in collection order.
	// The sequence is recomputed from current state each time it is ranged over.
	Report(ctx context.Context) iter.Seq[domain.ReportEntry]

	// Changes streams the kinds whose backing store changed outside this process.
	// Returns domain.ErrNotImplemented when the store cannot be watched.
	Changes(ctx context.Context) (<-chan domain.Kind, error)

	// Location describes where a kind is persisted.
	Location(kind domain.Kind) string
}
