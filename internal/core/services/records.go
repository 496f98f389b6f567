package services

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService owns the in-memory collection and mirrors it to a RecordStore.
// Memory is the source of truth; the store is rewritten per kind after every change.
type RecordService struct {
	mu         sync.Mutex
	store      driven.RecordStore
	watcher    driven.RecordWatcher
	collection *domain.Collection
}

// NewRecordService creates a record service with an empty collection.
func NewRecordService(store driven.RecordStore) *RecordService {
	return &RecordService{
		store:      store,
		collection: domain.NewCollection(),
	}
}

// SetWatcher enables change notifications.
func (s *RecordService) SetWatcher(watcher driven.RecordWatcher) {
	s.watcher = watcher
}

// Load reads students then courses and appends them to the collection.
func (s *RecordService) Load(ctx context.Context) domain.LoadSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Reload discards the in-memory collection and loads it again.
func (s *RecordService) Reload(ctx context.Context) domain.LoadSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection.Reset(nil)
	return s.load(ctx)
}

// load reads every kind (caller must hold lock).
func (s *RecordService) load(ctx context.Context) domain.LoadSummary {
	summary := domain.LoadSummary{
		Loaded:    make(map[domain.Kind]int),
		Failures:  make(map[domain.Kind]error),
		Locations: make(map[domain.Kind]string),
		Skipped:   make(map[domain.Kind][]domain.SkippedLine),
	}
	if s.store == nil {
		for _, kind := range domain.Kinds() {
			summary.Failures[kind] = domain.ErrNotImplemented
		}
		return summary
	}

	for _, kind := range domain.Kinds() {
		summary.Locations[kind] = s.store.Location(kind)
		result, err := s.store.Load(ctx, kind)
		if err != nil {
			logger.Warn("unable to load %s from %s: %v", kind.Plural(), s.store.Location(kind), err)
			summary.Failures[kind] = err
			continue
		}
		for _, r := range result.Records {
			s.collection.Append(r)
		}
		summary.Loaded[kind] = len(result.Records)
		if len(result.Skipped) > 0 {
			summary.Skipped[kind] = result.Skipped
		}
		logger.Info("loaded %d %s from %s", len(result.Records), kind.Plural(), s.store.Location(kind))
	}
	return summary
}

// AddStudent appends a student and persists all students.
func (s *RecordService) AddStudent(ctx context.Context, student domain.Student) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := validateEntity(student.Entity); err != nil {
		return err
	}
	for _, g := range student.Grades {
		if err := domain.ValidateID("course id", g.CourseID()); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection.Append(domain.StudentRecord(student))
	return s.persist(ctx, domain.KindStudent)
}

// AddCourse appends a course and persists all courses.
func (s *RecordService) AddCourse(ctx context.Context, course domain.Course) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := validateEntity(course.Entity); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection.Append(domain.CourseRecord(course))
	return s.persist(ctx, domain.KindCourse)
}

// RecordGrade appends a grade to the first student with studentID.
func (s *RecordService) RecordGrade(ctx context.Context, studentID, courseID string, score float64) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := domain.ValidateID("course id", courseID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.collection.IndexOfStudent(studentID)
	if !ok {
		return fmt.Errorf("student with ID %s: %w", studentID, domain.ErrNotFound)
	}
	s.collection.AppendGrade(i, domain.NewGradeRecord(courseID, score))
	return s.persist(ctx, domain.KindStudent)
}

// GPA returns the mean score of the first student with studentID.
func (s *RecordService) GPA(ctx context.Context, studentID string) (float64, error) {
	student, err := s.Student(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return student.GPA(), nil
}

// Student returns the first student with the id.
func (s *RecordService) Student(_ context.Context, id string) (*domain.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.collection.IndexOfStudent(id)
	if !ok {
		return nil, fmt.Errorf("student with ID %s: %w", id, domain.ErrNotFound)
	}
	student, _ := s.collection.StudentAt(i)
	return &student, nil
}

// Students returns all students in collection order.
func (s *RecordService) Students(_ context.Context) []domain.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	var students []domain.Student
	for r := range s.collection.OfKind(domain.KindStudent) {
		students = append(students, r.Student.Clone())
	}
	return students
}

// Courses returns all courses in collection order.
func (s *RecordService) Courses(_ context.Context) []domain.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	var courses []domain.Course
	for r := range s.collection.OfKind(domain.KindCourse) {
		courses = append(courses, r.Course)
	}
	return courses
}

// Report yields (name, GPA) for every student in collection order.
// Each range over the sequence takes a fresh snapshot.
func (s *RecordService) Report(ctx context.Context) iter.Seq[domain.ReportEntry] {
	return func(yield func(domain.ReportEntry) bool) {
		for _, student := range s.Students(ctx) {
			entry := domain.ReportEntry{
				StudentID: student.ID,
				Name:      student.Name,
				GPA:       student.GPA(),
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Changes streams the kinds whose backing store changed.
func (s *RecordService) Changes(ctx context.Context) (<-chan domain.Kind, error) {
	if s.watcher == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.watcher.Watch(ctx)
}

// Location describes where a kind is persisted.
func (s *RecordService) Location(kind domain.Kind) string {
	if s.store == nil {
		return ""
	}
	return s.store.Location(kind)
}

// persist rewrites the store for one kind (caller must hold lock).
// The in-memory change is kept even when the write fails.
func (s *RecordService) persist(ctx context.Context, kind domain.Kind) error {
	location := s.store.Location(kind)
	if err := s.store.Save(ctx, kind, s.collection.Records()); err != nil {
		logger.Error("unable to save %s to %s: %v", kind.Plural(), location, err)
		return fmt.Errorf("%w: %s to %s: %w", domain.ErrSaveFailed, kind.Plural(), location, err)
	}
	logger.Info("data saved to %s", location)
	return nil
}

// validateEntity checks that id and name fit the line format.
func validateEntity(e domain.Entity) error {
	if err := domain.ValidateID("id", e.ID); err != nil {
		return err
	}
	return domain.ValidateField("name", e.Name)
}
