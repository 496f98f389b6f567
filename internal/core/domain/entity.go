package domain

import (
	"fmt"
	"slices"
	"strings"
)

const unknownDescription = "Unknown"

// Line format delimiters.
const (
	headerSeparator = "|"
	gradeSeparator  = ";"
	fieldSeparator  = ","
)

// Entity is the identity shared by students and courses.
// ID is supplied by the caller and never regenerated.
type Entity struct {
	ID   string
	Name string
}

// Course is an entity with no state beyond its identity.
type Course struct {
	Entity
}

// NewCourse creates a course.
func NewCourse(id, name string) Course {
	return Course{Entity: Entity{ID: id, Name: name}}
}

// Encode renders the course as "<id>,<name>".
func (c Course) Encode() string {
	return c.ID + fieldSeparator + c.Name
}

// DecodeCourse parses a line produced by Course.Encode.
// Everything after the first comma is the name.
func DecodeCourse(line string) (Course, error) {
	id, name, ok := strings.Cut(line, fieldSeparator)
	if !ok {
		return Course{}, fmt.Errorf("%w: course %q has no name", ErrMalformedRecord, line)
	}
	return NewCourse(id, name), nil
}

// Student is an entity owning an ordered list of grades.
// Grades keep insertion order and may repeat a course.
type Student struct {
	Entity
	Grades []GradeRecord
}

// NewStudent creates a student with no grades.
func NewStudent(id, name string) Student {
	return Student{Entity: Entity{ID: id, Name: name}}
}

// AddGrade appends a grade.
func (s *Student) AddGrade(g GradeRecord) {
	s.Grades = append(s.Grades, g)
}

// GPA returns the mean score, or 0 when the student has no grades.
func (s Student) GPA() float64 {
	if len(s.Grades) == 0 {
		return 0.0
	}
	var total float64
	for _, g := range s.Grades {
		total += g.Score()
	}
	return total / float64(len(s.Grades))
}

// Clone returns a copy that does not share the grade slice.
func (s Student) Clone() Student {
	s.Grades = slices.Clone(s.Grades)
	return s
}

// Encode renders the student as "<id>,<name>|<grade>;<grade>".
// A student without grades keeps the trailing "|".
func (s Student) Encode() string {
	var b strings.Builder
	b.WriteString(s.ID)
	b.WriteString(fieldSeparator)
	b.WriteString(s.Name)
	b.WriteString(headerSeparator)
	for i, g := range s.Grades {
		if i > 0 {
			b.WriteString(gradeSeparator)
		}
		b.WriteString(g.Encode())
	}
	return b.String()
}

// DecodeStudent parses a line produced by Student.Encode.
func DecodeStudent(line string) (Student, error) {
	header, gradeData, ok := strings.Cut(line, headerSeparator)
	if !ok {
		return Student{}, fmt.Errorf("%w: student %q has no grade section", ErrMalformedRecord, line)
	}
	id, name, ok := strings.Cut(header, fieldSeparator)
	if !ok {
		return Student{}, fmt.Errorf("%w: student %q has no name", ErrMalformedRecord, line)
	}

	s := NewStudent(id, name)
	for _, segment := range strings.Split(gradeData, gradeSeparator) {
		if segment == "" {
			continue
		}
		g, err := DecodeGrade(segment)
		if err != nil {
			return Student{}, fmt.Errorf("student %q: %w", id, err)
		}
		s.AddGrade(g)
	}
	return s, nil
}

// ValidateID is ValidateField for identifiers, which must also be non-empty.
func ValidateID(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return ValidateField(field, value)
}

// ValidateField reports whether a value can be stored in the line format.
// Values containing a delimiter or line break are rejected; empty is fine.
func ValidateField(field, value string) error {
	if strings.ContainsAny(value, ",|;\r\n") {
		return fmt.Errorf("%w: %s %q must not contain ',', '|', ';' or line breaks", ErrInvalidInput, field, value)
	}
	return nil
}
