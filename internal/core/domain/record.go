package domain

import "fmt"

// Record is a tagged variant holding either a Student or a Course.
// Kind selects which payload is meaningful; the other is the zero value.
type Record struct {
	Kind    Kind
	Student Student
	Course  Course
}

// StudentRecord wraps a student.
func StudentRecord(s Student) Record {
	return Record{Kind: KindStudent, Student: s}
}

// CourseRecord wraps a course.
func CourseRecord(c Course) Record {
	return Record{Kind: KindCourse, Course: c}
}

// Entity returns the identity of the active payload.
func (r Record) Entity() Entity {
	switch r.Kind {
	case KindStudent:
		return r.Student.Entity
	case KindCourse:
		return r.Course.Entity
	default:
		return Entity{}
	}
}

// ID returns the id of the active payload.
func (r Record) ID() string {
	return r.Entity().ID
}

// Name returns the name of the active payload.
func (r Record) Name() string {
	return r.Entity().Name
}

// Encode renders the active payload as a single line.
func (r Record) Encode() string {
	switch r.Kind {
	case KindStudent:
		return r.Student.Encode()
	case KindCourse:
		return r.Course.Encode()
	default:
		return ""
	}
}

// DecodeRecord parses a line as the given kind.
func DecodeRecord(kind Kind, line string) (Record, error) {
	switch kind {
	case KindStudent:
		s, err := DecodeStudent(line)
		if err != nil {
			return Record{}, err
		}
		return StudentRecord(s), nil
	case KindCourse:
		c, err := DecodeCourse(line)
		if err != nil {
			return Record{}, err
		}
		return CourseRecord(c), nil
	default:
		return Record{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}
