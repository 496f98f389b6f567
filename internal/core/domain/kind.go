package domain

import "fmt"

// Kind discriminates the entity variants held in a Collection.
type Kind string

// Known entity kinds.
const (
	// KindStudent identifies a Student record.
	KindStudent Kind = "student"

	// KindCourse identifies a Course record.
	KindCourse Kind = "course"
)

// Kinds lists every entity kind in load order.
func Kinds() []Kind {
	return []Kind{KindStudent, KindCourse}
}

// IsValid returns true if the kind is recognised.
func (k Kind) IsValid() bool {
	switch k {
	case KindStudent, KindCourse:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// Plural returns the plural noun used in operator messages.
func (k Kind) Plural() string {
	switch k {
	case KindStudent:
		return "students"
	case KindCourse:
		return "courses"
	default:
		return unknownDescription
	}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
	return k, nil
}
