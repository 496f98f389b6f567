// Package domain defines the core business entities for gradebook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entity: identity (id + name) shared by students and courses
//   - Student: an entity owning an ordered list of grades
//   - Course: an entity with no further state
//   - GradeRecord: an immutable (course id, score) pair
//   - Record: tagged variant over Student and Course, dispatched on Kind
//   - Collection: the ordered in-memory set of records
//
// # Line Format
//
// Each record encodes to a single line of text:
//
//	students: <id>,<name>|<courseId>,<score>;<courseId>,<score>
//	courses:  <id>,<name>
//
// There is no escaping, so ids, names and course ids must not contain
// the delimiters ',', '|' or ';'. See ValidateField.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
