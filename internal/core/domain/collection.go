package domain

import (
	"iter"
	"slices"
)

// Collection is the ordered, in-memory set of records.
// Students and courses are intermixed in insertion order. Ids are not
// required to be unique; lookups return the first match.
type Collection struct {
	records []Record
}

// NewCollection creates a collection holding the given records.
func NewCollection(records ...Record) *Collection {
	c := &Collection{}
	c.Reset(records)
	return c
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Append adds a record at the end.
func (c *Collection) Append(r Record) {
	if r.Kind == KindStudent {
		r.Student = r.Student.Clone()
	}
	c.records = append(c.records, r)
}

// Reset replaces the contents of the collection.
func (c *Collection) Reset(records []Record) {
	c.records = make([]Record, 0, len(records))
	for _, r := range records {
		c.Append(r)
	}
}

// All yields every record in collection order.
func (c *Collection) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range c.records {
			if !yield(r) {
				return
			}
		}
	}
}

// OfKind yields the records of one kind in collection order.
func (c *Collection) OfKind(kind Kind) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range c.records {
			if r.Kind != kind {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Records returns a copy of all records.
func (c *Collection) Records() []Record {
	out := make([]Record, 0, len(c.records))
	for r := range c.All() {
		if r.Kind == KindStudent {
			r.Student = r.Student.Clone()
		}
		out = append(out, r)
	}
	return out
}

// IndexOfStudent returns the position of the first student with the id.
// Courses sharing the id are skipped.
func (c *Collection) IndexOfStudent(id string) (int, bool) {
	i := slices.IndexFunc(c.records, func(r Record) bool {
		return r.Kind == KindStudent && r.Student.ID == id
	})
	return i, i >= 0
}

// StudentAt returns a copy of the student at index.
func (c *Collection) StudentAt(index int) (Student, bool) {
	if index < 0 || index >= len(c.records) || c.records[index].Kind != KindStudent {
		return Student{}, false
	}
	return c.records[index].Student.Clone(), true
}

// AppendGrade adds a grade to the student at index.
// It returns false if index does not hold a student.
func (c *Collection) AppendGrade(index int, g GradeRecord) bool {
	if index < 0 || index >= len(c.records) || c.records[index].Kind != KindStudent {
		return false
	}
	c.records[index].Student.AddGrade(g)
	return true
}
