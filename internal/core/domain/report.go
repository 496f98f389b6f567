package domain

import "strconv"

// ReportEntry is one line of the grade report.
type ReportEntry struct {
	StudentID string
	Name      string
	GPA       float64
}

// SkippedLine is a stored line that could not be decoded. It is left out
// of memory, so the next save of its kind drops it from the store.
type SkippedLine struct {
	// Number is the 1-based line number (or row position).
	Number int

	// Err describes why decoding failed.
	Err error
}

// LoadResult is what a store returns for one kind.
type LoadResult struct {
	Records []Record
	Skipped []SkippedLine
}

// LoadSummary describes the outcome of loading every kind at startup.
// Failures are per kind and never abort the load.
type LoadSummary struct {
	// Loaded counts the records read for each kind.
	Loaded map[Kind]int

	// Failures holds the error for each kind that could not be read.
	Failures map[Kind]error

	// Locations describes where each kind was read from.
	Locations map[Kind]string

	// Skipped holds the malformed lines left out for each kind.
	Skipped map[Kind][]SkippedLine
}

// OK returns true if every kind loaded.
func (s LoadSummary) OK() bool {
	return len(s.Failures) == 0
}

// SkippedCount returns the number of malformed lines left out across all kinds.
func (s LoadSummary) SkippedCount() int {
	n := 0
	for _, lines := range s.Skipped {
		n += len(lines)
	}
	return n
}

// FormatGPA renders a GPA with up to six significant digits and no
// trailing zeros, e.g. 89.75 or 0.
func FormatGPA(gpa float64) string {
	return strconv.FormatFloat(gpa, 'g', 6, 64)
}
