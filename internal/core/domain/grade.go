package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// scoreDecimals is the fixed precision used when writing scores.
const scoreDecimals = 6

// GradeRecord is an immutable score a student obtained in a course.
// CourseID is free text and is not checked against known courses.
type GradeRecord struct {
	courseID string
	score    float64
}

// NewGradeRecord creates a grade for the given course.
func NewGradeRecord(courseID string, score float64) GradeRecord {
	return GradeRecord{courseID: courseID, score: score}
}

// CourseID returns the course the grade belongs to.
func (g GradeRecord) CourseID() string {
	return g.courseID
}

// Score returns the numeric score.
func (g GradeRecord) Score() float64 {
	return g.score
}

// Encode renders the grade as "<courseId>,<score>". Scores use six
// decimals unless that would round them, in which case the shortest
// exact representation is written.
func (g GradeRecord) Encode() string {
	return g.courseID + "," + formatScore(g.score)
}

func formatScore(score float64) string {
	fixed := strconv.FormatFloat(score, 'f', scoreDecimals, 64)
	if back, err := strconv.ParseFloat(fixed, 64); err == nil && back == score {
		return fixed
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// DecodeGrade parses a line produced by GradeRecord.Encode.
// Only the first comma is a delimiter; the remainder must be a number.
func DecodeGrade(line string) (GradeRecord, error) {
	courseID, rest, ok := strings.Cut(line, ",")
	if !ok {
		return GradeRecord{}, fmt.Errorf("%w: grade %q has no score", ErrMalformedRecord, line)
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil {
		return GradeRecord{}, fmt.Errorf("%w: grade %q: %w", ErrMalformedRecord, line, err)
	}
	return GradeRecord{courseID: courseID, score: score}, nil
}
