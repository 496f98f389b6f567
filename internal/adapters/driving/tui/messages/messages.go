// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/gradebook/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAddStudent is the add student form.
	ViewAddStudent
	// ViewAddCourse is the add course form.
	ViewAddCourse
	// ViewRecordGrade is the record grade form.
	ViewRecordGrade
	// ViewGPA asks for a student ID and shows the GPA.
	ViewGPA
	// ViewReport shows the grade report.
	ViewReport
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAddStudent:
		return "add_student"
	case ViewAddCourse:
		return "add_course"
	case ViewRecordGrade:
		return "record_grade"
	case ViewGPA:
		return "gpa"
	case ViewReport:
		return "report"
	default:
		return "unknown"
	}
}

// ActionCompleted carries the outcome of a form submission.
// Message is shown on success; Err on failure.
type ActionCompleted struct {
	View    ViewType
	Message string
	Err     error
}

// ReportLoaded carries a freshly computed grade report.
type ReportLoaded struct {
	Entries []domain.ReportEntry
}

// Quit requests application exit.
type Quit struct{}
