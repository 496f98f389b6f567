package domain

import (
	"fmt"
	"path/filepath"
)

// StorageBackend selects where records are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendText writes one flat text file per entity kind.
	StorageBackendText StorageBackend = "text"

	// StorageBackendSQLite keeps the same lines in a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendMemory keeps records for the lifetime of the process only.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendText, StorageBackendSQLite, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// IsDurable returns true if records survive a restart.
func (b StorageBackend) IsDurable() bool {
	return b == StorageBackendText || b == StorageBackendSQLite
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendText:
		return "Text files (one line per record)"
	case StorageBackendSQLite:
		return "SQLite database"
	case StorageBackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend is the storage backend.
	Backend StorageBackend

	// DataDir is the directory holding the data files.
	// Empty means the current working directory.
	DataDir string

	// StudentsFile is the file name for student records (text backend).
	StudentsFile string

	// CoursesFile is the file name for course records (text backend).
	CoursesFile string
}

// Validate rejects settings that cannot be used to open a store.
func (s StorageSettings) Validate() error {
	if !s.Backend.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, s.Backend)
	}
	if s.StudentsFile == "" || s.CoursesFile == "" {
		return fmt.Errorf("%w: file names must not be empty", ErrInvalidInput)
	}
	if filepath.Clean(s.StudentsFile) == filepath.Clean(s.CoursesFile) {
		return fmt.Errorf("%w: students and courses must use different files", ErrInvalidInput)
	}
	return nil
}

// FileFor returns the configured file name for a kind.
func (s StorageSettings) FileFor(kind Kind) string {
	switch kind {
	case KindStudent:
		return s.StudentsFile
	case KindCourse:
		return s.CoursesFile
	default:
		return ""
	}
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Storage StorageSettings
}

// DefaultAppSettings returns settings matching the historical file layout:
// students.txt and courses.txt in the working directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend:      StorageBackendText,
			DataDir:      "",
			StudentsFile: "students.txt",
			CoursesFile:  "courses.txt",
		},
	}
}

// AllStorageBackends returns all valid storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageBackendText, StorageBackendSQLite, StorageBackendMemory}
}
