package text

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook/internal/logger"
)

// maxLineSize bounds a single record line. Students with many grades
// produce long lines, so the bufio default of 64KiB is raised.
const maxLineSize = 4 * 1024 * 1024

// Ensure Store implements the interfaces.
var (
	_ driven.RecordStore   = (*Store)(nil)
	_ driven.RecordWatcher = (*Store)(nil)
)

// Store persists records as lines in one text file per kind.
type Store struct {
	dir   string
	files map[domain.Kind]string
}

// NewStore creates a text store in dataDir using the file names from settings.
// If dataDir is empty, the current working directory is used.
func NewStore(dataDir string, storage domain.StorageSettings) (*Store, error) {
	if storage.StudentsFile == "" || storage.CoursesFile == "" {
		return nil, fmt.Errorf("%w: file names must not be empty", domain.ErrInvalidInput)
	}
	if dataDir == "" {
		dataDir = "."
	}

	store := &Store{
		dir: dataDir,
		files: map[domain.Kind]string{
			domain.KindStudent: storage.StudentsFile,
			domain.KindCourse:  storage.CoursesFile,
		},
	}
	if store.Location(domain.KindStudent) == store.Location(domain.KindCourse) {
		return nil, fmt.Errorf("%w: students and courses must use different files", domain.ErrInvalidInput)
	}

	// Ensure every data file's directory exists
	for _, dir := range store.dirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	return store, nil
}

// Location returns the file path for a kind.
func (s *Store) Location(kind domain.Kind) string {
	name, ok := s.files[kind]
	if !ok {
		return ""
	}
	return filepath.Join(s.dir, name)
}

// Load reads every line of the kind's file. Blank lines are ignored and
// malformed lines are skipped with a warning and reported in the result.
func (s *Store) Load(ctx context.Context, kind domain.Kind) (domain.LoadResult, error) {
	path := s.Location(kind)
	if path == "" {
		return domain.LoadResult{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.LoadResult{}, fmt.Errorf("%w: opening %s for reading: %w", domain.ErrStoreUnavailable, path, err)
	}
	defer f.Close()

	var result domain.LoadResult
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return domain.LoadResult{}, err
		}
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		r, err := domain.DecodeRecord(kind, line)
		if err != nil {
			logger.Warn("%s line %d skipped: %v", path, lineNo, err)
			result.Skipped = append(result.Skipped, domain.SkippedLine{Number: lineNo, Err: err})
			continue
		}
		result.Records = append(result.Records, r)
	}
	if err := scanner.Err(); err != nil {
		return domain.LoadResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	logger.Debug("read %d %s from %s", len(result.Records), kind.Plural(), path)
	return result, nil
}

// Save truncates the kind's file and writes one line per matching record.
func (s *Store) Save(_ context.Context, kind domain.Kind, records []domain.Record) error {
	path := s.Location(kind)
	if path == "" {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, r := range records {
		if r.Kind != kind {
			continue
		}
		if _, err := w.WriteString(r.Encode() + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// kindForFile maps a file path back to the kind stored in it.
func (s *Store) kindForFile(path string) (domain.Kind, bool) {
	path = filepath.Clean(path)
	for _, kind := range domain.Kinds() {
		if s.Location(kind) == path {
			return kind, true
		}
	}
	return "", false
}

// dirs returns the distinct directories holding the data files.
func (s *Store) dirs() []string {
	var dirs []string
	for _, kind := range domain.Kinds() {
		dir := filepath.Dir(s.Location(kind))
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
