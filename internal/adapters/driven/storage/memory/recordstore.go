package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook/internal/logger"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// It keeps the encoded lines per kind, so it behaves like the file store
// without touching disk.
type RecordStore struct {
	mu    sync.RWMutex
	lines map[domain.Kind][]string
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		lines: make(map[domain.Kind][]string),
	}
}

// Load decodes the stored lines for a kind. A kind that was never saved
// is unavailable, like a missing file.
func (s *RecordStore) Load(_ context.Context, kind domain.Kind) (domain.LoadResult, error) {
	if !kind.IsValid() {
		return domain.LoadResult{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines, ok := s.lines[kind]
	if !ok {
		return domain.LoadResult{}, fmt.Errorf("%w: no %s saved", domain.ErrStoreUnavailable, kind.Plural())
	}

	result := domain.LoadResult{Records: make([]domain.Record, 0, len(lines))}
	for i, line := range lines {
		if line == "" {
			continue
		}
		r, err := domain.DecodeRecord(kind, line)
		if err != nil {
			logger.Warn("%s line %d skipped: %v", s.Location(kind), i+1, err)
			result.Skipped = append(result.Skipped, domain.SkippedLine{Number: i + 1, Err: err})
			continue
		}
		result.Records = append(result.Records, r)
	}
	return result, nil
}

// Save replaces the lines for a kind with the matching records.
func (s *RecordStore) Save(_ context.Context, kind domain.Kind, records []domain.Record) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		if r.Kind == kind {
			lines = append(lines, r.Encode())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[kind] = lines
	return nil
}

// Location describes where records of the kind are stored.
func (s *RecordStore) Location(kind domain.Kind) string {
	return "memory:" + kind.Plural()
}

// Lines returns a copy of the stored lines for a kind.
func (s *RecordStore) Lines(kind domain.Kind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines[kind])
}

// SetLines replaces the raw lines for a kind.
func (s *RecordStore) SetLines(kind domain.Kind, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[kind] = slices.Clone(lines)
}
