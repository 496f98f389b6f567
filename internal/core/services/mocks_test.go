package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

// failingStore accepts loads but rejects every save.
type failingStore struct {
	saves int
}

func (f *failingStore) Load(_ context.Context, _ domain.Kind) (domain.LoadResult, error) {
	return domain.LoadResult{}, nil
}

func (f *failingStore) Save(_ context.Context, _ domain.Kind, _ []domain.Record) error {
	f.saves++
	return errors.New("permission denied")
}

func (f *failingStore) Location(kind domain.Kind) string {
	return "readonly/" + kind.Plural()
}

// countingStore records how often each kind is saved.
type countingStore struct {
	records map[domain.Kind][]domain.Record
	saves   map[domain.Kind]int
}

func newCountingStore() *countingStore {
	return &countingStore{
		records: make(map[domain.Kind][]domain.Record),
		saves:   make(map[domain.Kind]int),
	}
}

func (c *countingStore) Load(_ context.Context, kind domain.Kind) (domain.LoadResult, error) {
	records, ok := c.records[kind]
	if !ok {
		return domain.LoadResult{}, domain.ErrStoreUnavailable
	}
	return domain.LoadResult{Records: records}, nil
}

func (c *countingStore) Save(_ context.Context, kind domain.Kind, _ []domain.Record) error {
	c.saves[kind]++
	return nil
}

func (c *countingStore) Location(kind domain.Kind) string {
	return kind.Plural() + ".txt"
}

// stubWatcher emits a fixed sequence of kinds.
type stubWatcher struct {
	kinds []domain.Kind
}

func (w *stubWatcher) Watch(_ context.Context) (<-chan domain.Kind, error) {
	ch := make(chan domain.Kind, len(w.kinds))
	for _, k := range w.kinds {
		ch <- k
	}
	close(ch)
	return ch, nil
}
