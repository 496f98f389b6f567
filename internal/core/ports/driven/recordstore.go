package driven

import (
	"context"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

// RecordStore persists records, one encoded line per entity, separately per kind.
type RecordStore interface {
	// Load reads every record of the given kind in stored order.
	// Returns an error wrapping domain.ErrStoreUnavailable if the kind's
	// store cannot be opened. Malformed lines are left out of Records
	// and reported in Skipped.
	Load(ctx context.Context, kind domain.Kind) (domain.LoadResult, error)

	// Save replaces the stored records of the given kind.
	// Only records whose Kind matches are written; the rest are ignored.
	Save(ctx context.Context, kind domain.Kind, records []domain.Record) error

	// Location describes where records of the kind are stored.
	Location(kind domain.Kind) string
}

// RecordWatcher reports changes made to a RecordStore by other processes.
type RecordWatcher interface {
	// Watch streams the kind of every changed store until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.Kind, error)
}
