package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "gradebook-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func mixedRecords() []domain.Record {
	ann := domain.NewStudent("S1", "Ann")
	ann.AddGrade(domain.NewGradeRecord("MATH101", 88.5))
	ann.AddGrade(domain.NewGradeRecord("CS101", 91.0))
	return []domain.Record{
		domain.CourseRecord(domain.NewCourse("C1", "Algebra")),
		domain.StudentRecord(ann),
		domain.StudentRecord(domain.NewStudent("S2", "Bo")),
		domain.CourseRecord(domain.NewCourse("CS101", "Intro to CS")),
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.FileExists(t, store.Path())
	assert.Equal(t, dbFileName, filepath.Base(store.Path()))
	assert.Equal(t, store.Path()+"#students", store.Location(domain.KindStudent))
	assert.Equal(t, store.Path()+"#courses", store.Location(domain.KindCourse))
}

func TestNewStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, dir)
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	tables := []string{"schema_migrations", "records", "kinds_saved"}
	for _, table := range tables {
		var name string
		err := store.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsDataAndSkipsApplied(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, domain.KindCourse, mixedRecords()))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)

	courses, err := second.Load(ctx, domain.KindCourse)
	require.NoError(t, err)
	assert.Len(t, courses.Records, 2)
}

func TestNewStore_WALMode(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var mode string
	require.NoError(t, store.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

// ==================== Save / Load Tests ====================

func TestStore_SaveWritesOnlyRequestedKind(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindStudent, mixedRecords()))

	lines, err := store.Lines(ctx, domain.KindStudent)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"S1,Ann|MATH101,88.500000;CS101,91.000000",
		"S2,Bo|",
	}, lines)

	courses, err := store.Lines(ctx, domain.KindCourse)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestStore_SaveTwiceIsIdempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindCourse, mixedRecords()))
	first, err := store.Lines(ctx, domain.KindCourse)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, domain.KindCourse, mixedRecords()))
	second, err := store.Lines(ctx, domain.KindCourse)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"C1,Algebra", "CS101,Intro to CS"}, second)
}

func TestStore_SaveReplacesPreviousRows(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindCourse, mixedRecords()))
	require.NoError(t, store.Save(ctx, domain.KindCourse, []domain.Record{
		domain.CourseRecord(domain.NewCourse("P1", "Physics")),
	}))

	lines, err := store.Lines(ctx, domain.KindCourse)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1,Physics"}, lines)
}

func TestStore_SaveEmptyMarksKindSaved(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindStudent, nil))

	result, err := store.Load(ctx, domain.KindStudent)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestStore_LoadRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindStudent, mixedRecords()))

	result, err := store.Load(ctx, domain.KindStudent)
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	records := result.Records
	require.Len(t, records, 2)

	assert.Equal(t, domain.KindStudent, records[0].Kind)
	assert.Equal(t, "Ann", records[0].Name())
	require.Len(t, records[0].Student.Grades, 2)
	assert.Equal(t, "MATH101", records[0].Student.Grades[0].CourseID())
	assert.InDelta(t, 89.75, records[0].Student.GPA(), 1e-9)
	assert.Equal(t, "S2", records[1].ID())
	assert.Empty(t, records[1].Student.Grades)
}

func TestStore_LoadNeverSaved(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Load(context.Background(), domain.KindCourse)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestStore_LoadSkipsMalformedRows(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindStudent, mixedRecords()))
	_, err := store.db.Exec("INSERT INTO records (kind, position, line) VALUES ('student', 3, 'garbage')")
	require.NoError(t, err)

	result, err := store.Load(ctx, domain.KindStudent)
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 3, result.Skipped[0].Number)
	assert.ErrorIs(t, result.Skipped[0].Err, domain.ErrMalformedRecord)
}

func TestStore_UnsupportedKind(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Load(ctx, domain.Kind("staff"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)

	err = store.Save(ctx, domain.Kind("staff"), mixedRecords())
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
}

func TestStore_SaveCancelledContext(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, domain.KindStudent, mixedRecords())
	assert.Error(t, err)
}

// ==================== Close Tests ====================

func TestStore_Close(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)

	require.NoError(t, store.Close())

	err = store.db.Ping()
	assert.Error(t, err)
}
