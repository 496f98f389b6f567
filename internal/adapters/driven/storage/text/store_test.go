package text

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

// setupTestStore creates a text store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), domain.DefaultAppSettings().Storage)
	require.NoError(t, err)
	return store
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
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

func TestNewStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir, domain.DefaultAppSettings().Storage)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "students.txt"), store.Location(domain.KindStudent))
	assert.Equal(t, filepath.Join(dir, "courses.txt"), store.Location(domain.KindCourse))
	assert.Equal(t, "", store.Location(domain.Kind("staff")))
}

func TestNewStore_DefaultsToWorkingDirectory(t *testing.T) {
	store, err := NewStore("", domain.DefaultAppSettings().Storage)

	require.NoError(t, err)
	assert.Equal(t, "students.txt", store.Location(domain.KindStudent))
}

func TestNewStore_EmptyFileNames(t *testing.T) {
	_, err := NewStore(t.TempDir(), domain.StorageSettings{StudentsFile: "s.txt"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Save_FiltersByKind(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindStudent, mixedRecords()))
	require.NoError(t, store.Save(ctx, domain.KindCourse, mixedRecords()))

	assert.Equal(t,
		"S1,Ann|MATH101,88.500000;CS101,91.000000\nS2,Bo|\n",
		readFile(t, store.Location(domain.KindStudent)))
	assert.Equal(t,
		"C1,Algebra\nCS101,Intro to CS\n",
		readFile(t, store.Location(domain.KindCourse)))
}

func TestStore_Save_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	path := store.Location(domain.KindStudent)

	require.NoError(t, store.Save(ctx, domain.KindStudent, mixedRecords()))
	first := readFile(t, path)
	require.NoError(t, store.Save(ctx, domain.KindStudent, mixedRecords()))
	second := readFile(t, path)

	assert.Equal(t, first, second)
}

func TestStore_Save_Truncates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindStudent, mixedRecords()))
	require.NoError(t, store.Save(ctx, domain.KindStudent, nil))

	assert.Equal(t, "", readFile(t, store.Location(domain.KindStudent)))
}

func TestStore_Save_UnwritableDirectory(t *testing.T) {
	store := setupTestStore(t)
	store.dir = filepath.Join(store.dir, "missing")

	err := store.Save(context.Background(), domain.KindCourse, mixedRecords())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening")
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	records := mixedRecords()
	require.NoError(t, store.Save(ctx, domain.KindStudent, records))

	result, err := store.Load(ctx, domain.KindStudent)

	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	loaded := result.Records
	require.Len(t, loaded, 2)
	assert.Equal(t, records[1].Student.Entity, loaded[0].Student.Entity)
	assert.Equal(t, records[1].Student.Grades, loaded[0].Student.Grades)
	assert.Equal(t, "S2", loaded[1].ID())
	assert.Empty(t, loaded[1].Student.Grades)
}

func TestStore_Load_MissingFile(t *testing.T) {
	store := setupTestStore(t)

	result, err := store.Load(context.Background(), domain.KindCourse)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "courses.txt")
	assert.Nil(t, result.Records)
}

func TestStore_Load_SkipsMalformedAndBlankLines(t *testing.T) {
	store := setupTestStore(t)
	content := "S1,Ann|A,90\r\n\nno pipe here\nS2,Bo|A,abc\nS3,Cy|\n"
	require.NoError(t, os.WriteFile(store.Location(domain.KindStudent), []byte(content), 0o644))

	result, err := store.Load(context.Background(), domain.KindStudent)

	require.NoError(t, err)
	loaded := result.Records
	require.Len(t, loaded, 2)
	assert.Equal(t, "S1", loaded[0].ID())
	assert.Equal(t, 90.0, loaded[0].Student.GPA())
	assert.Equal(t, "S3", loaded[1].ID())

	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 3, result.Skipped[0].Number)
	assert.Equal(t, 4, result.Skipped[1].Number)
	assert.ErrorIs(t, result.Skipped[1].Err, domain.ErrMalformedRecord)
}

func TestStore_Load_KindIsExplicit(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, domain.StorageSettings{StudentsFile: "a.txt", CoursesFile: "b.txt"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("C1,Algebra\n"), 0o644))

	result, err := store.Load(context.Background(), domain.KindCourse)

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, domain.KindCourse, result.Records[0].Kind)
}

func TestStore_Load_CancelledContext(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Save(context.Background(), domain.KindCourse, mixedRecords()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx, domain.KindCourse)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_UnsupportedKind(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, domain.Kind("staff"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
	assert.ErrorIs(t, store.Save(ctx, domain.Kind("staff"), nil), domain.ErrUnsupportedKind)
}

func TestStore_kindForEvent(t *testing.T) {
	store := setupTestStore(t)

	tests := []struct {
		name     string
		event    fsnotify.Event
		wantKind domain.Kind
		wantOK   bool
	}{
		{"write students", fsnotify.Event{Name: store.Location(domain.KindStudent), Op: fsnotify.Write}, domain.KindStudent, true},
		{"create courses", fsnotify.Event{Name: store.Location(domain.KindCourse), Op: fsnotify.Create}, domain.KindCourse, true},
		{"rename students", fsnotify.Event{Name: store.Location(domain.KindStudent), Op: fsnotify.Rename}, domain.KindStudent, true},
		{"chmod ignored", fsnotify.Event{Name: store.Location(domain.KindStudent), Op: fsnotify.Chmod}, "", false},
		{"other file", fsnotify.Event{Name: filepath.Join(store.dir, "notes.txt"), Op: fsnotify.Write}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := store.kindForEvent(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestStore_kindForFile_NestedFileName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, domain.StorageSettings{StudentsFile: "records/students.txt", CoursesFile: "courses.txt"})
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "records"))

	kind, ok := store.kindForFile(filepath.Join(dir, "records", "students.txt"))
	assert.True(t, ok)
	assert.Equal(t, domain.KindStudent, kind)

	_, ok = store.kindForFile(filepath.Join(dir, "students.txt"))
	assert.False(t, ok, "a file with the same base name elsewhere is not the data file")

	assert.ElementsMatch(t, []string{filepath.Join(dir, "records"), dir}, store.dirs())
}

func TestNewStore_SameFileForBothKinds(t *testing.T) {
	_, err := NewStore(t.TempDir(), domain.StorageSettings{StudentsFile: "data.txt", CoursesFile: "./data.txt"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_drain_MergesQueuedEvents(t *testing.T) {
	store := setupTestStore(t)
	students := store.Location(domain.KindStudent)
	events := make(chan fsnotify.Event, 5)
	events <- fsnotify.Event{Name: students, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: students, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: students, Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: filepath.Join(store.dir, "notes.txt"), Op: fsnotify.Write}

	pending := map[domain.Kind]bool{domain.KindStudent: true}
	open := store.drain(pending, events)

	assert.True(t, open)
	assert.Equal(t, map[domain.Kind]bool{domain.KindStudent: true}, pending)
	assert.Empty(t, events)

	close(events)
	assert.False(t, store.drain(pending, events))
}

func TestStore_Watch_NestedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, domain.StorageSettings{StudentsFile: "records/students.txt", CoursesFile: "courses.txt"})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), domain.KindStudent, mixedRecords()))

	select {
	case kind := <-changes:
		assert.Equal(t, domain.KindStudent, kind)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}

	cancel()
	for range changes {
		// drain until closed
	}
}

func TestStore_Watch_ReportsChangedKind(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), domain.KindCourse, mixedRecords()))

	select {
	case kind := <-changes:
		assert.Equal(t, domain.KindCourse, kind)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}

	cancel()
	for range changes {
		// drain until closed
	}
}

func TestStore_Watch_MissingDirectory(t *testing.T) {
	store := setupTestStore(t)
	store.dir = filepath.Join(store.dir, "gone")

	_, err := store.Watch(context.Background())

	assert.Error(t, err)
}
