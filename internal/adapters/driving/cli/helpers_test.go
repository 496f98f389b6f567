package cli

import (
	"bytes"
	"testing"

	"github.com/custodia-labs/gradebook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gradebook/internal/core/services"
)

// testEnv holds the in-memory services installed for a test.
type testEnv struct {
	store    *memory.RecordStore
	records  *services.RecordService
	config   *memory.ConfigStore
	settings *services.SettingsService
}

// setupTestServices installs in-memory services and returns a cleanup
// function that restores the previous ones and resets flag values.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:  memory.NewRecordStore(),
		config: memory.NewConfigStore(),
	}
	env.records = services.NewRecordService(env.store)
	env.settings = services.NewSettingsService(env.config)

	oldRecords, oldSettings, oldClose, oldBootstrap := recordService, settingsService, closeServices, bootstrap
	SetServices(&Services{Records: env.records, Settings: env.settings})
	bootstrap = nil

	t.Cleanup(func() {
		recordService, settingsService, closeServices, bootstrap = oldRecords, oldSettings, oldClose, oldBootstrap
		resetFlags()
	})
	return env
}

func resetFlags() {
	studentName, studentJSON = "", false
	courseName, courseJSON = "", false
	reportJSON = false
	storageBackend, storageDataDir, storageStudentsFile, storageCoursesFile = "", "", "", ""
	verbose, homeDir = false, ""
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
