package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook/internal/core/domain"
)

var (
	storageBackend      string
	storageDataDir      string
	storageStudentsFile string
	storageCoursesFile  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure where gradebook keeps its records.

Settings are stored in config.toml in the gradebook home directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Configure record storage",
	Long: `Configure the storage backend and data location.

Available backends:
  text    - students.txt and courses.txt, one record per line (default)
  sqlite  - gradebook.db in the data directory
  memory  - nothing is written; records last for a single command

Only the flags given are changed. Changes apply from the next command.`,
	Args: cobra.NoArgs,
	RunE: runSettingsStorage,
}

func init() {
	settingsStorageCmd.Flags().StringVar(&storageBackend, "backend", "", "storage backend (text, sqlite, memory)")
	settingsStorageCmd.Flags().StringVar(&storageDataDir, "data-dir", "", "directory holding the data files")
	settingsStorageCmd.Flags().StringVar(&storageStudentsFile, "students-file", "", "file name for student records")
	settingsStorageCmd.Flags().StringVar(&storageCoursesFile, "courses-file", "", "file name for course records")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	storage := settings.Storage
	dataDir := storage.DataDir
	if dataDir == "" {
		dataDir = "(working directory)"
	}

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", storage.Backend.Description())
	cmd.Printf("  Data directory: %s\n", dataDir)
	if storage.Backend == domain.StorageBackendText {
		cmd.Printf("  Students file: %s\n", storage.StudentsFile)
		cmd.Printf("  Courses file: %s\n", storage.CoursesFile)
	}
	if !storage.Backend.IsDurable() {
		cmd.Println("  Warning: records are not persisted between runs.")
	}
	cmd.Println()

	if path := settingsService.ConfigPath(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}

	return nil
}

func runSettingsStorage(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if storageBackend == "" && storageDataDir == "" && storageStudentsFile == "" && storageCoursesFile == "" {
		return fmt.Errorf("nothing to change; use one of --backend, --data-dir, --students-file, --courses-file")
	}

	update := domain.StorageSettings{
		Backend:      domain.StorageBackend(strings.ToLower(storageBackend)),
		DataDir:      storageDataDir,
		StudentsFile: storageStudentsFile,
		CoursesFile:  storageCoursesFile,
	}

	if err := settingsService.SetStorage(update); err != nil {
		return fmt.Errorf("failed to update storage settings: %w", err)
	}

	cmd.Println("Storage settings updated.")
	return runSettingsShow(cmd, nil)
}
