package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gradebook/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gradebook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gradebook/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gradebook/internal/adapters/driven/storage/text"
	"github.com/custodia-labs/gradebook/internal/adapters/driving/cli"
	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/services"
	"github.com/custodia-labs/gradebook/internal/logger"
)

// bootstrap reads the config in home and opens the configured record store.
func bootstrap(_ context.Context, home string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	storage := settings.Storage
	if err := storage.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage settings in %s: %w", configStore.Path(), err)
	}
	logger.Debug("storage backend %s, data dir %q", storage.Backend, storage.DataDir)

	var (
		recordService *services.RecordService
		closeFn       func() error
	)

	switch storage.Backend {
	case domain.StorageBackendText:
		store, err := text.NewStore(storage.DataDir, storage)
		if err != nil {
			return nil, fmt.Errorf("opening text store: %w", err)
		}
		recordService = services.NewRecordService(store)
		recordService.SetWatcher(store)
	case domain.StorageBackendSQLite:
		store, err := sqlite.NewStore(storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		recordService = services.NewRecordService(store)
		closeFn = store.Close
	case domain.StorageBackendMemory:
		recordService = services.NewRecordService(memory.NewRecordStore())
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, storage.Backend)
	}

	return &cli.Services{
		Records:  recordService,
		Settings: settingsService,
		Close:    closeFn,
	}, nil
}
