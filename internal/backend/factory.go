package backend

import (
	"fmt"
	"os"
	"path/filepath"

	"expensebook/internal/adapters"
	"expensebook/internal/log"
	"expensebook/internal/storage"
	"expensebook/internal/store"
)

// Factory creates repositories from configuration.
type Factory interface {
	CreateRepository(config Config) (*Result, error)
}

// DefaultFactory implements Factory for the built-in backends.
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default("backend")
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateRepository(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case FileBackend:
		return f.createFileRepository(config)
	case SQLiteBackend:
		return f.createSQLiteRepository(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileRepository(config Config) (*Result, error) {
	// The store itself never creates directories; do it here so a fresh
	// checkout can persist its very first mutation.
	if dir := filepath.Dir(config.DataFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	repo := store.Open(config.DataFile, f.logger.WithComponent("store"))
	f.logger.Info("initialized file backend", "data_file", config.DataFile)

	return &Result{Repository: repo, Cleanup: nil}, nil
}

func (f *DefaultFactory) createSQLiteRepository(config Config) (*Result, error) {
	sqliteRepo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	adapter := adapters.NewSQLiteAdapter(sqliteRepo, f.logger.WithComponent("sqlite"))
	f.logger.Info("initialized sqlite backend", "db_path", config.SQLiteDBPath)

	return &Result{Repository: adapter, Cleanup: sqliteRepo.Close}, nil
}
