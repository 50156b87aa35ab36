// Package backend selects and builds the persistence backend the ledger
// runs on.
package backend

import (
	"fmt"

	"verkskra/internal/config"
	"verkskra/internal/ledger"
	"verkskra/internal/log"
	"verkskra/internal/storage"
)

// Result bundles a ready persistence port with its cleanup function.
// Cleanup may be nil when the backend holds no resources.
type Result struct {
	Persistence ledger.PersistencePort
	Cleanup     func() error
}

// Create builds the persistence backend named by the configuration.
func Create(cfg *config.Config, logger *log.Logger) (*Result, error) {
	logger = logger.WithComponent(log.ComponentStorage)

	switch cfg.DataBackend {
	case "memory":
		logger.Info("Initialized memory backend")
		return &Result{Persistence: storage.NewMemory()}, nil

	case "file":
		logger.Info("Initialized file backend", log.FieldBackend, cfg.LedgerFilePath)
		return &Result{Persistence: storage.NewFile(cfg.LedgerFilePath)}, nil

	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, cfg.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend", log.FieldBackend, cfg.SQLiteDBPath)
		return &Result{Persistence: repo, Cleanup: repo.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
