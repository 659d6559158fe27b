package cli

import (
	"fmt"
	"log/slog"
	"os"

	"mdkb/internal/config"
	"mdkb/internal/indexer"
	"mdkb/internal/service"
	"mdkb/internal/storage"
)

// Env holds the wired dependencies a command runs against.
type Env struct {
	Config  *config.Config
	Store   storage.SnapshotStore
	Service service.KnowledgeBaseService
	// Close releases the store. It is never nil.
	Close func() error
}

// EnvLoader builds an Env. Commands call it lazily so that --help works without a store.
type EnvLoader func() (*Env, error)

// LoadEnv reads the configuration, installs the process logger and opens the configured store.
func LoadEnv() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so command output stays clean.
	slog.SetDefault(cfg.NewLogger(os.Stderr))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	store, closeFn, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("Store opened", "backend", cfg.StoreBackend, "path", cfg.StorePath)

	return &Env{
		Config:  cfg,
		Store:   store,
		Service: service.NewKnowledgeBaseService(store, indexer.NewImporter(indexer.OSReader{})),
		Close:   closeFn,
	}, nil
}

// OpenStore opens the snapshot store selected by cfg.StoreBackend.
func OpenStore(cfg *config.Config) (storage.SnapshotStore, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := storage.New(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := storage.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return storage.NewSQLiteStore(db), db.Close, nil
	case config.BackendJSON, "":
		return storage.NewJSONFileStore(cfg.StorePath), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
