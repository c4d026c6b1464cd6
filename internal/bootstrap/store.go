// Package bootstrap wires a configured backing store to the disk services.
// It is shared by the server and seed binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"yadisk/internal/config"
	"yadisk/internal/domain/repositories"
	diskRepo "yadisk/internal/domain/repositories/disk"
	diskSvc "yadisk/internal/domain/services/disk"
	"yadisk/internal/repository/memory"
	"yadisk/internal/repository/postgres"
	postgresDisk "yadisk/internal/repository/postgres/disk"
	"yadisk/internal/repository/sqlite"
	diskService "yadisk/internal/service/disk"
)

// Store is an opened backing store
type Store struct {
	Items     diskRepo.ItemRepository
	History   diskRepo.HistoryRepository
	TxManager repositories.TransactionManager

	migrate func(ctx context.Context) error
	drop    func(ctx context.Context) error
	close   func()
}

// Services groups the disk services built on one Store
type Services struct {
	Import  diskSvc.ImportService
	Tree    diskSvc.TreeService
	Delete  diskSvc.DeleteService
	History diskSvc.HistoryService
}

// OpenStore connects to the store selected by cfg.StoreDriver
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		logger.Info("database connected", "driver", cfg.StoreDriver, "table_prefix", cfg.TablePrefix)
		return &Store{
			Items:     postgresDisk.NewItemRepository(repoConfig),
			History:   postgresDisk.NewHistoryRepository(repoConfig),
			TxManager: postgres.NewTransactionManager(pool, logger),
			migrate: func(ctx context.Context) error {
				return postgres.EnsureSchema(ctx, repoConfig)
			},
			drop: func(ctx context.Context) error {
				return postgres.DropSchema(ctx, repoConfig)
			},
			close: pool.Close,
		}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(sqlite.Config{
			Path:        cfg.SQLitePath,
			TablePrefix: cfg.TablePrefix,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("database opened", "driver", cfg.StoreDriver, "path", cfg.SQLitePath)
		return &Store{
			Items:     sqlite.NewItemRepository(db),
			History:   sqlite.NewHistoryRepository(db),
			TxManager: sqlite.NewTransactionManager(db),
			migrate:   db.Migrate,
			drop:      db.Drop,
			close: func() {
				if err := db.Close(); err != nil {
					logger.Warn("close sqlite", "error", err)
				}
			},
		}, nil

	case config.StoreMemory:
		store := memory.NewStore()
		logger.Warn("using in-memory store, data is lost on exit")
		return &Store{
			Items:     memory.NewItemRepository(store),
			History:   memory.NewHistoryRepository(store),
			TxManager: memory.NewTransactionManager(store),
			migrate:   func(context.Context) error { return nil },
			drop:      func(context.Context) error { return nil },
			close:     func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

// Drop removes the registry tables and their data
func (s *Store) Drop(ctx context.Context) error {
	return s.drop(ctx)
}

// Close releases the store's connections
func (s *Store) Close() {
	s.close()
}

// NewServices builds the disk services on top of s
func (s *Store) NewServices(cfg *config.Config, logger *slog.Logger) *Services {
	return &Services{
		Import:  diskService.NewImportService(s.Items, s.History, s.TxManager, cfg.IDNamespace, logger),
		Tree:    diskService.NewTreeService(s.Items, s.TxManager, cfg.IDNamespace, logger),
		Delete:  diskService.NewDeleteService(s.Items, s.TxManager, cfg.IDNamespace, logger),
		History: diskService.NewHistoryService(s.Items, s.History, s.TxManager, cfg.IDNamespace),
	}
}
