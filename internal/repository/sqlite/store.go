// Package sqlite is a single-file backing store built on GORM and the
// pure-Go SQLite driver.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yadisk/internal/domain/repositories"
	"yadisk/internal/metrics"
)

// Config holds SQLite-specific configuration
type Config struct {
	Path        string
	TablePrefix string
	LogLevel    logger.LogLevel
	Logger      *slog.Logger
}

// Store owns the GORM handle and the prefixed table names
type Store struct {
	db      *gorm.DB
	items   string
	history string
	logger  *slog.Logger
}

// itemRecord is the row layout of the items table
type itemRecord struct {
	ID               string    `gorm:"primaryKey;type:text"`
	ExternalID       string    `gorm:"type:text;not null;uniqueIndex"`
	ParentID         *string   `gorm:"type:text;index"`
	ParentExternalID *string   `gorm:"type:text"`
	ItemType         string    `gorm:"type:text;not null"`
	Size             int64     `gorm:"not null;default:0;check:size >= 0"`
	URL              *string   `gorm:"size:255"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime:false"`
}

// historyRecord is the row layout of the history table
type historyRecord struct {
	ItemID           string    `gorm:"primaryKey;type:text"`
	UpdatedAt        time.Time `gorm:"primaryKey;autoUpdateTime:false"`
	ExternalID       string    `gorm:"type:text;not null"`
	URL              *string   `gorm:"size:255"`
	ParentID         *string   `gorm:"type:text"`
	ParentExternalID *string   `gorm:"type:text"`
	Size             int64     `gorm:"not null"`
}

// Open opens (creating if needed) the database file
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Store{
		db:      db,
		items:   cfg.TablePrefix + "items",
		history: cfg.TablePrefix + "history",
		logger:  cfg.Logger,
	}, nil
}

// Migrate creates or updates the registry tables
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.Table(s.items).AutoMigrate(&itemRecord{}); err != nil {
		return fmt.Errorf("migrate %s: %w", s.items, err)
	}
	if err := db.Table(s.history).AutoMigrate(&historyRecord{}); err != nil {
		return fmt.Errorf("migrate %s: %w", s.history, err)
	}
	s.logger.Info("schema ready", "items", s.items, "history", s.history)
	return nil
}

// Drop removes the registry tables
func (s *Store) Drop(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Migrator().DropTable(s.history, s.items); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	return sqlDB.Close()
}

// conn returns the transaction stored in ctx, or the base handle.
func (s *Store) conn(ctx context.Context) *gorm.DB {
	if tx, ok := repositories.TxFrom[*gorm.DB](ctx); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// TransactionManager implements repositories.TransactionManager over a Store
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx executes a function within a GORM transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if _, ok := repositories.TxFrom[*gorm.DB](ctx); ok {
		return fn(ctx)
	}

	start := time.Now()
	err := tm.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repositories.WithTx(ctx, tx))
	})
	metrics.RecordTx("sqlite", time.Since(start), err == nil)
	return err
}

// Ping checks database connectivity
func (tm *TransactionManager) Ping(ctx context.Context) error {
	sqlDB, err := tm.store.db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
