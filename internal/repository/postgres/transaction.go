package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yadisk/internal/domain/repositories"
	"yadisk/internal/metrics"
)

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// registryLockKey identifies the transaction-scoped advisory lock that
// serializes registry transactions.
const registryLockKey int64 = 0x79616469736b

// ExecTx executes a function within a transaction. Registry transactions
// hold one advisory lock, so they run one at a time and never observe
// each other's partial ancestor updates.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if repositories.GetTx(ctx) != nil {
		return fn(ctx)
	}

	start := time.Now()
	err := tm.exec(ctx, fn)
	metrics.RecordTx("postgres", time.Since(start), err == nil)
	return err
}

func (tm *TransactionManager) exec(ctx context.Context, fn repositories.TxFn) error {
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Safe even if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tm.logger.Warn("rollback failed", "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", registryLockKey); err != nil {
		return fmt.Errorf("acquire registry lock: %w", err)
	}

	txCtx := repositories.SetTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Ping checks database connectivity
func (tm *TransactionManager) Ping(ctx context.Context) error {
	return tm.pool.Ping(ctx)
}
