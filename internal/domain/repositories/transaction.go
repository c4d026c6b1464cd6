package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions.
// Effects of fn are committed only if fn returns nil; any error (or panic)
// rolls the whole transaction back.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
}
