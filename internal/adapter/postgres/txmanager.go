package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs multi-repository operations in a single transaction by
// stashing the open tx in the context; repositories pick it up through
// querier. It does not nest: a RunInTx inside a RunInTx callback opens a
// second, independent transaction.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a TxManager over the pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx begins a transaction at the default Read Committed level, invokes
// fn with a tx-carrying context, and commits if fn returns nil. An error
// from fn rolls back and is returned unchanged so sentinel checks keep
// working. A panic in fn rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback: %w (after: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
