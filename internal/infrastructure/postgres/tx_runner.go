package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Espera máxima por un bloqueo de fila dentro de una unidad de trabajo.
// Al agotarse, PostgreSQL falla con 55P03 y el runner revierte todo; el
// caller recibe domain.ErrLockTimeout y puede reintentar.
const lockWaitTimeout = "5s"

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL: la unidad
// de trabajo del ledger.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, fija el lock_timeout local, ejecuta fn con
// repos atados a la tx y hace Commit o Rollback. El Rollback diferido cubre
// todos los caminos de salida, incluidos panics.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockWaitTimeout)); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	txRepo := NewTransactionRepository(tx)
	stockRepo := NewStockRepository(tx)

	if err := fn(txRepo, stockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
