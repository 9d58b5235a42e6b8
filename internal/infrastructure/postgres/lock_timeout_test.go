package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de 55P03 (lock_timeout agotado) a domain.ErrLockTimeout
//
// Cuando el SELECT FOR UPDATE agota el lock_timeout, PostgreSQL falla con
// SQLSTATE 55P03; los adaptadores deben envolver el centinela para que el
// caller pueda reintentar (errors.Is → 409 LOCK_TIMEOUT en HTTP). El Querier
// stub reproduce ese fallo sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

// errRow es un pgx.Row cuyo Scan siempre falla con el error dado.
type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error { return r.err }

// lockTimeoutQuerier responde todo Exec con éxito y todo QueryRow con 55P03.
type lockTimeoutQuerier struct{}

func (lockTimeoutQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (lockTimeoutQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, &pgconn.PgError{Code: "55P03"}
}

func (lockTimeoutQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{err: &pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"}}
}

func TestTransactionRepo_GetByIDForUpdate_LockTimeout(t *testing.T) {
	repo := postgres.NewTransactionRepository(lockTimeoutQuerier{})

	_, err := repo.GetByIDForUpdate("tx-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockTimeout,
		"el bloqueo agotado del encabezado debe envolver el centinela reintentable")
}

func TestStockRepo_ApplyDelta_LockTimeout(t *testing.T) {
	repo := postgres.NewStockRepository(lockTimeoutQuerier{})

	err := repo.ApplyDelta("item-1", "w1", decimal.NewFromInt(-5), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockTimeout,
		"el bloqueo agotado de la fila de stock debe envolver el centinela reintentable")
}
