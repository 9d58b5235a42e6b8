package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del libro de stock sobre PostgreSQL (usable con pool o tx).
// ApplyDelta requiere una tx: el bloqueo de fila vive hasta el commit/rollback.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get lee la cantidad actual sin bloquear; fila ausente equivale a cero.
func (r *StockRepo) Get(itemID, warehouseID string) (*entity.StockEntry, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, updated_at
		FROM stock WHERE item_id = $1 AND warehouse_id = $2`
	var s entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// ApplyDelta asegura la fila (insert-or-ignore, seguro bajo primer toque
// concurrente), la bloquea con SELECT FOR UPDATE y aplica el delta. Si
// expectSufficient es true y quantity+delta quedaría negativa, no aplica nada
// y devuelve domain.InsufficientStockError. El bloqueo se libera al terminar
// la unidad de trabajo.
func (r *StockRepo) ApplyDelta(itemID, warehouseID string, delta decimal.Decimal, expectSufficient bool) error {
	ctx := context.Background()
	ensure := `
		INSERT INTO stock (item_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure, itemID, warehouseID); err != nil {
		return fmt.Errorf("ensure stock row: %w", err)
	}

	var current decimal.Decimal
	lock := `
		SELECT quantity FROM stock
		WHERE item_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	if err := r.q.QueryRow(ctx, lock, itemID, warehouseID).Scan(&current); err != nil {
		if isLockNotAvailable(err) {
			return fmt.Errorf("lock stock (%s, %s): %w", itemID, warehouseID, domain.ErrLockTimeout)
		}
		return fmt.Errorf("lock stock row: %w", err)
	}

	if expectSufficient && current.Add(delta).IsNegative() {
		return &domain.InsufficientStockError{
			ItemID:      itemID,
			WarehouseID: warehouseID,
			Available:   current,
			Requested:   delta.Neg(),
		}
	}

	update := `
		UPDATE stock SET quantity = quantity + $3, updated_at = now()
		WHERE item_id = $1 AND warehouse_id = $2`
	if _, err := r.q.Exec(ctx, update, itemID, warehouseID, delta); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// List devuelve todas las filas de stock con nombres de ítem y bodega
// resueltos, para tableros. Lectura sin bloqueo.
func (r *StockRepo) List() ([]*entity.StockLevel, error) {
	query := `
		SELECT s.item_id, i.code, i.name, i.base_unit, s.warehouse_id, w.name, s.quantity, s.updated_at
		FROM stock s
		JOIN items i ON i.id = s.item_id
		JOIN warehouses w ON w.id = s.warehouse_id
		ORDER BY i.code, w.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ItemID, &s.ItemCode, &s.ItemName, &s.BaseUnit,
			&s.WarehouseID, &s.WarehouseName, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
