package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockRepository es el puerto del libro de stock por (ítem, bodega).
// ApplyDelta es la única vía de mutación y debe usarse dentro de una
// transacción de BD: asegura la fila (insert-or-ignore), la bloquea
// (SELECT FOR UPDATE) y aplica el incremento/decremento.
type StockRepository interface {
	// Get lee la cantidad actual sin bloquear; fila ausente equivale a cero.
	// Puede estar momentáneamente desfasada frente a escritores concurrentes.
	Get(itemID, warehouseID string) (*entity.StockEntry, error)
	// ApplyDelta suma delta a la fila bloqueada. Si expectSufficient es true y
	// quantity+delta < 0, no aplica nada y devuelve domain.InsufficientStockError.
	ApplyDelta(itemID, warehouseID string, delta decimal.Decimal, expectSufficient bool) error
	// List devuelve todas las filas de stock con nombres resueltos, para consulta.
	List() ([]*entity.StockLevel, error)
}
