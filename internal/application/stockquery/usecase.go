// Package stockquery expone las lecturas de stock para tableros y reportes.
// Son lecturas sin bloqueo: pueden ver una cantidad a mitad de un escritor
// concurrente; cualquier decisión de suficiencia pasa por el camino
// bloqueado del ledger, nunca por estas consultas.
package stockquery

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockQueryUseCase consulta el libro de stock.
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stockRepo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo}
}

// GetQty devuelve la cantidad actual de un ítem en una bodega (cero si no hay fila).
func (uc *StockQueryUseCase) GetQty(ctx context.Context, itemID, warehouseID string) (decimal.Decimal, error) {
	entry, err := uc.stockRepo.Get(itemID, warehouseID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return entry.Quantity, nil
}

// List devuelve todas las filas de stock con nombres de ítem y bodega resueltos.
func (uc *StockQueryUseCase) List(ctx context.Context) ([]*entity.StockLevel, error) {
	return uc.stockRepo.List()
}
