package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Dirección de aplicación de efectos: aplicar una transacción o revertirla.
// Revert niega todos los deltas de Apply.
const (
	directionApply  = 1
	directionRevert = -1
)

// applyEffects calcula y aplica sobre el libro de stock los deltas de todas
// las líneas de tx, en la dirección dada. La cantidad base de cada línea es
// la congelada al commit (Qty × Ratio almacenado); nunca se vuelve a resolver
// contra la tabla de conversiones viva del ítem.
//
// Mapa de efectos (dirección Apply):
//
//	IN / ADJUSTMENT → +base en bodega origen
//	OUT             → −base en bodega origen
//	TRANSFER        → −base en origen, +base en destino
//
// Todo delta negativo pasa la verificación de suficiencia: revertir un IN ya
// consumido o el lado destino de un TRANSFER falla con stock insuficiente y
// la unidad de trabajo completa se revierte. Ningún efecto parcial sobrevive.
func applyEffects(stockRepo repository.StockRepository, tx *entity.Transaction, direction int) error {
	sign := decimal.NewFromInt(int64(direction))
	for _, line := range tx.Lines {
		base := line.BaseQty
		switch tx.Type {
		case entity.TxTypeIN, entity.TxTypeADJUSTMENT:
			if err := applyDelta(stockRepo, line.ItemID, tx.SourceWarehouseID, base.Mul(sign)); err != nil {
				return err
			}
		case entity.TxTypeOUT:
			if err := applyDelta(stockRepo, line.ItemID, tx.SourceWarehouseID, base.Neg().Mul(sign)); err != nil {
				return err
			}
		case entity.TxTypeTRANSFER:
			if err := applyDelta(stockRepo, line.ItemID, tx.SourceWarehouseID, base.Neg().Mul(sign)); err != nil {
				return err
			}
			if err := applyDelta(stockRepo, line.ItemID, tx.TargetWarehouseID, base.Mul(sign)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("tipo de transacción desconocido %q", tx.Type)
		}
	}
	return nil
}

// applyDelta aplica un delta sobre una fila de stock. Los decrementos exigen
// suficiencia; los incrementos nunca fallan por stock.
func applyDelta(stockRepo repository.StockRepository, itemID, warehouseID string, delta decimal.Decimal) error {
	return stockRepo.ApplyDelta(itemID, warehouseID, delta, delta.IsNegative())
}
