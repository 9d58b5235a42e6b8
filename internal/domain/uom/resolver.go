// Package uom resuelve cantidades capturadas en unidades alternas a la unidad
// base del ítem, usando su tabla de conversiones.
package uom

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var one = decimal.NewFromInt(1)

// Resolve convierte (qty, unitName) a cantidad en unidad base.
// Devuelve la cantidad base exacta (sin redondeo intermedio) y el
// multiplicador efectivo que debe congelarse en la línea.
// Falla con domain.UnknownUnitError si la unidad no es la base y no tiene
// conversión registrada; la captura interactiva debe rechazar ese caso.
func Resolve(item *entity.Item, qty decimal.Decimal, unitName string) (baseQty, ratio decimal.Decimal, err error) {
	if unitName == item.BaseUnit {
		return qty, one, nil
	}
	conv, ok := item.FindConversion(unitName)
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, &domain.UnknownUnitError{ItemID: item.ID, Unit: unitName}
	}
	ratio = conv.EffectiveRatio()
	return qty.Mul(ratio), ratio, nil
}

// ResolveLenient es la variante tolerante para importaciones masivas: una
// unidad desconocida se trata como ratio 1 en vez de rechazar la fila.
// Política deliberada SOLO para el camino de importación; la captura
// interactiva usa Resolve.
func ResolveLenient(item *entity.Item, qty decimal.Decimal, unitName string) (baseQty, ratio decimal.Decimal) {
	baseQty, ratio, err := Resolve(item, qty, unitName)
	if err != nil {
		return qty, one
	}
	return baseQty, ratio
}
