package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operadores de conversión: multiplicar o dividir la cantidad por el ratio
// para llevarla a la unidad base.
const (
	ConversionOpMultiply = "*"
	ConversionOpDivide   = "/"
)

// UnitConversion es una unidad alterna de un ítem (ej. "Caja" = 10 unidades base).
// La unidad base nunca aparece en la tabla de conversiones.
type UnitConversion struct {
	Name     string
	Ratio    decimal.Decimal // siempre > 0
	Operator string          // "*" o "/"
}

// EffectiveRatio devuelve el multiplicador efectivo a unidad base:
// ratio si el operador es "*", 1/ratio si es "/".
func (c UnitConversion) EffectiveRatio() decimal.Decimal {
	if c.Operator == ConversionOpDivide {
		return decimal.NewFromInt(1).Div(c.Ratio)
	}
	return c.Ratio
}

// Item representa un ítem del maestro de productos (multi-bodega).
// El stock siempre se almacena en BaseUnit; las conversiones solo aplican
// al momento de capturar una transacción.
type Item struct {
	ID          string
	Code        string // código único legible (ej. A001)
	Name        string
	Category    string
	BaseUnit    string
	Conversions []UnitConversion // ordenadas; nombres únicos por ítem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FindConversion busca una conversión por nombre exacto.
func (i *Item) FindConversion(name string) (UnitConversion, bool) {
	for _, c := range i.Conversions {
		if c.Name == name {
			return c, true
		}
	}
	return UnitConversion{}, false
}
