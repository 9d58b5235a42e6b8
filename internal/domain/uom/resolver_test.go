package uom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/uom"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// itemConConversiones construye un ítem base Pcs con conversiones típicas:
// Caja = ×10, Docena = ×12, Gramo = ÷1000 (cuando la base es Kg no aplica,
// aquí solo valida el operador de división).
func itemConConversiones() *entity.Item {
	return &entity.Item{
		ID:       "item-1",
		Code:     "A001",
		BaseUnit: "Pcs",
		Conversions: []entity.UnitConversion{
			{Name: "Caja", Ratio: decimal.NewFromInt(10), Operator: entity.ConversionOpMultiply},
			{Name: "Docena", Ratio: decimal.NewFromInt(12), Operator: entity.ConversionOpMultiply},
			{Name: "Media", Ratio: decimal.NewFromInt(2), Operator: entity.ConversionOpDivide},
		},
	}
}

func TestResolve_UnidadBase(t *testing.T) {
	item := itemConConversiones()

	base, ratio, err := uom.Resolve(item, decimal.NewFromInt(7), "Pcs")
	require.NoError(t, err)
	assert.True(t, base.Equal(decimal.NewFromInt(7)), "la unidad base no convierte: %s", base)
	assert.True(t, ratio.Equal(decimal.NewFromInt(1)))
}

func TestResolve_OperadorMultiplicar(t *testing.T) {
	item := itemConConversiones()

	base, ratio, err := uom.Resolve(item, decimal.NewFromInt(3), "Caja")
	require.NoError(t, err)
	assert.True(t, base.Equal(decimal.NewFromInt(30)), "3 Cajas = 30 Pcs, fue %s", base)
	assert.True(t, ratio.Equal(decimal.NewFromInt(10)))
}

func TestResolve_OperadorDividir(t *testing.T) {
	item := itemConConversiones()

	// Media = ÷2 → ratio efectivo 0.5
	base, ratio, err := uom.Resolve(item, decimal.NewFromInt(5), "Media")
	require.NoError(t, err)
	assert.True(t, ratio.Equal(decimal.NewFromFloat(0.5)), "ratio efectivo debe ser 0.5, fue %s", ratio)
	assert.True(t, base.Equal(decimal.NewFromFloat(2.5)), "5 Medias = 2.5 Pcs, fue %s", base)
}

func TestResolve_SinRedondeoIntermedio(t *testing.T) {
	item := &entity.Item{
		ID:       "item-2",
		BaseUnit: "Kg",
		Conversions: []entity.UnitConversion{
			{Name: "Bulto", Ratio: decimal.NewFromFloat(1.333), Operator: entity.ConversionOpMultiply},
		},
	}

	base, _, err := uom.Resolve(item, decimal.NewFromInt(3), "Bulto")
	require.NoError(t, err)
	// Producto decimal exacto, nada de float: 3 × 1.333 = 3.999
	assert.Equal(t, "3.999", base.String())
}

func TestResolve_UnidadDesconocida(t *testing.T) {
	item := itemConConversiones()

	_, _, err := uom.Resolve(item, decimal.NewFromInt(1), "Pallet")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)

	var unitErr *domain.UnknownUnitError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, "item-1", unitErr.ItemID)
	assert.Equal(t, "Pallet", unitErr.Unit)
}

func TestResolveLenient_UnidadDesconocidaUsaRatioUno(t *testing.T) {
	item := itemConConversiones()

	base, ratio := uom.ResolveLenient(item, decimal.NewFromInt(4), "Pallet")
	assert.True(t, ratio.Equal(decimal.NewFromInt(1)), "importación masiva: ratio 1 como fallback")
	assert.True(t, base.Equal(decimal.NewFromInt(4)))
}

func TestResolveLenient_UnidadConocidaConvierteNormal(t *testing.T) {
	item := itemConConversiones()

	base, ratio := uom.ResolveLenient(item, decimal.NewFromInt(2), "Docena")
	assert.True(t, ratio.Equal(decimal.NewFromInt(12)))
	assert.True(t, base.Equal(decimal.NewFromInt(24)))
}
