package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Los casos de uso y adaptadores los envuelven con %w
// para que el handler HTTP pueda mapearlos con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnknownUnit       = errors.New("unidad de medida desconocida")
	ErrLockTimeout       = errors.New("tiempo de espera del bloqueo agotado")
	ErrTypeImmutable     = errors.New("el tipo de transacción no se puede cambiar")
)

// InsufficientStockError detalla un déficit de stock: qué ítem, en qué bodega,
// cuánto hay disponible y cuánto se intentó descontar.
type InsufficientStockError struct {
	ItemID      string
	WarehouseID string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: ítem %s en bodega %s (disponible %s, solicitado %s)",
		e.ItemID, e.WarehouseID, e.Available.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// UnknownUnitError detalla una unidad sin conversión registrada para un ítem.
type UnknownUnitError struct {
	ItemID string
	Unit   string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unidad desconocida %q para el ítem %s", e.Unit, e.ItemID)
}

// Unwrap permite errors.Is(err, ErrUnknownUnit).
func (e *UnknownUnitError) Unwrap() error { return ErrUnknownUnit }
