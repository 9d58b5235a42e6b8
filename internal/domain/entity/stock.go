package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry es la cantidad actual de un ítem en una bodega, en unidad base.
// Una fila por par (ítem, bodega) con actividad; ausencia equivale a cero.
// Solo la muta el motor de efectos del ledger, nunca los callers directamente.
type StockEntry struct {
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// StockLevel es una fila de stock con los nombres resueltos por join,
// para listados de consulta (lectura sin bloqueo).
type StockLevel struct {
	ItemID        string
	ItemCode      string
	ItemName      string
	BaseUnit      string
	WarehouseID   string
	WarehouseName string
	Quantity      decimal.Decimal
	UpdatedAt     time.Time
}
