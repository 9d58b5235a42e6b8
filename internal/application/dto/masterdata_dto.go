package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitConversionDTO conversión de unidad de un ítem (entrada y salida).
type UnitConversionDTO struct {
	Name     string          `json:"name"`
	Ratio    decimal.Decimal `json:"ratio"`
	Operator string          `json:"operator"` // "*" o "/"
}

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Category    string              `json:"category,omitempty"`
	BaseUnit    string              `json:"base_unit"`
	Conversions []UnitConversionDTO `json:"conversions,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id (campos nil no cambian).
type UpdateItemRequest struct {
	Name        *string              `json:"name,omitempty"`
	Category    *string              `json:"category,omitempty"`
	Conversions *[]UnitConversionDTO `json:"conversions,omitempty"`
}

// ItemResponse ítem del maestro con su tabla de conversiones.
type ItemResponse struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Category    string              `json:"category,omitempty"`
	BaseUnit    string              `json:"base_unit"`
	Conversions []UnitConversionDTO `json:"conversions"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// UpdateWarehouseRequest body para PUT /api/warehouses/:id.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// WarehouseResponse bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
