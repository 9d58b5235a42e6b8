package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLineRequest línea de una transacción: cantidad en la unidad de captura.
type TransactionLineRequest struct {
	ItemID string          `json:"item_id"`
	Qty    decimal.Decimal `json:"qty"`
	Unit   string          `json:"unit"`
	Note   string          `json:"note,omitempty"`
}

// SubmitTransactionRequest body para POST /api/ledger/transactions y
// PUT /api/ledger/transactions/:id (en PUT, type vacío conserva el almacenado).
type SubmitTransactionRequest struct {
	Date              string                   `json:"date,omitempty"` // YYYY-MM-DD
	Reference         string                   `json:"reference,omitempty"`
	DeliveryOrder     string                   `json:"delivery_order,omitempty"`
	PartnerRef        string                   `json:"partner_ref,omitempty"`
	Type              string                   `json:"type"`
	SourceWarehouseID string                   `json:"source_warehouse_id"`
	TargetWarehouseID string                   `json:"target_warehouse_id,omitempty"`
	Notes             string                   `json:"notes,omitempty"`
	Lines             []TransactionLineRequest `json:"lines"`
}

// ImportTransactionsRequest body para POST /api/ledger/transactions/import.
type ImportTransactionsRequest struct {
	Transactions []SubmitTransactionRequest `json:"transactions"`
}

// ImportRowResult resultado por fila de la importación masiva.
type ImportRowResult struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// TransactionLineResponse línea con unidad/ratio/cantidad base congelados al commit.
type TransactionLineResponse struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"item_id"`
	ItemCode string          `json:"item_code,omitempty"`
	ItemName string          `json:"item_name,omitempty"`
	Qty      decimal.Decimal `json:"qty"`
	Unit     string          `json:"unit"`
	Ratio    decimal.Decimal `json:"ratio"`
	BaseQty  decimal.Decimal `json:"base_qty"`
	Note     string          `json:"note,omitempty"`
}

// TransactionResponse transacción completa para lecturas.
type TransactionResponse struct {
	ID                string                    `json:"id"`
	Date              string                    `json:"date"`
	Reference         string                    `json:"reference,omitempty"`
	DeliveryOrder     string                    `json:"delivery_order,omitempty"`
	PartnerRef        string                    `json:"partner_ref,omitempty"`
	Type              string                    `json:"type"`
	SourceWarehouseID string                    `json:"source_warehouse_id"`
	TargetWarehouseID string                    `json:"target_warehouse_id,omitempty"`
	Notes             string                    `json:"notes,omitempty"`
	Lines             []TransactionLineResponse `json:"lines"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// StockQtyResponse cantidad actual de un ítem en una bodega.
type StockQtyResponse struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockLevelResponse fila de stock con nombres resueltos para listados.
type StockLevelResponse struct {
	ItemID        string          `json:"item_id"`
	ItemCode      string          `json:"item_code"`
	ItemName      string          `json:"item_name"`
	BaseUnit      string          `json:"base_unit"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
