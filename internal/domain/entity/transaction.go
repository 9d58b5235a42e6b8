package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TxTypeIN         = "IN"         // entrada
	TxTypeOUT        = "OUT"        // salida
	TxTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
	TxTypeADJUSTMENT = "ADJUSTMENT" // ajuste de inventario
)

// IsValidTxType indica si s es un tipo de transacción conocido.
func IsValidTxType(s string) bool {
	switch s {
	case TxTypeIN, TxTypeOUT, TxTypeTRANSFER, TxTypeADJUSTMENT:
		return true
	}
	return false
}

// Transaction es el encabezado de una transacción de inventario con sus líneas.
// Se crea y muta únicamente a través del coordinador del ledger; el tipo es
// inmutable después de creada.
type Transaction struct {
	ID                string
	Date              time.Time // fecha calendario; CreatedAt desempata el orden
	Reference         string
	DeliveryOrder     string // número de orden de entrega (opcional)
	PartnerRef        string // referencia del tercero (opcional)
	Type              string // IN, OUT, TRANSFER, ADJUSTMENT
	SourceWarehouseID string
	TargetWarehouseID string // requerido y distinto del origen solo en TRANSFER
	Notes             string
	Lines             []TransactionLine
	CreatedAt         time.Time
}

// TransactionLine es una línea de transacción. Unit, Ratio y BaseQty se
// congelan al momento del commit: aunque la tabla de conversiones del ítem
// cambie después, revertir esta línea usa el ratio almacenado.
type TransactionLine struct {
	ID            string
	TransactionID string
	LineNo        int
	ItemID        string
	ItemCode      string // resuelto por join en lecturas
	ItemName      string // resuelto por join en lecturas
	Qty           decimal.Decimal // cantidad en la unidad de captura
	Unit          string
	Ratio         decimal.Decimal // multiplicador efectivo a unidad base
	BaseQty       decimal.Decimal // Qty × Ratio, escalado a 3 decimales al persistir
	Note          string
}
