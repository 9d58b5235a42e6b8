package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionFilter filtra el listado de transacciones. Campos en cero se omiten.
type TransactionFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	WarehouseID string // coincide contra bodega origen o destino
	Type        string
}

// TransactionRepository es el puerto del registro de transacciones
// (encabezado + líneas). Las mutaciones se invocan solo desde el coordinador
// del ledger, dentro de una unidad de trabajo.
type TransactionRepository interface {
	Insert(tx *entity.Transaction) error
	// Replace actualiza los campos del encabezado y reemplaza las líneas
	// (delete + insert) en la misma transacción de BD.
	Replace(tx *entity.Transaction) error
	// Remove elimina encabezado y líneas de forma atómica.
	Remove(id string) error
	// GetByID devuelve nil si no existe.
	GetByID(id string) (*entity.Transaction, error)
	// GetByIDForUpdate bloquea el encabezado (SELECT FOR UPDATE) para que dos
	// Update/Delete concurrentes del mismo id se serialicen.
	GetByIDForUpdate(id string) (*entity.Transaction, error)
	// List devuelve transacciones ordenadas por fecha y luego created_at,
	// con código/nombre de ítem resueltos en cada línea.
	List(filter TransactionFilter) ([]*entity.Transaction, error)
}
