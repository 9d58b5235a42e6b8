package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Si fn devuelve error, todo se revierte; si no, se hace
// commit. Es la unidad de trabajo del coordinador: ningún estado intermedio
// es visible para otros lectores.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
	) error) error
}
