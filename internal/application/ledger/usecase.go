// Package ledger implementa el motor de mutación del libro de stock:
// aplicar, revertir y re-aplicar transacciones de inventario de forma
// atómica contra las cantidades por (ítem, bodega).
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/uom"
)

// Las cantidades base se escalan a 3 decimales al persistir; el producto
// qty × ratio se calcula exacto y solo se redondea aquí.
const baseQtyScale = 3

// LedgerUseCase coordina el ciclo de vida de las transacciones de inventario
// (crear, editar, eliminar) como unidades de trabajo atómicas, y expone las
// lecturas del registro. La corrección bajo concurrencia descansa en el
// bloqueo de filas de la BD, no en sincronización en proceso.
type LedgerUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	txRepo        repository.TransactionRepository // lecturas fuera de la unidad de trabajo
}

// NewLedgerUseCase construye el coordinador.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	txRepo repository.TransactionRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		txRepo:        txRepo,
	}
}

// TransactionInput es la entrada validada para Submit/Edit.
// En Edit, Type vacío conserva el tipo almacenado; un tipo distinto se
// rechaza (el tipo es inmutable después de creada la transacción).
type TransactionInput struct {
	Date              time.Time
	Reference         string
	DeliveryOrder     string
	PartnerRef        string
	Type              string
	SourceWarehouseID string
	TargetWarehouseID string
	Notes             string
	Lines             []LineInput
}

// LineInput es una línea de entrada: cantidad en la unidad de captura.
type LineInput struct {
	ItemID string
	Qty    decimal.Decimal
	Unit   string
	Note   string
}

// Submit crea una transacción: valida, inserta encabezado+líneas y aplica los
// efectos de stock, todo en una unidad de trabajo. Si cualquier paso falla
// (stock insuficiente, timeout de bloqueo) nada queda persistido.
func (uc *LedgerUseCase) Submit(ctx context.Context, in TransactionInput) (string, error) {
	return uc.submit(ctx, in, false)
}

func (uc *LedgerUseCase) submit(ctx context.Context, in TransactionInput, lenient bool) (string, error) {
	if err := uc.validate(in); err != nil {
		return "", err
	}
	lines, err := uc.buildLines(in.Lines, lenient)
	if err != nil {
		return "", err
	}
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	tx := &entity.Transaction{
		ID:                uuid.New().String(),
		Date:              date,
		Reference:         in.Reference,
		DeliveryOrder:     in.DeliveryOrder,
		PartnerRef:        in.PartnerRef,
		Type:              in.Type,
		SourceWarehouseID: in.SourceWarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Notes:             in.Notes,
		Lines:             lines,
		CreatedAt:         now,
	}
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := txRepo.Insert(tx); err != nil {
			return err
		}
		return applyEffects(stockRepo, tx, directionApply)
	})
	if err != nil {
		return "", err
	}
	return tx.ID, nil
}

// Edit reemplaza encabezado y líneas de una transacción existente:
// revierte los efectos de las líneas almacenadas, reescribe el registro y
// aplica los efectos nuevos, conservando el tipo original. Todo dentro de la
// misma unidad de trabajo; el encabezado se lee una sola vez, bloqueado, para
// que dos ediciones concurrentes del mismo id se serialicen. Una validación
// fallida revierte la unidad de trabajo y libera el bloqueo sin efectos.
func (uc *LedgerUseCase) Edit(ctx context.Context, id string, in TransactionInput) error {
	return uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
	) error {
		current, err := txRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
		}
		if in.Type != "" && in.Type != current.Type {
			return fmt.Errorf("%w: de %s a %s", domain.ErrTypeImmutable, current.Type, in.Type)
		}
		in.Type = current.Type
		if err := uc.validate(in); err != nil {
			return err
		}
		lines, err := uc.buildLines(in.Lines, false)
		if err != nil {
			return err
		}
		if err := applyEffects(stockRepo, current, directionRevert); err != nil {
			return err
		}
		date := in.Date
		if date.IsZero() {
			date = current.Date
		}
		updated := &entity.Transaction{
			ID:                id,
			Date:              date,
			Reference:         in.Reference,
			DeliveryOrder:     in.DeliveryOrder,
			PartnerRef:        in.PartnerRef,
			Type:              current.Type,
			SourceWarehouseID: in.SourceWarehouseID,
			TargetWarehouseID: in.TargetWarehouseID,
			Notes:             in.Notes,
			Lines:             lines,
			CreatedAt:         current.CreatedAt,
		}
		if err := txRepo.Replace(updated); err != nil {
			return err
		}
		return applyEffects(stockRepo, updated, directionApply)
	})
}

// Remove elimina una transacción: revierte sus efectos con las líneas aún
// intactas y luego borra encabezado y líneas. Si la reversión dejaría alguna
// fila de stock en negativo (ej. un IN ya consumido por salidas posteriores)
// falla con stock insuficiente y la eliminación queda bloqueada; el caller
// debe eliminar en orden cronológico inverso.
func (uc *LedgerUseCase) Remove(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
	) error {
		current, err := txRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
		}
		if err := applyEffects(stockRepo, current, directionRevert); err != nil {
			return err
		}
		return txRepo.Remove(id)
	})
}

// Get obtiene una transacción con sus líneas (código/nombre de ítem resueltos).
func (uc *LedgerUseCase) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	return tx, nil
}

// List lista transacciones por rango de fechas, bodega y tipo.
func (uc *LedgerUseCase) List(ctx context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	return uc.txRepo.List(filter)
}

// validate rechaza la entrada antes de cualquier persistencia o bloqueo.
func (uc *LedgerUseCase) validate(in TransactionInput) error {
	if !entity.IsValidTxType(in.Type) {
		return fmt.Errorf("%w: tipo de transacción %q", domain.ErrInvalidInput, in.Type)
	}
	if in.SourceWarehouseID == "" {
		return fmt.Errorf("%w: bodega origen requerida", domain.ErrInvalidInput)
	}
	if in.Type == entity.TxTypeTRANSFER {
		if in.TargetWarehouseID == "" {
			return fmt.Errorf("%w: TRANSFER requiere bodega destino", domain.ErrInvalidInput)
		}
		if in.TargetWarehouseID == in.SourceWarehouseID {
			return fmt.Errorf("%w: bodega destino igual a la de origen", domain.ErrInvalidInput)
		}
	} else if in.TargetWarehouseID != "" {
		return fmt.Errorf("%w: bodega destino solo aplica a TRANSFER", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("%w: la transacción no tiene líneas", domain.ErrInvalidInput)
	}
	for i, line := range in.Lines {
		if line.ItemID == "" {
			return fmt.Errorf("%w: línea %d sin ítem", domain.ErrInvalidInput, i+1)
		}
		if !line.Qty.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: línea %d con cantidad no positiva", domain.ErrInvalidInput, i+1)
		}
	}
	if wh, err := uc.warehouseRepo.GetByID(in.SourceWarehouseID); err != nil {
		return err
	} else if wh == nil {
		return fmt.Errorf("%w: bodega origen %s", domain.ErrNotFound, in.SourceWarehouseID)
	}
	if in.Type == entity.TxTypeTRANSFER {
		if wh, err := uc.warehouseRepo.GetByID(in.TargetWarehouseID); err != nil {
			return err
		} else if wh == nil {
			return fmt.Errorf("%w: bodega destino %s", domain.ErrNotFound, in.TargetWarehouseID)
		}
	}
	return nil
}

// buildLines resuelve cada línea contra el maestro de ítems y congela unidad,
// ratio y cantidad base. En modo lenient (importación masiva) las unidades
// desconocidas se toman con ratio 1 en vez de rechazar.
func (uc *LedgerUseCase) buildLines(inputs []LineInput, lenient bool) ([]entity.TransactionLine, error) {
	lines := make([]entity.TransactionLine, 0, len(inputs))
	for i, in := range inputs {
		item, err := uc.itemRepo.GetByID(in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, in.ItemID)
		}
		var baseQty, ratio decimal.Decimal
		if lenient {
			baseQty, ratio = uom.ResolveLenient(item, in.Qty, in.Unit)
		} else {
			baseQty, ratio, err = uom.Resolve(item, in.Qty, in.Unit)
			if err != nil {
				return nil, err
			}
		}
		lines = append(lines, entity.TransactionLine{
			ID:      uuid.New().String(),
			LineNo:  i + 1,
			ItemID:  item.ID,
			Qty:     in.Qty,
			Unit:    in.Unit,
			Ratio:   ratio,
			BaseQty: baseQty.Round(baseQtyScale),
			Note:    in.Note,
		})
	}
	return lines, nil
}
