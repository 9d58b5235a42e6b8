package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del registro de transacciones sobre
// PostgreSQL (usable con pool o tx). Las mutaciones deben ejecutarse dentro
// de la unidad de trabajo del coordinador.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const txColumns = `id, date, reference, delivery_order, partner_ref, type,
	source_warehouse_id, target_warehouse_id, notes, created_at`

// Insert persiste encabezado y líneas.
func (r *TransactionRepo) Insert(tx *entity.Transaction) error {
	ctx := context.Background()
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.Date, tx.Reference, tx.DeliveryOrder, tx.PartnerRef, tx.Type,
		tx.SourceWarehouseID, nullIfEmpty(tx.TargetWarehouseID), tx.Notes, tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert transaction %s: duplicada: %w", tx.ID, err)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return r.insertLines(ctx, tx)
}

// Replace actualiza los campos del encabezado y reemplaza las líneas
// (delete + insert) dentro de la misma transacción de BD. El tipo y
// created_at no se tocan.
func (r *TransactionRepo) Replace(tx *entity.Transaction) error {
	ctx := context.Background()
	query := `
		UPDATE transactions
		SET date = $2, reference = $3, delivery_order = $4, partner_ref = $5,
			source_warehouse_id = $6, target_warehouse_id = $7, notes = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		tx.ID, tx.Date, tx.Reference, tx.DeliveryOrder, tx.PartnerRef,
		tx.SourceWarehouseID, nullIfEmpty(tx.TargetWarehouseID), tx.Notes,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update transaction %s: no existe", tx.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, tx.ID); err != nil {
		return fmt.Errorf("delete transaction lines: %w", err)
	}
	return r.insertLines(ctx, tx)
}

// Remove elimina líneas y encabezado (pareado, misma transacción de BD).
func (r *TransactionRepo) Remove(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction lines: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción con sus líneas. Devuelve nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene la transacción bloqueando el encabezado
// (SELECT FOR UPDATE) para serializar Update/Delete concurrentes del mismo id.
func (r *TransactionRepo) GetByIDForUpdate(id string) (*entity.Transaction, error) {
	return r.getByID(id, true)
}

func (r *TransactionRepo) getByID(id string, forUpdate bool) (*entity.Transaction, error) {
	ctx := context.Background()
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockNotAvailable(err) {
			return nil, fmt.Errorf("lock transaction %s: %w", id, domain.ErrLockTimeout)
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	lines, err := r.loadLines(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	tx.Lines = lines[id]
	return tx, nil
}

// List lista transacciones filtradas, ordenadas por fecha y created_at, con
// sus líneas cargadas en una segunda consulta.
func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	ctx := context.Background()
	query := `SELECT ` + txColumns + ` FROM transactions WHERE 1=1`
	var args []any
	pos := 1
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *filter.DateFrom)
		pos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *filter.DateTo)
		pos++
	}
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND (source_warehouse_id = $%d OR target_warehouse_id = $%d)", pos, pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	query += " ORDER BY date, created_at"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	var ids []string
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
		ids = append(ids, tx.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, tx := range list {
		tx.Lines = lines[tx.ID]
	}
	return list, nil
}

// insertLines persiste las líneas congelando unidad, ratio y cantidad base.
func (r *TransactionRepo) insertLines(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, line_no, item_id, qty, unit, ratio, base_qty, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range tx.Lines {
		line := &tx.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.TransactionID = tx.ID
		if line.LineNo == 0 {
			line.LineNo = i + 1
		}
		_, err := r.q.Exec(ctx, query,
			line.ID, line.TransactionID, line.LineNo, line.ItemID,
			line.Qty, line.Unit, line.Ratio, line.BaseQty, line.Note,
		)
		if err != nil {
			return fmt.Errorf("insert transaction line %d: %w", line.LineNo, err)
		}
	}
	return nil
}

// loadLines carga las líneas de un conjunto de transacciones con código y
// nombre de ítem resueltos por join, agrupadas por transacción.
func (r *TransactionRepo) loadLines(ctx context.Context, ids []string) (map[string][]entity.TransactionLine, error) {
	query := `
		SELECT t.id, t.transaction_id, t.line_no, t.item_id, i.code, i.name,
			t.qty, t.unit, t.ratio, t.base_qty, t.note
		FROM transaction_items t
		JOIN items i ON i.id = t.item_id
		WHERE t.transaction_id = ANY($1)
		ORDER BY t.transaction_id, t.line_no`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("load transaction lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.TransactionLine, len(ids))
	for rows.Next() {
		var l entity.TransactionLine
		if err := rows.Scan(&l.ID, &l.TransactionID, &l.LineNo, &l.ItemID, &l.ItemCode, &l.ItemName,
			&l.Qty, &l.Unit, &l.Ratio, &l.BaseQty, &l.Note); err != nil {
			return nil, fmt.Errorf("scan transaction line: %w", err)
		}
		out[l.TransactionID] = append(out[l.TransactionID], l)
	}
	return out, rows.Err()
}

// scanTransaction lee un encabezado desde una fila (pgx.Row o pgx.Rows).
func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var tx entity.Transaction
	var target *string
	err := row.Scan(
		&tx.ID, &tx.Date, &tx.Reference, &tx.DeliveryOrder, &tx.PartnerRef, &tx.Type,
		&tx.SourceWarehouseID, &target, &tx.Notes, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if target != nil {
		tx.TargetWarehouseID = *target
	}
	return &tx, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
