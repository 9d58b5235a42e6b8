package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del maestro de ítems sobre PostgreSQL
// (items + item_units para la tabla de conversiones).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste el ítem y sus conversiones.
func (r *ItemRepo) Create(item *entity.Item) error {
	ctx := context.Background()
	query := `
		INSERT INTO items (id, code, name, category, base_unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Code, item.Name, item.Category, item.BaseUnit,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return r.insertConversions(ctx, item)
}

// GetByID obtiene un ítem con sus conversiones ordenadas. Nil si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByCode obtiene un ítem por código. Nil si no existe.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	return r.getOne(`WHERE code = $1`, code)
}

func (r *ItemRepo) getOne(where string, arg any) (*entity.Item, error) {
	ctx := context.Background()
	query := `
		SELECT id, code, name, category, base_unit, created_at, updated_at
		FROM items ` + where
	var i entity.Item
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&i.ID, &i.Code, &i.Name, &i.Category, &i.BaseUnit, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := r.loadConversions(ctx, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// Update actualiza el ítem y reemplaza su tabla de conversiones.
// No afecta los ratios ya congelados en líneas de transacciones confirmadas.
func (r *ItemRepo) Update(item *entity.Item) error {
	ctx := context.Background()
	query := `
		UPDATE items SET name = $2, category = $3, updated_at = $4
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, item.ID, item.Name, item.Category, item.UpdatedAt); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM item_units WHERE item_id = $1`, item.ID); err != nil {
		return fmt.Errorf("delete item units: %w", err)
	}
	return r.insertConversions(ctx, item)
}

// List lista ítems con paginación, conversiones incluidas.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	ctx := context.Background()
	query := `
		SELECT id, code, name, category, base_unit, created_at, updated_at
		FROM items ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.Code, &i.Name, &i.Category, &i.BaseUnit, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, item := range list {
		if err := r.loadConversions(ctx, item); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Delete elimina un ítem y sus conversiones.
func (r *ItemRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM item_units WHERE item_id = $1`, id); err != nil {
		return fmt.Errorf("delete item units: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) insertConversions(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO item_units (item_id, position, name, ratio, operator)
		VALUES ($1, $2, $3, $4, $5)`
	for pos, c := range item.Conversions {
		if _, err := r.q.Exec(ctx, query, item.ID, pos, c.Name, c.Ratio, c.Operator); err != nil {
			return fmt.Errorf("insert item unit %q: %w", c.Name, err)
		}
	}
	return nil
}

func (r *ItemRepo) loadConversions(ctx context.Context, item *entity.Item) error {
	query := `
		SELECT name, ratio, operator FROM item_units
		WHERE item_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, item.ID)
	if err != nil {
		return fmt.Errorf("load item units: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.UnitConversion
		if err := rows.Scan(&c.Name, &c.Ratio, &c.Operator); err != nil {
			return fmt.Errorf("scan item unit: %w", err)
		}
		item.Conversions = append(item.Conversions, c)
	}
	return rows.Err()
}
