package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia del maestro de ítems (DIP).
// Create/Update persisten también la tabla de conversiones del ítem.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	Update(item *entity.Item) error
	List(limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}
