// Package masterdata implementa los datos maestros (ítems y bodegas) que el
// ledger consume como colaboradores: búsqueda de ítem con conversiones al
// momento de la captura y verificación de existencia de bodegas.
package masterdata

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD del maestro de ítems.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un ítem con su tabla de conversiones.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Code == "" || in.Name == "" || in.BaseUnit == "" {
		return nil, fmt.Errorf("%w: code, name y base_unit son requeridos", domain.ErrInvalidInput)
	}
	conversions, err := toConversions(in.BaseUnit, in.Conversions)
	if err != nil {
		return nil, err
	}
	if existing, err := uc.repo.GetByCode(in.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: código %s", domain.ErrDuplicate, in.Code)
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Category:    in.Category,
		BaseUnit:    in.BaseUnit,
		Conversions: conversions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza nombre, categoría y/o conversiones. Cambiar la tabla de
// conversiones no altera transacciones ya confirmadas: cada línea conserva
// el ratio congelado al commit.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Conversions != nil {
		conversions, err := toConversions(item.BaseUnit, *in.Conversions)
		if err != nil {
			return nil, err
		}
		item.Conversions = conversions
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista ítems con paginación.
func (uc *ItemUseCase) List(limit, offset int) ([]*dto.ItemResponse, error) {
	items, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// toConversions valida y convierte la tabla de conversiones de entrada:
// la unidad base no se lista, los nombres son únicos, ratio > 0 y el
// operador es "*" o "/".
func toConversions(baseUnit string, in []dto.UnitConversionDTO) ([]entity.UnitConversion, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]entity.UnitConversion, 0, len(in))
	for _, c := range in {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: conversión sin nombre", domain.ErrInvalidInput)
		}
		if c.Name == baseUnit {
			return nil, fmt.Errorf("%w: la unidad base %q no se lista como conversión", domain.ErrInvalidInput, baseUnit)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("%w: conversión %q duplicada", domain.ErrInvalidInput, c.Name)
		}
		seen[c.Name] = struct{}{}
		if !c.Ratio.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: conversión %q con ratio no positivo", domain.ErrInvalidInput, c.Name)
		}
		if c.Operator != entity.ConversionOpMultiply && c.Operator != entity.ConversionOpDivide {
			return nil, fmt.Errorf("%w: conversión %q con operador %q", domain.ErrInvalidInput, c.Name, c.Operator)
		}
		out = append(out, entity.UnitConversion{Name: c.Name, Ratio: c.Ratio, Operator: c.Operator})
	}
	return out, nil
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	conversions := make([]dto.UnitConversionDTO, 0, len(item.Conversions))
	for _, c := range item.Conversions {
		conversions = append(conversions, dto.UnitConversionDTO{Name: c.Name, Ratio: c.Ratio, Operator: c.Operator})
	}
	return &dto.ItemResponse{
		ID:          item.ID,
		Code:        item.Code,
		Name:        item.Name,
		Category:    item.Category,
		BaseUnit:    item.BaseUnit,
		Conversions: conversions,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
