package masterdata_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/masterdata"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func (r *fakeItemRepo) Create(item *entity.Item) error          { r.items[item.ID] = item; return nil }
func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) { return r.items[id], nil }
func (r *fakeItemRepo) GetByCode(code string) (*entity.Item, error) {
	for _, i := range r.items {
		if i.Code == code {
			return i, nil
		}
	}
	return nil, nil
}
func (r *fakeItemRepo) Update(item *entity.Item) error { r.items[item.ID] = item; return nil }
func (r *fakeItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, i)
	}
	return out, nil
}
func (r *fakeItemRepo) Delete(id string) error { delete(r.items, id); return nil }

func createReq() dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Code:     "A001",
		Name:     "Tornillo",
		BaseUnit: "Pcs",
		Conversions: []dto.UnitConversionDTO{
			{Name: "Caja", Ratio: decimal.NewFromInt(10), Operator: entity.ConversionOpMultiply},
			{Name: "Media", Ratio: decimal.NewFromInt(2), Operator: entity.ConversionOpDivide},
		},
	}
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestItemCreate_ConTablaDeConversiones(t *testing.T) {
	uc := masterdata.NewItemUseCase(newFakeItemRepo())

	resp, err := uc.Create(createReq())
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "A001", resp.Code)
	assert.Equal(t, "Pcs", resp.BaseUnit)
	require.Len(t, resp.Conversions, 2)
	assert.Equal(t, "Caja", resp.Conversions[0].Name)
}

func TestItemCreate_CodigoDuplicado(t *testing.T) {
	uc := masterdata.NewItemUseCase(newFakeItemRepo())
	_, err := uc.Create(createReq())
	require.NoError(t, err)

	_, err = uc.Create(createReq())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemCreate_ConversionesInvalidas(t *testing.T) {
	uc := masterdata.NewItemUseCase(newFakeItemRepo())

	cases := []struct {
		name       string
		conversion dto.UnitConversionDTO
	}{
		{"sin nombre", dto.UnitConversionDTO{Ratio: decimal.NewFromInt(10), Operator: "*"}},
		{"nombre igual a la unidad base", dto.UnitConversionDTO{Name: "Pcs", Ratio: decimal.NewFromInt(10), Operator: "*"}},
		{"ratio cero", dto.UnitConversionDTO{Name: "Caja", Ratio: decimal.Zero, Operator: "*"}},
		{"ratio negativo", dto.UnitConversionDTO{Name: "Caja", Ratio: decimal.NewFromInt(-1), Operator: "*"}},
		{"operador desconocido", dto.UnitConversionDTO{Name: "Caja", Ratio: decimal.NewFromInt(10), Operator: "^"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createReq()
			req.Conversions = []dto.UnitConversionDTO{tc.conversion}
			_, err := uc.Create(req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	t.Run("nombre duplicado", func(t *testing.T) {
		req := createReq()
		req.Conversions = []dto.UnitConversionDTO{
			{Name: "Caja", Ratio: decimal.NewFromInt(10), Operator: "*"},
			{Name: "Caja", Ratio: decimal.NewFromInt(20), Operator: "*"},
		}
		_, err := uc.Create(req)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestItemCreate_CamposRequeridos(t *testing.T) {
	uc := masterdata.NewItemUseCase(newFakeItemRepo())

	req := createReq()
	req.BaseUnit = ""
	_, err := uc.Create(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Update ────────────────────────────────────────────────────────────────────

func TestItemUpdate_ReemplazaConversiones(t *testing.T) {
	repo := newFakeItemRepo()
	uc := masterdata.NewItemUseCase(repo)
	created, err := uc.Create(createReq())
	require.NoError(t, err)

	newConversions := []dto.UnitConversionDTO{
		{Name: "Pallet", Ratio: decimal.NewFromInt(500), Operator: entity.ConversionOpMultiply},
	}
	resp, err := uc.Update(created.ID, dto.UpdateItemRequest{Conversions: &newConversions})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, resp.Conversions, 1)
	assert.Equal(t, "Pallet", resp.Conversions[0].Name)
	assert.Equal(t, "Pcs", resp.BaseUnit, "la unidad base no cambia en Update")
}

func TestItemUpdate_ParcialConservaElResto(t *testing.T) {
	uc := masterdata.NewItemUseCase(newFakeItemRepo())
	created, err := uc.Create(createReq())
	require.NoError(t, err)

	name := "Tornillo galvanizado"
	resp, err := uc.Update(created.ID, dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo galvanizado", resp.Name)
	assert.Len(t, resp.Conversions, 2, "las conversiones no enviadas se conservan")
}

func TestItemUpdate_NoExiste(t *testing.T) {
	uc := masterdata.NewItemUseCase(newFakeItemRepo())
	name := "x"
	resp, err := uc.Update("no-existe", dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, resp)
}
