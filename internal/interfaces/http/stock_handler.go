package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stockquery"
)

// StockHandler maneja las consultas de stock (protegido). Lecturas sin
// bloqueo: aptas para tableros, no para decisiones de suficiencia.
type StockHandler struct {
	uc *stockquery.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stockquery.StockQueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Stock de un ítem en una bodega (o listado completo)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  false  "junto con warehouse_id devuelve una sola cantidad"
// @Param        warehouse_id  query  string  false  ""
// @Success      200  {object}  dto.StockQtyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	warehouseID := c.Query("warehouse_id")
	if itemID == "" && warehouseID == "" {
		return h.list(c)
	}
	if itemID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "item_id y warehouse_id van juntos (o ninguno, para el listado)",
		})
	}
	qty, err := h.uc.GetQty(c.Context(), itemID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockQtyResponse{ItemID: itemID, WarehouseID: warehouseID, Quantity: qty})
}

func (h *StockHandler) list(c *fiber.Ctx) error {
	levels, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, s := range levels {
		out = append(out, dto.StockLevelResponse{
			ItemID:        s.ItemID,
			ItemCode:      s.ItemCode,
			ItemName:      s.ItemName,
			BaseUnit:      s.BaseUnit,
			WarehouseID:   s.WarehouseID,
			WarehouseName: s.WarehouseName,
			Quantity:      s.Quantity,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "stocks": out})
}
