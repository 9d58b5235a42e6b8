package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// LedgerHandler maneja las peticiones HTTP del ledger de transacciones (protegido).
type LedgerHandler struct {
	uc *ledger.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Submit godoc
// @Summary      Registrar transacción de inventario
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitTransactionRequest  true  "type, source_warehouse_id (y target en TRANSFER), lines"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions [post]
func (h *LedgerHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input, err := toTransactionInput(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	id, err := h.uc.Submit(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Edit godoc
// @Summary      Editar transacción (revierte efectos viejos y aplica los nuevos)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transacción"
// @Param        body  body  dto.SubmitTransactionRequest  true  "encabezado y líneas nuevos; el tipo no se puede cambiar"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions/{id} [put]
func (h *LedgerHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.SubmitTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input, err := toTransactionInput(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.Edit(c.Context(), id, input); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": id})
}

// Remove godoc
// @Summary      Eliminar transacción (revierte sus efectos de stock)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions/{id} [delete]
func (h *LedgerHandler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Remove(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": id})
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions/{id} [get]
func (h *LedgerHandler) GetByID(c *fiber.Ctx) error {
	tx, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(tx))
}

// List godoc
// @Summary      Listar transacciones
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Param        warehouse_id  query  string  false  "bodega origen o destino"
// @Param        type          query  string  false  "IN, OUT, TRANSFER o ADJUSTMENT"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/ledger/transactions [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("type"),
	}
	if s := c.Query("date_from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from inválida"})
		}
		filter.DateFrom = &t
	}
	if s := c.Query("date_to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to inválida"})
		}
		filter.DateTo = &t
	}
	list, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, toTransactionResponse(tx))
	}
	return c.JSON(fiber.Map{"total": len(out), "transactions": out})
}

// Import godoc
// @Summary      Importación masiva de transacciones
// @Description  Cada transacción corre en su propia unidad de trabajo; las
//               unidades de medida desconocidas se toman con ratio 1 (política
//               tolerante solo de este camino).
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportTransactionsRequest  true  "lote de transacciones"
// @Success      200   {array}  dto.ImportRowResult
// @Router       /api/ledger/transactions/import [post]
func (h *LedgerHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportTransactionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inputs := make([]ledger.TransactionInput, 0, len(in.Transactions))
	for i, req := range in.Transactions {
		input, err := toTransactionInput(req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: fmt.Sprintf("fila %d: %s", i, err.Error()),
			})
		}
		inputs = append(inputs, input)
	}
	results := h.uc.Import(c.Context(), inputs)
	out := make([]dto.ImportRowResult, 0, len(results))
	imported := 0
	for _, res := range results {
		row := dto.ImportRowResult{Index: res.Index, ID: res.ID}
		if res.Err != nil {
			row.Error = res.Err.Error()
		} else {
			imported++
		}
		out = append(out, row)
	}
	return c.JSON(fiber.Map{"imported": imported, "results": out})
}

func toTransactionInput(in dto.SubmitTransactionRequest) (ledger.TransactionInput, error) {
	input := ledger.TransactionInput{
		Reference:         in.Reference,
		DeliveryOrder:     in.DeliveryOrder,
		PartnerRef:        in.PartnerRef,
		Type:              in.Type,
		SourceWarehouseID: in.SourceWarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Notes:             in.Notes,
	}
	if in.Date != "" {
		date, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return ledger.TransactionInput{}, fmt.Errorf("fecha inválida %q (esperado YYYY-MM-DD)", in.Date)
		}
		input.Date = date
	}
	for _, line := range in.Lines {
		input.Lines = append(input.Lines, ledger.LineInput{
			ItemID: line.ItemID,
			Qty:    line.Qty,
			Unit:   line.Unit,
			Note:   line.Note,
		})
	}
	return input, nil
}

func toTransactionResponse(tx *entity.Transaction) *dto.TransactionResponse {
	lines := make([]dto.TransactionLineResponse, 0, len(tx.Lines))
	for _, l := range tx.Lines {
		lines = append(lines, dto.TransactionLineResponse{
			ID:       l.ID,
			ItemID:   l.ItemID,
			ItemCode: l.ItemCode,
			ItemName: l.ItemName,
			Qty:      l.Qty,
			Unit:     l.Unit,
			Ratio:    l.Ratio,
			BaseQty:  l.BaseQty,
			Note:     l.Note,
		})
	}
	return &dto.TransactionResponse{
		ID:                tx.ID,
		Date:              tx.Date.Format(dateLayout),
		Reference:         tx.Reference,
		DeliveryOrder:     tx.DeliveryOrder,
		PartnerRef:        tx.PartnerRef,
		Type:              tx.Type,
		SourceWarehouseID: tx.SourceWarehouseID,
		TargetWarehouseID: tx.TargetWarehouseID,
		Notes:             tx.Notes,
		Lines:             lines,
		CreatedAt:         tx.CreatedAt,
	}
}
