package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/masterdata"
	"github.com/jhoicas/almacen-api/internal/application/stockquery"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *masterdata.ItemUseCase
	WarehouseUC *masterdata.WarehouseUseCase
	LedgerUC    *ledger.LedgerUseCase
	StockUC     *stockquery.StockQueryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; la
// emisión de tokens vive fuera de este servicio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Maestro de ítems
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)

	// Bodegas
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	// Ledger de transacciones
	ledgerGroup := api.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgerGroup.Post("/transactions", ledgerHandler.Submit)
	ledgerGroup.Get("/transactions", ledgerHandler.List)
	ledgerGroup.Post("/transactions/import", ledgerHandler.Import)
	ledgerGroup.Get("/transactions/:id", ledgerHandler.GetByID)
	ledgerGroup.Put("/transactions/:id", ledgerHandler.Edit)
	ledgerGroup.Delete("/transactions/:id", ledgerHandler.Remove)

	// Consultas de stock
	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/stock", stockHandler.Get)
}
