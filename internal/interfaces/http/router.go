package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/fulfillment"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReceiptUC       *inventory.ReceiptUseCase
	AdjustmentUC    *inventory.AdjustmentUseCase
	StockUC         *inventory.StockUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DeliveryUC      *fulfillment.DeliveryUseCase
	TransferUC      *fulfillment.TransferUseCase
	RequisitionUC   *fulfillment.RequisitionUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	ProductUC       *usecase.ProductUseCase
	Hydrator        *dto.Hydrator
	Log             *logger.Logger
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token con rol válido)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole())

	admin, manager, operator := entity.RoleAdmin, entity.RoleManager, entity.RoleOperator

	// Datos maestros (solo lectura)
	refs := NewReferenceHandler(deps.WarehouseUC, deps.ProductUC, log)
	warehouses := protected.Group("/warehouses")
	warehouses.Get("/", refs.ListWarehouses)
	warehouses.Get("/:id", refs.GetWarehouse)
	warehouses.Get("/:id/locations", RequireWarehouseScope("id"), refs.ListLocations)
	products := protected.Group("/products")
	products.Get("/", refs.ListProducts)
	products.Get("/:id", refs.GetProduct)

	// Recepciones
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.Hydrator, log)
	receipts := protected.Group("/receipts")
	receipts.Post("/", RequireRole(admin, operator), receiptHandler.Create)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Post("/:id/validate", RequireRole(admin, operator), receiptHandler.Validate)

	// Entregas
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.Hydrator, log)
	deliveries := protected.Group("/deliveries")
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Post("/:id/approve", RequireRole(manager), deliveryHandler.Approve)
	deliveries.Post("/:id/reject", RequireRole(manager), deliveryHandler.Reject)
	deliveries.Post("/:id/validate", RequireRole(admin, operator), deliveryHandler.Validate)

	// Traslados
	transferHandler := NewTransferHandler(deps.TransferUC, deps.Hydrator, log)
	transfers := protected.Group("/transfers")
	transfers.Post("/", RequireRole(admin, operator), transferHandler.Create)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/dispatch", RequireRole(admin, operator), transferHandler.Dispatch)
	transfers.Post("/:id/accept", RequireRole(admin, operator), transferHandler.Accept)

	// Requisiciones
	requisitionHandler := NewRequisitionHandler(deps.RequisitionUC, deps.Hydrator, log)
	requisitions := protected.Group("/requisitions")
	requisitions.Post("/", RequireRole(operator), requisitionHandler.Create)
	requisitions.Get("/:id", requisitionHandler.GetByID)
	requisitions.Get("/:id/source-suggestions", requisitionHandler.Suggestions)
	requisitions.Post("/:id/submit", RequireRole(operator), requisitionHandler.Submit)
	requisitions.Post("/:id/approve", RequireRole(manager), requisitionHandler.Approve)
	requisitions.Post("/:id/reject", RequireRole(manager), requisitionHandler.Reject)

	// Libro de stock
	stockHandler := NewStockHandler(deps.StockUC, deps.AdjustmentUC, deps.ReplenishmentUC, log)
	stock := protected.Group("/stock")
	stock.Get("/balance", stockHandler.Balance)
	stock.Get("/movements", stockHandler.Movements)
	stock.Get("/reconcile", stockHandler.Reconcile)
	stock.Get("/replenishment", stockHandler.Replenishment)
	stock.Post("/adjustments", stockHandler.Adjust)
}
