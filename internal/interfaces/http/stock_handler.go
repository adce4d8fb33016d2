package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// StockHandler consultas del libro de stock, ajustes y reposición (protegido).
type StockHandler struct {
	stock         *inventory.StockUseCase
	adjustments   *inventory.AdjustmentUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockUseCase, adjustments *inventory.AdjustmentUseCase, replenishment *inventory.ReplenishmentUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{stock: stock, adjustments: adjustments, replenishment: replenishment, log: log}
}

// Balance godoc
// @Summary      Saldo y disponibilidad de un producto
// @Description  quantity es el saldo exacto de la clave; warehouse_quantity suma todas las ubicaciones.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query     string  true   "ID del producto"
// @Param        warehouse_id  query     string  true   "ID de la bodega"
// @Param        location_id   query     string  false  "ID de la ubicación"
// @Param        required      query     int     false  "cantidad requerida"
// @Success      200           {object}  dto.BalanceResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      403           {object}  dto.ErrorResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var q dto.BalanceQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.stock.QueryAvailability(c.UserContext(), ident, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos
// @Description  Sin warehouse_id solo ADMIN y MANAGER.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id       query     string  false  "ID del producto"
// @Param        warehouse_id     query     string  false  "ID de la bodega"
// @Param        source_doc_type  query     string  false  "RECEIPT, DELIVERY, TRANSFER, REQUISITION o ADJUSTMENT"
// @Param        source_doc_id    query     string  false  "ID del documento origen"
// @Param        limit            query     int     false  "máximo 500"
// @Param        offset           query     int     false  "desplazamiento"
// @Success      200              {object}  dto.MovementListResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Failure      403              {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var q dto.MovementQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, h.log, err)
	}
	q.DefaultPage()
	list, err := h.stock.ListMovements(c.UserContext(), ident, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m))
	}
	return c.Status(fiber.StatusOK).JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	})
}

// Reconcile godoc
// @Summary      Conciliar saldo contra la suma de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query     string  true   "ID del producto"
// @Param        warehouse_id  query     string  true   "ID de la bodega"
// @Param        location_id   query     string  false  "ID de la ubicación"
// @Success      200           {object}  dto.ReconciliationResponse
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      403           {object}  dto.ErrorResponse
// @Router       /api/stock/reconcile [get]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var q dto.BalanceQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.stock.ReconcileBalance(c.UserContext(), ident, entity.BalanceKey{
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		LocationID:  q.LocationID,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Adjust godoc
// @Summary      Ajustar saldo a una cantidad absoluta
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AdjustmentRequest  true  "producto, bodega, ubicación, cantidad nueva y motivo"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.AdjustmentRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	res, err := h.adjustments.ApplyAdjustment(c.UserContext(), ident, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAdjustmentResponse(res.Adjustment, res.Movement))
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos bajo su punto de reorden. Sin warehouse_id considera el stock global.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query     string  false  "ID de la bodega"
// @Success      200           {array}   dto.ReplenishmentSuggestionDTO
// @Failure      403           {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment [get]
func (h *StockHandler) Replenishment(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), ident, c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(list)
}
