package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// ReferenceHandler lecturas de bodegas, ubicaciones y productos (protegido).
type ReferenceHandler struct {
	warehouses *usecase.WarehouseUseCase
	products   *usecase.ProductUseCase
	log        *logger.Logger
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(warehouses *usecase.WarehouseUseCase, products *usecase.ProductUseCase, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{warehouses: warehouses, products: products, log: log}
}

// ListWarehouses godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WarehouseListResponse
// @Router       /api/warehouses [get]
func (h *ReferenceHandler) ListWarehouses(c *fiber.Ctx) error {
	out, err := h.warehouses.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetWarehouse godoc
// @Summary      Obtener bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *ReferenceHandler) GetWarehouse(c *fiber.Ctx) error {
	out, err := h.warehouses.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// ListLocations godoc
// @Summary      Ubicaciones de una bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la bodega"
// @Success      200  {array}   dto.LocationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/locations [get]
func (h *ReferenceHandler) ListLocations(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.warehouses.Locations(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "máximo 500"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200     {object}  dto.ProductListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ReferenceHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.products.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ReferenceHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
