package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// ReceiptHandler maneja las recepciones de proveedor (protegido).
type ReceiptHandler struct {
	uc      *inventory.ReceiptUseCase
	hydrate *dto.Hydrator
	log     *logger.Logger
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *inventory.ReceiptUseCase, hydrate *dto.Hydrator, log *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, hydrate: hydrate, log: log}
}

// Create godoc
// @Summary      Crear recepción
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateReceiptRequest  true  "bodega, proveedor y líneas"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.CreateReceiptRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	r, err := h.uc.CreateReceipt(c.UserContext(), ident, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusCreated, r)
}

// Validate godoc
// @Summary      Validar recepción (ingresa el stock)
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/validate [post]
func (h *ReceiptHandler) Validate(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	r, err := h.uc.ValidateReceipt(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, r)
}

// GetByID godoc
// @Summary      Obtener recepción
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	r, err := h.uc.GetReceipt(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, r)
}

func (h *ReceiptHandler) respond(c *fiber.Ctx, status int, r *entity.Receipt) error {
	out, err := h.hydrate.Receipt(c.UserContext(), r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(status).JSON(out)
}
