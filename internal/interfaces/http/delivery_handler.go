package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/fulfillment"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// DeliveryHandler maneja las entregas (protegido).
type DeliveryHandler struct {
	uc      *fulfillment.DeliveryUseCase
	hydrate *dto.Hydrator
	log     *logger.Logger
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *fulfillment.DeliveryUseCase, hydrate *dto.Hydrator, log *logger.Logger) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, hydrate: hydrate, log: log}
}

// Create godoc
// @Summary      Crear entrega
// @Description  Sin target_warehouse_id queda en DRAFT; con destino queda WAITING hasta que el manager destino apruebe.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateDeliveryRequest  true  "bodega origen, destino opcional y líneas"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.CreateDeliveryRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	d, err := h.uc.CreateDelivery(c.UserContext(), ident, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusCreated, d)
}

// Approve godoc
// @Summary      Aprobar entrega (manager de la bodega destino)
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/approve [post]
func (h *DeliveryHandler) Approve(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	d, err := h.uc.ApproveDelivery(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, d)
}

// Reject godoc
// @Summary      Rechazar entrega (manager de la bodega destino)
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true   "ID de la entrega"
// @Param        body  body      dto.ReasonRequest  false  "motivo"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/reject [post]
func (h *DeliveryHandler) Reject(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.ReasonRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &in); err != nil {
			return writeError(c, h.log, err)
		}
	}
	d, err := h.uc.RejectDelivery(c.UserContext(), ident, c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, d)
}

// Validate godoc
// @Summary      Validar entrega (descuenta el stock)
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "WRONG_STATUS o INSUFFICIENT_STOCK con faltantes"
// @Router       /api/deliveries/{id}/validate [post]
func (h *DeliveryHandler) Validate(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	d, err := h.uc.ValidateDelivery(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, d)
}

// GetByID godoc
// @Summary      Obtener entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	d, err := h.uc.GetDelivery(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, d)
}

func (h *DeliveryHandler) respond(c *fiber.Ctx, status int, d *entity.Delivery) error {
	out, err := h.hydrate.Delivery(c.UserContext(), d)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(status).JSON(out)
}
