package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/fulfillment"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// TransferHandler maneja los traslados entre bodegas (protegido).
type TransferHandler struct {
	uc      *fulfillment.TransferUseCase
	hydrate *dto.Hydrator
	log     *logger.Logger
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *fulfillment.TransferUseCase, hydrate *dto.Hydrator, log *logger.Logger) *TransferHandler {
	return &TransferHandler{uc: uc, hydrate: hydrate, log: log}
}

// Create godoc
// @Summary      Crear traslado
// @Description  Con delivery_id el traslado se arma desde la entrega aprobada (solo operador de la bodega origen).
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTransferRequest  true  "origen, destino y líneas, o delivery_id"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.CreateTransferRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	t, err := h.uc.CreateTransfer(c.UserContext(), ident, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusCreated, t)
}

// Dispatch godoc
// @Summary      Despachar traslado (descuenta stock en origen)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "WRONG_STATUS o INSUFFICIENT_STOCK con faltantes"
// @Router       /api/transfers/{id}/dispatch [post]
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	t, err := h.uc.DispatchTransfer(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, t)
}

// Accept godoc
// @Summary      Aceptar traslado (ingresa stock en destino)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/accept [post]
func (h *TransferHandler) Accept(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	t, err := h.uc.AcceptTransfer(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, t)
}

// GetByID godoc
// @Summary      Obtener traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	t, err := h.uc.GetTransfer(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, t)
}

func (h *TransferHandler) respond(c *fiber.Ctx, status int, t *entity.Transfer) error {
	out, err := h.hydrate.Transfer(c.UserContext(), t)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(status).JSON(out)
}
