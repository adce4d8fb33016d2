package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/fulfillment"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// RequisitionHandler maneja las requisiciones entre bodegas (protegido).
type RequisitionHandler struct {
	uc      *fulfillment.RequisitionUseCase
	hydrate *dto.Hydrator
	log     *logger.Logger
}

// NewRequisitionHandler construye el handler.
func NewRequisitionHandler(uc *fulfillment.RequisitionUseCase, hydrate *dto.Hydrator, log *logger.Logger) *RequisitionHandler {
	return &RequisitionHandler{uc: uc, hydrate: hydrate, log: log}
}

// Create godoc
// @Summary      Crear requisición
// @Description  Queda SUBMITTED salvo que draft=true.
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateRequisitionRequest  true  "bodega solicitante y líneas"
// @Success      201   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.CreateRequisitionRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	r, err := h.uc.CreateRequisition(c.UserContext(), ident, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusCreated, r)
}

// Submit godoc
// @Summary      Enviar requisición en borrador
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/submit [post]
func (h *RequisitionHandler) Submit(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	r, err := h.uc.SubmitRequisition(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, r)
}

// Approve godoc
// @Summary      Aprobar requisición y generar la entrega
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "ID de la requisición"
// @Param        body  body      dto.ApproveRequisitionRequest  true  "bodega origen final"
// @Success      200   {object}  dto.ApprovalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/approve [post]
func (h *RequisitionHandler) Approve(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.ApproveRequisitionRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	res, err := h.uc.ApproveRequisition(c.UserContext(), ident, c.Params("id"), in.FinalSourceWarehouseID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	req, err := h.hydrate.Requisition(c.UserContext(), res.Requisition)
	if err != nil {
		return writeError(c, h.log, err)
	}
	del, err := h.hydrate.Delivery(c.UserContext(), res.Delivery)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.ApprovalResponse{Requisition: *req, Delivery: *del})
}

// Reject godoc
// @Summary      Rechazar requisición
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true   "ID de la requisición"
// @Param        body  body      dto.ReasonRequest  false  "motivo"
// @Success      200   {object}  dto.RequisitionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/reject [post]
func (h *RequisitionHandler) Reject(c *fiber.Ctx) error {
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
	r, err := h.uc.RejectRequisition(c.UserContext(), ident, c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, r)
}

// Suggestions godoc
// @Summary      Sugerir bodegas origen para una requisición
// @Description  Consultivo: ordena por líneas cubiertas completas, luego cantidad cubierta, luego código.
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la requisición"
// @Success      200  {array}   dto.SourceSuggestionDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/source-suggestions [get]
func (h *RequisitionHandler) Suggestions(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.uc.SuggestSourceWarehouses(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// GetByID godoc
// @Summary      Obtener requisición
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [get]
func (h *RequisitionHandler) GetByID(c *fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	r, err := h.uc.GetRequisition(c.UserContext(), ident, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.respond(c, fiber.StatusOK, r)
}

func (h *RequisitionHandler) respond(c *fiber.Ctx, status int, r *entity.Requisition) error {
	out, err := h.hydrate.Requisition(c.UserContext(), r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(status).JSON(out)
}
