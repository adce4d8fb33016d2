package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
	"github.com/jhoicas/stockflow/pkg/validator"
)

// fieldsError cuerpo que no pasó la validación de estructura; es un ErrInvalidInput.
type fieldsError struct {
	fields map[string]string
}

func (e *fieldsError) Error() string { return "cuerpo inválido" }

func (e *fieldsError) Unwrap() error { return domain.ErrInvalidInput }

// bindBody parsea el JSON del cuerpo y valida sus tags.
func bindBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo JSON inválido", domain.ErrInvalidInput)
	}
	if errs := validator.ValidateStruct(out); errs != nil {
		return &fieldsError{fields: validator.Fields(errs)}
	}
	return nil
}

// bindQuery parsea y valida los parámetros de consulta.
func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return fmt.Errorf("%w: parámetros de consulta inválidos", domain.ErrInvalidInput)
	}
	if errs := validator.ValidateStruct(out); errs != nil {
		return &fieldsError{fields: validator.Fields(errs)}
	}
	return nil
}

// identity devuelve el actor autenticado o ErrUnauthorized.
func identity(c *fiber.Ctx) (entity.IdentityContext, error) {
	ident, ok := GetIdentity(c)
	if !ok || ident.UserID == "" {
		return entity.IdentityContext{}, domain.ErrUnauthorized
	}
	return ident, nil
}

// writeError traduce la taxonomía de errores del dominio a la respuesta HTTP.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var fe *fieldsError
	switch {
	case errors.As(err, &fe):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: fe.Error(), Fields: fe.fields}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error(), Shortages: domain.ShortagesOf(err)}
	case errors.Is(err, domain.ErrAlreadyValidated):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_VALIDATED", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "WRONG_STATUS", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
	}
}
