package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
)

// RequireWarehouseScope verifica que la bodega del parámetro de ruta esté en el alcance del
// actor antes de llegar al handler. ADMIN pasa siempre. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay identidad en el contexto.
//   - 400 Bad Request  → el parámetro viene vacío.
//   - 403 Forbidden    → la bodega no está asignada al actor.
func RequireWarehouseScope(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "identidad no encontrada en el token",
			})
		}
		warehouseID := c.Params(param)
		if warehouseID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: param + " requerido",
			})
		}
		if !ident.IsAdmin() && !ident.HasWarehouse(warehouseID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "la bodega '" + warehouseID + "' no está asignada al usuario",
			})
		}
		return c.Next()
	}
}
