package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/jwt"
)

// Locals keys para la identidad del actor en Fiber.
const (
	LocalIdentity = "identity"
	LocalUserID   = "user_id"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y deja el contexto de identidad en c.Locals.
// Un rol desconocido se trata como token sin rol: RequireRole responde MISSING_ROLE.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		role := strings.ToUpper(claims.Role)
		if !entity.ValidRole(role) {
			role = ""
		}
		ident := entity.NewIdentityContext(claims.UserID, role, claims.WarehouseID, claims.WarehouseIDs...)
		c.Locals(LocalIdentity, ident)
		c.Locals(LocalUserID, ident.UserID)
		c.Locals(LocalRole, ident.Role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Sin roles, basta con estar autenticado.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE → el token no trae un rol reconocido.
//   - 403 FORBIDDEN    → el rol no está entre los permitidos.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene un rol válido"})
		}
		if len(roles) == 0 {
			return c.Next()
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetIdentity devuelve el contexto de identidad (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) (entity.IdentityContext, bool) {
	ident, ok := c.Locals(LocalIdentity).(entity.IdentityContext)
	return ident, ok
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
