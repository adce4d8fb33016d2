package entity

// Roles válidos en el contexto de identidad.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleOperator = "OPERATOR"
)

// IdentityContext es la identidad del actor que ejecuta una operación.
// La provee el colaborador de autenticación en cada llamada; no hay sesión global.
type IdentityContext struct {
	UserID             string
	Role               string
	WarehouseID        string              // bodega principal (puede ser vacía para ADMIN)
	ActiveWarehouseIDs map[string]struct{} // principal ∪ asignadas
}

// NewIdentityContext construye el contexto. primary se incluye en el conjunto de bodegas activas.
func NewIdentityContext(userID, role, primary string, assigned ...string) IdentityContext {
	set := make(map[string]struct{}, len(assigned)+1)
	if primary != "" {
		set[primary] = struct{}{}
	}
	for _, w := range assigned {
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return IdentityContext{UserID: userID, Role: role, WarehouseID: primary, ActiveWarehouseIDs: set}
}

// HasWarehouse informa si la bodega está en el alcance del actor.
func (c IdentityContext) HasWarehouse(warehouseID string) bool {
	if warehouseID == "" {
		return false
	}
	_, ok := c.ActiveWarehouseIDs[warehouseID]
	return ok
}

// IsAdmin atajo para el rol ADMIN.
func (c IdentityContext) IsAdmin() bool { return c.Role == RoleAdmin }

// WarehouseIDs devuelve las bodegas activas (sin orden garantizado).
func (c IdentityContext) WarehouseIDs() []string {
	out := make([]string, 0, len(c.ActiveWarehouseIDs))
	for w := range c.ActiveWarehouseIDs {
		out = append(out, w)
	}
	return out
}

// ValidRole informa si el rol es uno de los soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleOperator:
		return true
	}
	return false
}
