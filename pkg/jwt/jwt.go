package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad del actor: rol y bodegas en alcance.
// El middleware construye el contexto de identidad solo con estos datos, sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string   `json:"user_id"`
	Role         string   `json:"role"`                    // ADMIN | MANAGER | OPERATOR
	WarehouseID  string   `json:"warehouse_id,omitempty"`  // bodega principal
	WarehouseIDs []string `json:"warehouse_ids,omitempty"` // bodegas asignadas adicionales
}

// Generate genera un token HS256 firmado con la identidad indicada.
func Generate(secret, issuer string, expMinutes int, userID, role, warehouseID string, warehouseIDs ...string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       userID,
		Role:         role,
		WarehouseID:  warehouseID,
		WarehouseIDs: warehouseIDs,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("claims inválidos: user_id vacío")
	}
	return claims, nil
}
