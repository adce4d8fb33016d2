package repository

import (
	"context"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar saldos materializados.
// Usado dentro de transacciones para garantizar consistencia con el log de movimientos.
type StockRepository interface {
	// Get devuelve el saldo de la clave; si no existe fila devuelve cantidad 0.
	Get(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error)
	// ListByWarehouse devuelve todas las filas de un producto en una bodega (todas las ubicaciones).
	ListByWarehouse(ctx context.Context, productID, warehouseID string) ([]*entity.StockBalance, error)
	// ListByProduct devuelve todas las filas de un producto en todas las bodegas.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error)
	// Add suma change al saldo creando la fila si no existe. Devuelve la cantidad resultante.
	Add(ctx context.Context, key entity.BalanceKey, change int64) (int64, error)
	// AddIfSufficient suma change solo si el resultado es >= 0 (decremento condicional atómico).
	// ok=false indica que no se escribió; qty es entonces el saldo vigente.
	AddIfSufficient(ctx context.Context, key entity.BalanceKey, change int64) (qty int64, ok bool, err error)
}
