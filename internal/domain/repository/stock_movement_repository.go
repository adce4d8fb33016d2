package repository

import (
	"context"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	ProductID     string
	WarehouseID   string
	SourceDocType string
	SourceDocID   string
	Limit         int
	Offset        int
}

// StockMovementRepository define el puerto de persistencia del log append-only de movimientos.
// No hay operaciones de actualización ni borrado.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// SumByKey suma Change de todos los movimientos de la clave (verificación de conservación).
	SumByKey(ctx context.Context, key entity.BalanceKey) (int64, error)
}
