package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain/authz"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// ReplenishmentUseCase genera la lista de reposición para una bodega (o global).
type ReplenishmentUseCase struct {
	tx   TxRunner
	refs *References
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(tx TxRunner, refs *References) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{tx: tx, refs: refs}
}

// GenerateReplenishmentList devuelve los productos bajo punto de reorden con la cantidad
// sugerida de pedido, ordenados por déficit.
// warehouseID puede ser vacío para considerar stock global.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(
	ctx context.Context,
	id entity.IdentityContext,
	warehouseID string,
) ([]dto.ReplenishmentSuggestionDTO, error) {
	if err := authz.CheckViewWarehouse(id, warehouseID); err != nil {
		return nil, err
	}
	if warehouseID != "" {
		if _, err := uc.refs.Warehouse(ctx, warehouseID); err != nil {
			return nil, err
		}
	}

	// 1. Productos con punto de reorden configurado
	products, err := uc.refs.Repository().ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Stock actual por producto (bodega o global)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	err = uc.tx.Run(ctx, func(repos TxRepos) error {
		for _, p := range products {
			if p.ReorderLevel <= 0 {
				continue
			}
			balances, err := repos.Stock.ListByProduct(ctx, p.ID)
			if err != nil {
				return err
			}
			var current int64
			for _, b := range balances {
				if warehouseID == "" || b.WarehouseID == warehouseID {
					current += b.Quantity
				}
			}
			if current >= p.ReorderLevel {
				continue
			}
			idealStock := p.ReorderLevel * 3 / 2
			suggested := idealStock - current
			if suggested < 0 {
				suggested = 0
			}
			suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
				ProductID:         p.ID,
				SKU:               p.SKU,
				ProductName:       p.Name,
				WarehouseID:       warehouseID,
				CurrentStock:      current,
				ReorderPoint:      p.ReorderLevel,
				IdealStock:        idealStock,
				SuggestedOrderQty: suggested,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Ordenar: mayor déficit primero; empate por SKU
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.ReorderPoint - a.CurrentStock
		defB := b.ReorderPoint - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.SKU < b.SKU
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
