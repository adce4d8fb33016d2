package fulfillment

import (
	"context"
	"sort"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// SuggestSourceWarehouses ranking consultivo de bodegas origen para una requisición: primero
// las que cubren más líneas completas, luego mayor cantidad cubierta, luego por código.
// Se excluye la bodega solicitante y las que no cubren nada. Es una lectura sin bloqueo;
// puede quedar desactualizada sin afectar las transiciones.
func (uc *RequisitionUseCase) SuggestSourceWarehouses(ctx context.Context, id entity.IdentityContext, requisitionID string) ([]dto.SourceSuggestionDTO, error) {
	req, err := uc.GetRequisition(ctx, id, requisitionID)
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.refs.Repository().ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}

	// Cantidad pedida por producto (varias líneas del mismo producto se suman)
	needed := make(map[string]int64)
	order := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		if _, ok := needed[l.ProductID]; !ok {
			order = append(order, l.ProductID)
		}
		needed[l.ProductID] += l.QuantityRequested
	}

	out := make([]dto.SourceSuggestionDTO, 0, len(warehouses))
	err = uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		ledger := inventory.LedgerFor(repos)
		for _, w := range warehouses {
			if w.ID == req.RequestingWarehouseID {
				continue
			}
			s := dto.SourceSuggestionDTO{
				WarehouseID:   w.ID,
				WarehouseCode: w.Code,
				WarehouseName: w.Name,
				TotalLines:    len(order),
			}
			for _, productID := range order {
				qty := needed[productID]
				av, err := ledger.QueryWarehouseAvailability(ctx, productID, w.ID, qty)
				if err != nil {
					return err
				}
				if av.Available {
					s.LinesCovered++
					s.CoveredQty += qty
				} else {
					s.CoveredQty += av.AvailableQuantity
				}
			}
			if s.CoveredQty == 0 {
				continue
			}
			s.FullyAvailable = s.LinesCovered == s.TotalLines
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.LinesCovered != b.LinesCovered {
			return a.LinesCovered > b.LinesCovered
		}
		if a.CoveredQty != b.CoveredQty {
			return a.CoveredQty > b.CoveredQty
		}
		return a.WarehouseCode < b.WarehouseCode
	})
	return out, nil
}
