package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var (
	_ repository.StockRepository         = (*stockRepo)(nil)
	_ repository.StockMovementRepository = (*movementRepo)(nil)
)

type stockRepo struct{ st *state }

func (r *stockRepo) Get(_ context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	if b, ok := r.st.balances[key]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.StockBalance{ProductID: key.ProductID, WarehouseID: key.WarehouseID, LocationID: key.LocationID}, nil
}

// GetForUpdate equivale a Get: la transacción ya tiene el almacén en exclusiva.
func (r *stockRepo) GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	return r.Get(ctx, key)
}

func (r *stockRepo) ListByWarehouse(_ context.Context, productID, warehouseID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for k, b := range r.st.balances {
		if k.ProductID == productID && k.WarehouseID == warehouseID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortBalances(out)
	return out, nil
}

func (r *stockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for k, b := range r.st.balances {
		if k.ProductID == productID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortBalances(out)
	return out, nil
}

func (r *stockRepo) Add(_ context.Context, key entity.BalanceKey, change int64) (int64, error) {
	b, ok := r.st.balances[key]
	if !ok {
		b = &entity.StockBalance{ProductID: key.ProductID, WarehouseID: key.WarehouseID, LocationID: key.LocationID}
		r.st.balances[key] = b
	}
	b.Quantity += change
	b.UpdatedAt = time.Now().UTC()
	return b.Quantity, nil
}

func (r *stockRepo) AddIfSufficient(ctx context.Context, key entity.BalanceKey, change int64) (int64, bool, error) {
	var current int64
	if b, ok := r.st.balances[key]; ok {
		current = b.Quantity
	}
	if current+change < 0 {
		return current, false, nil
	}
	qty, err := r.Add(ctx, key, change)
	return qty, true, err
}

func sortBalances(list []*entity.StockBalance) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].WarehouseID != list[j].WarehouseID {
			return list[i].WarehouseID < list[j].WarehouseID
		}
		return list[i].LocationID < list[j].LocationID
	})
}

type movementRepo struct{ st *state }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.st.movements = append(r.st.movements, &cp)
	return nil
}

// List devuelve los movimientos más recientes primero.
func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	skipped := 0
	for i := len(r.st.movements) - 1; i >= 0; i-- {
		m := r.st.movements[i]
		if (f.ProductID != "" && m.ProductID != f.ProductID) ||
			(f.WarehouseID != "" && m.WarehouseID != f.WarehouseID) ||
			(f.SourceDocType != "" && m.SourceDocType != f.SourceDocType) ||
			(f.SourceDocID != "" && m.SourceDocID != f.SourceDocID) {
			continue
		}
		if skipped < f.Offset {
			skipped++
			continue
		}
		cp := *m
		out = append(out, &cp)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *movementRepo) SumByKey(_ context.Context, key entity.BalanceKey) (int64, error) {
	var sum int64
	for _, m := range r.st.movements {
		if m.Key() == key {
			sum += m.Change
		}
	}
	return sum, nil
}
