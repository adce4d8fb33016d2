package inventory

import (
	"context"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/authz"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

// StockUseCase consultas sobre el libro de stock (saldos, disponibilidad, historial, conciliación).
type StockUseCase struct {
	tx   TxRunner
	refs *References
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(tx TxRunner, refs *References) *StockUseCase {
	return &StockUseCase{tx: tx, refs: refs}
}

// QueryStockBalance cantidad actual en (producto, bodega, ubicación); 0 si no hay fila.
func (uc *StockUseCase) QueryStockBalance(ctx context.Context, id entity.IdentityContext, productID, warehouseID, locationID string) (int64, error) {
	if err := authz.CheckViewWarehouse(id, warehouseID); err != nil {
		return 0, err
	}
	var qty int64
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		var err error
		qty, err = LedgerFor(repos).QueryBalance(ctx, entity.BalanceKey{ProductID: productID, WarehouseID: warehouseID, LocationID: locationID})
		return err
	})
	return qty, err
}

// QueryAvailability saldo exacto de la clave más el total de la bodega, cada uno evaluado
// contra la cantidad requerida.
func (uc *StockUseCase) QueryAvailability(ctx context.Context, id entity.IdentityContext, q dto.BalanceQuery) (*dto.BalanceResponse, error) {
	if err := authz.CheckViewWarehouse(id, q.WarehouseID); err != nil {
		return nil, err
	}
	if q.ProductID == "" || q.WarehouseID == "" {
		return nil, domain.Invalid("product_id y warehouse_id son requeridos")
	}
	out := &dto.BalanceResponse{
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		LocationID:  q.LocationID,
		Required:    q.Required,
	}
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		ledger := LedgerFor(repos)
		exact, err := ledger.QueryAvailability(ctx, entity.BalanceKey{ProductID: q.ProductID, WarehouseID: q.WarehouseID, LocationID: q.LocationID}, q.Required)
		if err != nil {
			return err
		}
		total, err := ledger.QueryWarehouseAvailability(ctx, q.ProductID, q.WarehouseID, q.Required)
		if err != nil {
			return err
		}
		out.Quantity = exact.AvailableQuantity
		out.Available = exact.Available
		out.WarehouseQuantity = total.AvailableQuantity
		out.AvailableAtWarehouse = total.Available
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovements historial de movimientos. Sin bodega, solo ADMIN/MANAGER.
func (uc *StockUseCase) ListMovements(ctx context.Context, id entity.IdentityContext, q dto.MovementQuery) ([]*entity.StockMovement, error) {
	if err := authz.CheckViewWarehouse(id, q.WarehouseID); err != nil {
		return nil, err
	}
	q.DefaultPage()
	var list []*entity.StockMovement
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		var err error
		list, err = repos.Movements.List(ctx, repository.MovementFilter{
			ProductID:     q.ProductID,
			WarehouseID:   q.WarehouseID,
			SourceDocType: q.SourceDocType,
			SourceDocID:   q.SourceDocID,
			Limit:         q.Limit,
			Offset:        q.Offset,
		})
		return err
	})
	return list, err
}

// ReconcileBalance compara el saldo materializado con la suma de movimientos de la clave.
func (uc *StockUseCase) ReconcileBalance(ctx context.Context, id entity.IdentityContext, key entity.BalanceKey) (*dto.ReconciliationResponse, error) {
	if err := authz.CheckViewWarehouse(id, key.WarehouseID); err != nil {
		return nil, err
	}
	out := &dto.ReconciliationResponse{ProductID: key.ProductID, WarehouseID: key.WarehouseID, LocationID: key.LocationID}
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		balance, err := LedgerFor(repos).QueryBalance(ctx, key)
		if err != nil {
			return err
		}
		sum, err := repos.Movements.SumByKey(ctx, key)
		if err != nil {
			return err
		}
		out.Balance = balance
		out.MovementSum = sum
		out.Consistent = balance == sum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
