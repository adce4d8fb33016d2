package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/authz"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// AdjustmentResult ajuste registrado y el movimiento aplicado (nil si el delta fue 0).
type AdjustmentResult struct {
	Adjustment *entity.Adjustment
	Movement   *entity.StockMovement
}

// AdjustmentUseCase corrige un saldo a una cantidad absoluta mediante un movimiento delta.
type AdjustmentUseCase struct {
	tx   TxRunner
	refs *References
	log  *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(tx TxRunner, refs *References, log *logger.Logger) *AdjustmentUseCase {
	return &AdjustmentUseCase{tx: tx, refs: refs, log: log.Component("adjustment")}
}

// ApplyAdjustment bloquea el saldo (SELECT FOR UPDATE), calcula delta = nueva − actual y
// registra un movimiento ADJUSTMENT si delta != 0. El ajuste se guarda siempre como auditoría.
func (uc *AdjustmentUseCase) ApplyAdjustment(ctx context.Context, id entity.IdentityContext, in dto.AdjustmentRequest) (*AdjustmentResult, error) {
	if err := authz.CheckApplyAdjustment(id, in.WarehouseID); err != nil {
		return nil, err
	}
	if in.NewQuantity < 0 {
		return nil, domain.Invalid("la cantidad nueva no puede ser negativa")
	}
	if !entity.ValidAdjustmentReason(in.Reason) {
		return nil, domain.Invalid("motivo de ajuste inválido: %s", in.Reason)
	}
	if _, err := uc.refs.Product(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.refs.Warehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if err := uc.refs.Location(ctx, in.WarehouseID, in.LocationID); err != nil {
		return nil, err
	}

	key := entity.BalanceKey{ProductID: in.ProductID, WarehouseID: in.WarehouseID, LocationID: in.LocationID}
	result := &AdjustmentResult{}
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		current, err := repos.Stock.GetForUpdate(ctx, key)
		if err != nil {
			return err
		}
		var previous int64
		if current != nil {
			previous = current.Quantity
		}
		adj := &entity.Adjustment{
			ID:               uuid.New().String(),
			ProductID:        in.ProductID,
			WarehouseID:      in.WarehouseID,
			LocationID:       in.LocationID,
			PreviousQuantity: previous,
			NewQuantity:      in.NewQuantity,
			Delta:            in.NewQuantity - previous,
			Reason:           in.Reason,
			Remarks:          in.Remarks,
			ActorID:          id.UserID,
			CreatedAt:        time.Now().UTC(),
		}
		if adj.Delta != 0 {
			mi := MovementInput{
				Key:           key,
				Change:        adj.Delta,
				Type:          entity.MovementTypeAdjustment,
				SourceDocType: entity.DocTypeAdjustment,
				SourceDocID:   adj.ID,
				ActorID:       id.UserID,
			}
			if adj.Delta > 0 {
				mi.WarehouseTo, mi.LocationTo = in.WarehouseID, in.LocationID
			} else {
				mi.WarehouseFrom, mi.LocationFrom = in.WarehouseID, in.LocationID
			}
			m, err := LedgerFor(repos).ApplyMovement(ctx, mi)
			if err != nil {
				return err
			}
			result.Movement = m
		}
		if err := repos.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		result.Adjustment = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("warehouse_id", in.WarehouseID).
		Str("location_id", in.LocationID).
		Int64("previous", result.Adjustment.PreviousQuantity).
		Int64("new", result.Adjustment.NewQuantity).
		Str("reason", in.Reason).
		Str("actor", id.UserID).
		Msg("ajuste aplicado")
	return result, nil
}
