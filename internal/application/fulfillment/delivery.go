// Package fulfillment implementa los flujos de salida y abastecimiento entre bodegas:
// entregas, traslados y requisiciones.
package fulfillment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/authz"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// DeliveryUseCase flujo de entregas:
//
//	DRAFT/WAITING ─approve→ READY ─validate→ DONE
//	WAITING ─reject→ REJECTED
//	DRAFT ─validate→ DONE (entregas manuales sin destino)
//
// Las entregas ligadas a una requisición no se validan directamente; se completan al aceptar su traslado.
type DeliveryUseCase struct {
	tx     inventory.TxRunner
	refs   *inventory.References
	prefix string
	log    *logger.Logger
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(tx inventory.TxRunner, refs *inventory.References, prefixes inventory.DocumentPrefixes, log *logger.Logger) *DeliveryUseCase {
	return &DeliveryUseCase{tx: tx, refs: refs, prefix: prefixes.Delivery, log: log.Component("delivery")}
}

// CreateDelivery crea una entrega. Con bodega destino queda en WAITING (requiere aprobación
// del manager destino); sin destino queda en DRAFT.
func (uc *DeliveryUseCase) CreateDelivery(ctx context.Context, id entity.IdentityContext, in dto.CreateDeliveryRequest) (*entity.Delivery, error) {
	if err := authz.CheckCreateDelivery(id, in.WarehouseID); err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("la entrega no tiene líneas")
	}
	if in.TargetWarehouseID == in.WarehouseID {
		return nil, domain.Invalid("bodega origen y destino deben ser distintas")
	}
	if _, err := uc.refs.Warehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if in.TargetWarehouseID != "" {
		if _, err := uc.refs.Warehouse(ctx, in.TargetWarehouseID); err != nil {
			return nil, err
		}
	}
	lines := make([]entity.DeliveryLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if err := uc.refs.Line(ctx, i, l.ProductID, l.Quantity, in.WarehouseID, l.FromLocationID); err != nil {
			return nil, err
		}
		lines = append(lines, entity.DeliveryLine{ProductID: l.ProductID, FromLocationID: l.FromLocationID, Quantity: l.Quantity})
	}

	now := time.Now().UTC()
	delivery := &entity.Delivery{
		ID:                uuid.New().String(),
		WarehouseID:       in.WarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		RequisitionID:     in.RequisitionID,
		Lines:             lines,
		Status:            entity.DeliveryStatusDraft,
		Notes:             in.Notes,
		CreatedBy:         id.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if delivery.TargetWarehouseID != "" {
		delivery.Status = entity.DeliveryStatusWaiting
	}
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		if delivery.RequisitionID != "" {
			if err := checkRequisitionFreeForDelivery(ctx, repos, delivery); err != nil {
				return err
			}
		}
		number, err := inventory.NextDocumentNumber(ctx, repos.Numbers, entity.DocTypeDelivery, uc.prefix)
		if err != nil {
			return err
		}
		delivery.Number = number
		return repos.Deliveries.Create(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeDelivery, delivery.ID, delivery.Number, "", delivery.Status, id.UserID)
	return delivery, nil
}

// checkRequisitionFreeForDelivery una requisición aprobada tiene exactamente una entrega.
func checkRequisitionFreeForDelivery(ctx context.Context, repos inventory.TxRepos, d *entity.Delivery) error {
	req, err := repos.Requisitions.GetByID(ctx, d.RequisitionID)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("%w: requisición %s", domain.ErrNotFound, d.RequisitionID)
	}
	if req.Status != entity.RequisitionStatusApproved {
		return domain.WrongStatus("requisición", req.ID, req.Status)
	}
	existing, err := repos.Deliveries.GetByRequisition(ctx, req.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: la requisición %s ya tiene la entrega %s", domain.ErrConflict, req.ID, existing.Number)
	}
	if d.WarehouseID != req.FinalSourceWarehouseID || d.TargetWarehouseID != req.RequestingWarehouseID {
		return domain.Invalid("la entrega debe ir de %s a %s según la requisición", req.FinalSourceWarehouseID, req.RequestingWarehouseID)
	}
	return nil
}

// ApproveDelivery WAITING → READY (manager de la bodega destino).
func (uc *DeliveryUseCase) ApproveDelivery(ctx context.Context, id entity.IdentityContext, deliveryID string) (*entity.Delivery, error) {
	return uc.decide(ctx, id, deliveryID, func(d *entity.Delivery, now time.Time) error {
		if err := authz.CheckApproveDelivery(id, d); err != nil {
			return err
		}
		d.Status = entity.DeliveryStatusReady
		d.ApprovedBy = id.UserID
		d.ApprovedAt = &now
		return nil
	})
}

// RejectDelivery WAITING → REJECTED; el motivo se agrega a las notas.
func (uc *DeliveryUseCase) RejectDelivery(ctx context.Context, id entity.IdentityContext, deliveryID, reason string) (*entity.Delivery, error) {
	return uc.decide(ctx, id, deliveryID, func(d *entity.Delivery, now time.Time) error {
		if err := authz.CheckRejectDelivery(id, d); err != nil {
			return err
		}
		d.Status = entity.DeliveryStatusRejected
		d.RejectedBy = id.UserID
		d.RejectedAt = &now
		if reason = strings.TrimSpace(reason); reason != "" {
			d.Notes = strings.TrimSpace(d.Notes + "\nRechazo: " + reason)
		}
		return nil
	})
}

func (uc *DeliveryUseCase) decide(ctx context.Context, id entity.IdentityContext, deliveryID string, apply func(d *entity.Delivery, now time.Time) error) (*entity.Delivery, error) {
	var delivery *entity.Delivery
	var from string
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		d, err := getDelivery(ctx, repos, deliveryID)
		if err != nil {
			return err
		}
		from = d.Status
		now := time.Now().UTC()
		if err := apply(d, now); err != nil {
			return err
		}
		d.UpdatedAt = now
		if err := repos.Deliveries.Update(ctx, d, from); err != nil {
			return err
		}
		delivery = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeDelivery, delivery.ID, delivery.Number, from, delivery.Status, id.UserID)
	return delivery, nil
}

// ValidateDelivery READY/DRAFT → DONE descontando el stock de cada línea en la bodega origen.
// Todas las líneas se verifican antes de mover stock; si alguna no alcanza se reportan todas
// las faltantes y no se escribe nada.
func (uc *DeliveryUseCase) ValidateDelivery(ctx context.Context, id entity.IdentityContext, deliveryID string) (*entity.Delivery, error) {
	var delivery *entity.Delivery
	var from string
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		d, err := getDelivery(ctx, repos, deliveryID)
		if err != nil {
			return err
		}
		if err := authz.CheckValidateDelivery(id, d); err != nil {
			return err
		}
		from = d.Status
		now := time.Now().UTC()
		d.Status = entity.DeliveryStatusDone
		d.ValidatedBy = id.UserID
		d.ValidatedAt = &now
		d.UpdatedAt = now
		if err := repos.Deliveries.Update(ctx, d, from); err != nil {
			return err
		}

		ledger := inventory.LedgerFor(repos)
		outbound := make([]inventory.OutboundLine, 0, len(d.Lines))
		for _, l := range d.Lines {
			outbound = append(outbound, inventory.OutboundLine{
				ProductID:  l.ProductID,
				LocationID: l.FromLocationID,
				Quantity:   l.Quantity,
				Strict:     l.FromLocationID != "",
			})
		}
		plan, err := ledger.PlanOutbound(ctx, d.WarehouseID, outbound)
		if err != nil {
			return err
		}
		_, err = ledger.ApplyOutbound(ctx, d.WarehouseID, plan, func(int) inventory.MovementInput {
			return inventory.MovementInput{
				Type:          entity.MovementTypeDelivery,
				SourceDocType: entity.DocTypeDelivery,
				SourceDocID:   d.ID,
				ActorID:       id.UserID,
				WarehouseFrom: d.WarehouseID,
				WarehouseTo:   d.TargetWarehouseID,
			}
		})
		if err != nil {
			return err
		}
		delivery = d
		return nil
	})
	if err != nil {
		inventory.LogRejectedStock(uc.log, entity.DocTypeDelivery, deliveryID, err)
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeDelivery, delivery.ID, delivery.Number, from, delivery.Status, id.UserID)
	return delivery, nil
}

// GetDelivery lectura por id; visible para quien tenga en alcance la bodega origen o la destino.
func (uc *DeliveryUseCase) GetDelivery(ctx context.Context, id entity.IdentityContext, deliveryID string) (*entity.Delivery, error) {
	var delivery *entity.Delivery
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		delivery, err = getDelivery(ctx, repos, deliveryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := canView(id, delivery.WarehouseID, delivery.TargetWarehouseID); err != nil {
		return nil, err
	}
	return delivery, nil
}

func getDelivery(ctx context.Context, repos inventory.TxRepos, deliveryID string) (*entity.Delivery, error) {
	d, err := repos.Deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: entrega %s", domain.ErrNotFound, deliveryID)
	}
	return d, nil
}

// canView permite la lectura si alguna de las bodegas está en alcance.
func canView(id entity.IdentityContext, warehouseIDs ...string) error {
	var err error
	for _, w := range warehouseIDs {
		if w == "" {
			continue
		}
		if err = authz.CheckViewWarehouse(id, w); err == nil {
			return nil
		}
	}
	if err == nil {
		err = authz.CheckViewWarehouse(id, "")
	}
	return err
}
