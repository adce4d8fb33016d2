package fulfillment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/authz"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// TransferUseCase traslado en dos fases: DRAFT ─dispatch→ IN_TRANSIT ─accept→ DONE.
// El despacho descuenta en origen; la aceptación acredita en destino. Entre ambos el stock está en tránsito.
type TransferUseCase struct {
	tx     inventory.TxRunner
	refs   *inventory.References
	prefix string
	log    *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(tx inventory.TxRunner, refs *inventory.References, prefixes inventory.DocumentPrefixes, log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{tx: tx, refs: refs, prefix: prefixes.Transfer, log: log.Component("transfer")}
}

// CreateTransfer crea un traslado manual en DRAFT. Si trae DeliveryID se construye desde la entrega.
// Una requisición enlazada debe estar APPROVED.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, id entity.IdentityContext, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if in.DeliveryID != "" {
		return uc.CreateFromDelivery(ctx, id, in.DeliveryID)
	}
	if err := authz.CheckCreateTransfer(id, in.SourceWarehouseID); err != nil {
		return nil, err
	}
	if in.SourceWarehouseID == "" || in.TargetWarehouseID == "" {
		return nil, domain.Invalid("bodega origen y destino son requeridas")
	}
	if in.SourceWarehouseID == in.TargetWarehouseID {
		return nil, domain.Invalid("bodega origen y destino deben ser distintas")
	}
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("el traslado no tiene líneas")
	}
	if _, err := uc.refs.Warehouse(ctx, in.SourceWarehouseID); err != nil {
		return nil, err
	}
	if _, err := uc.refs.Warehouse(ctx, in.TargetWarehouseID); err != nil {
		return nil, err
	}
	lines := make([]entity.TransferLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if err := uc.refs.Line(ctx, i, l.ProductID, l.Quantity, in.SourceWarehouseID, l.SourceLocationID); err != nil {
			return nil, err
		}
		if err := uc.refs.Location(ctx, in.TargetWarehouseID, l.TargetLocationID); err != nil {
			return nil, err
		}
		lines = append(lines, entity.TransferLine{
			ProductID:        l.ProductID,
			SourceLocationID: l.SourceLocationID,
			TargetLocationID: l.TargetLocationID,
			Quantity:         l.Quantity,
		})
	}

	transfer := uc.newTransfer(id, in.SourceWarehouseID, in.TargetWarehouseID, lines)
	transfer.RequisitionID = in.RequisitionID
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		if transfer.RequisitionID != "" {
			req, err := repos.Requisitions.GetByID(ctx, transfer.RequisitionID)
			if err != nil {
				return err
			}
			if req == nil {
				return fmt.Errorf("%w: requisición %s", domain.ErrNotFound, transfer.RequisitionID)
			}
			if req.Status != entity.RequisitionStatusApproved {
				return domain.WrongStatus("requisición", req.ID, req.Status)
			}
		}
		return uc.persist(ctx, repos, transfer)
	})
	if err != nil {
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeTransfer, transfer.ID, transfer.Number, "", transfer.Status, id.UserID)
	return transfer, nil
}

// CreateFromDelivery construye un traslado DRAFT desde una entrega READY ligada a requisición.
// Copia producto y cantidad de cada línea; la ubicación origen elegida en la entrega no se
// traslada y el despacho resuelve el stock sobre toda la bodega.
func (uc *TransferUseCase) CreateFromDelivery(ctx context.Context, id entity.IdentityContext, deliveryID string) (*entity.Transfer, error) {
	var transfer *entity.Transfer
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		d, err := getDelivery(ctx, repos, deliveryID)
		if err != nil {
			return err
		}
		if err := authz.CheckCreateTransferFromDelivery(id, d); err != nil {
			return err
		}
		existing, err := repos.Transfers.GetByDelivery(ctx, d.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la entrega %s ya tiene el traslado %s", domain.ErrConflict, d.ID, existing.Number)
		}
		lines := make([]entity.TransferLine, 0, len(d.Lines))
		for _, l := range d.Lines {
			lines = append(lines, entity.TransferLine{ProductID: l.ProductID, Quantity: l.Quantity})
		}
		t := uc.newTransfer(id, d.WarehouseID, d.TargetWarehouseID, lines)
		t.RequisitionID = d.RequisitionID
		t.DeliveryID = d.ID
		if err := uc.persist(ctx, repos, t); err != nil {
			return err
		}
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeTransfer, transfer.ID, transfer.Number, "", transfer.Status, id.UserID)
	return transfer, nil
}

func (uc *TransferUseCase) newTransfer(id entity.IdentityContext, source, target string, lines []entity.TransferLine) *entity.Transfer {
	now := time.Now().UTC()
	return &entity.Transfer{
		ID:                uuid.New().String(),
		SourceWarehouseID: source,
		TargetWarehouseID: target,
		Lines:             lines,
		Status:            entity.TransferStatusDraft,
		CreatedBy:         id.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (uc *TransferUseCase) persist(ctx context.Context, repos inventory.TxRepos, t *entity.Transfer) error {
	number, err := inventory.NextDocumentNumber(ctx, repos.Numbers, entity.DocTypeTransfer, uc.prefix)
	if err != nil {
		return err
	}
	t.Number = number
	return repos.Transfers.Create(ctx, t)
}

// DispatchTransfer DRAFT → IN_TRANSIT descontando stock en origen. Cada línea usa primero su
// ubicación origen y, si no alcanza, el resto de la bodega.
func (uc *TransferUseCase) DispatchTransfer(ctx context.Context, id entity.IdentityContext, transferID string) (*entity.Transfer, error) {
	var transfer *entity.Transfer
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		t, err := getTransfer(ctx, repos, transferID)
		if err != nil {
			return err
		}
		if err := authz.CheckDispatchTransfer(id, t); err != nil {
			return err
		}
		now := time.Now().UTC()
		t.Status = entity.TransferStatusInTransit
		t.DispatchedBy = id.UserID
		t.DispatchedAt = &now
		t.UpdatedAt = now
		if err := repos.Transfers.Update(ctx, t, entity.TransferStatusDraft); err != nil {
			return err
		}

		ledger := inventory.LedgerFor(repos)
		outbound := make([]inventory.OutboundLine, 0, len(t.Lines))
		for _, l := range t.Lines {
			outbound = append(outbound, inventory.OutboundLine{ProductID: l.ProductID, LocationID: l.SourceLocationID, Quantity: l.Quantity})
		}
		plan, err := ledger.PlanOutbound(ctx, t.SourceWarehouseID, outbound)
		if err != nil {
			return err
		}
		_, err = ledger.ApplyOutbound(ctx, t.SourceWarehouseID, plan, func(i int) inventory.MovementInput {
			return inventory.MovementInput{
				Type:          entity.MovementTypeTransfer,
				SourceDocType: entity.DocTypeTransfer,
				SourceDocID:   t.ID,
				ActorID:       id.UserID,
				WarehouseFrom: t.SourceWarehouseID,
				WarehouseTo:   t.TargetWarehouseID,
				LocationTo:    t.Lines[i].TargetLocationID,
			}
		})
		if err != nil {
			return err
		}
		transfer = t
		return nil
	})
	if err != nil {
		inventory.LogRejectedStock(uc.log, entity.DocTypeTransfer, transferID, err)
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeTransfer, transfer.ID, transfer.Number, entity.TransferStatusDraft, transfer.Status, id.UserID)
	return transfer, nil
}

// AcceptTransfer IN_TRANSIT → DONE acreditando stock en destino. Si el traslado viene de una
// entrega, la entrega pasa a DONE en la misma transacción.
func (uc *TransferUseCase) AcceptTransfer(ctx context.Context, id entity.IdentityContext, transferID string) (*entity.Transfer, error) {
	var transfer *entity.Transfer
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		t, err := getTransfer(ctx, repos, transferID)
		if err != nil {
			return err
		}
		if err := authz.CheckAcceptTransfer(id, t); err != nil {
			return err
		}
		now := time.Now().UTC()
		t.Status = entity.TransferStatusDone
		t.ReceivedBy = id.UserID
		t.ReceivedAt = &now
		t.UpdatedAt = now
		if err := repos.Transfers.Update(ctx, t, entity.TransferStatusInTransit); err != nil {
			return err
		}

		ledger := inventory.LedgerFor(repos)
		for _, l := range t.Lines {
			_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{
				Key:           entity.BalanceKey{ProductID: l.ProductID, WarehouseID: t.TargetWarehouseID, LocationID: l.TargetLocationID},
				Change:        l.Quantity,
				Type:          entity.MovementTypeTransfer,
				SourceDocType: entity.DocTypeTransfer,
				SourceDocID:   t.ID,
				ActorID:       id.UserID,
				WarehouseFrom: t.SourceWarehouseID,
				LocationFrom:  l.SourceLocationID,
				WarehouseTo:   t.TargetWarehouseID,
				LocationTo:    l.TargetLocationID,
			})
			if err != nil {
				return err
			}
		}

		if t.DeliveryID != "" {
			if err := completeDelivery(ctx, repos, t.DeliveryID, id.UserID, now); err != nil {
				return err
			}
		}
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeTransfer, transfer.ID, transfer.Number, entity.TransferStatusInTransit, transfer.Status, id.UserID)
	return transfer, nil
}

// completeDelivery cierra la entrega de origen del traslado (READY → DONE).
func completeDelivery(ctx context.Context, repos inventory.TxRepos, deliveryID, actorID string, now time.Time) error {
	d, err := getDelivery(ctx, repos, deliveryID)
	if err != nil {
		return err
	}
	if d.Status != entity.DeliveryStatusReady {
		return domain.WrongStatus("entrega", d.ID, d.Status)
	}
	d.Status = entity.DeliveryStatusDone
	d.ValidatedBy = actorID
	d.ValidatedAt = &now
	d.UpdatedAt = now
	return repos.Deliveries.Update(ctx, d, entity.DeliveryStatusReady)
}

// GetTransfer lectura por id; visible para origen o destino.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id entity.IdentityContext, transferID string) (*entity.Transfer, error) {
	var transfer *entity.Transfer
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		transfer, err = getTransfer(ctx, repos, transferID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := canView(id, transfer.SourceWarehouseID, transfer.TargetWarehouseID); err != nil {
		return nil, err
	}
	return transfer, nil
}

func getTransfer(ctx context.Context, repos inventory.TxRepos, transferID string) (*entity.Transfer, error) {
	t, err := repos.Transfers.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, transferID)
	}
	return t, nil
}
