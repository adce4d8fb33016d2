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

// ApprovalResult requisición aprobada y la entrega creada en la misma transacción.
type ApprovalResult struct {
	Requisition *entity.Requisition
	Delivery    *entity.Delivery
}

// RequisitionUseCase solicitud de stock de una bodega a otra:
//
//	DRAFT ─submit→ SUBMITTED ─approve→ APPROVED (+ entrega WAITING)
//	SUBMITTED ─reject→ REJECTED
type RequisitionUseCase struct {
	tx             inventory.TxRunner
	refs           *inventory.References
	prefix         string
	deliveryPrefix string
	log            *logger.Logger
}

// NewRequisitionUseCase construye el caso de uso.
func NewRequisitionUseCase(tx inventory.TxRunner, refs *inventory.References, prefixes inventory.DocumentPrefixes, log *logger.Logger) *RequisitionUseCase {
	return &RequisitionUseCase{
		tx:             tx,
		refs:           refs,
		prefix:         prefixes.Requisition,
		deliveryPrefix: prefixes.Delivery,
		log:            log.Component("requisition"),
	}
}

// CreateRequisition crea la requisición en SUBMITTED (o DRAFT si in.Draft).
func (uc *RequisitionUseCase) CreateRequisition(ctx context.Context, id entity.IdentityContext, in dto.CreateRequisitionRequest) (*entity.Requisition, error) {
	if err := authz.CheckCreateRequisition(id, in.RequestingWarehouseID); err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("la requisición no tiene líneas")
	}
	if _, err := uc.refs.Warehouse(ctx, in.RequestingWarehouseID); err != nil {
		return nil, err
	}
	if in.SuggestedSourceWarehouseID != "" {
		if in.SuggestedSourceWarehouseID == in.RequestingWarehouseID {
			return nil, domain.Invalid("la bodega sugerida no puede ser la solicitante")
		}
		if _, err := uc.refs.Warehouse(ctx, in.SuggestedSourceWarehouseID); err != nil {
			return nil, err
		}
	}
	lines := make([]entity.RequisitionLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if err := uc.refs.Line(ctx, i, l.ProductID, l.QuantityRequested, in.RequestingWarehouseID, ""); err != nil {
			return nil, err
		}
		lines = append(lines, entity.RequisitionLine{ProductID: l.ProductID, QuantityRequested: l.QuantityRequested, NeededByDate: l.NeededByDate})
	}

	now := time.Now().UTC()
	req := &entity.Requisition{
		ID:                         uuid.New().String(),
		RequestingWarehouseID:      in.RequestingWarehouseID,
		SuggestedSourceWarehouseID: in.SuggestedSourceWarehouseID,
		Lines:                      lines,
		Status:                     entity.RequisitionStatusSubmitted,
		Notes:                      in.Notes,
		RequestedBy:                id.UserID,
		CreatedAt:                  now,
		SubmittedAt:                &now,
		UpdatedAt:                  now,
	}
	if in.Draft {
		req.Status = entity.RequisitionStatusDraft
		req.SubmittedAt = nil
	}
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		number, err := inventory.NextDocumentNumber(ctx, repos.Numbers, entity.DocTypeRequisition, uc.prefix)
		if err != nil {
			return err
		}
		req.Number = number
		return repos.Requisitions.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeRequisition, req.ID, req.Number, "", req.Status, id.UserID)
	return req, nil
}

// SubmitRequisition DRAFT → SUBMITTED.
func (uc *RequisitionUseCase) SubmitRequisition(ctx context.Context, id entity.IdentityContext, requisitionID string) (*entity.Requisition, error) {
	return uc.transition(ctx, id, requisitionID, func(_ inventory.TxRepos, r *entity.Requisition, now time.Time) error {
		if err := authz.CheckSubmitRequisition(id, r); err != nil {
			return err
		}
		r.Status = entity.RequisitionStatusSubmitted
		r.SubmittedAt = &now
		return nil
	})
}

// RejectRequisition SUBMITTED → REJECTED, sin efectos colaterales.
func (uc *RequisitionUseCase) RejectRequisition(ctx context.Context, id entity.IdentityContext, requisitionID, reason string) (*entity.Requisition, error) {
	return uc.transition(ctx, id, requisitionID, func(_ inventory.TxRepos, r *entity.Requisition, now time.Time) error {
		if err := authz.CheckRejectRequisition(id, r); err != nil {
			return err
		}
		r.Status = entity.RequisitionStatusRejected
		r.RejectedBy = id.UserID
		r.RejectedAt = &now
		r.RejectedReason = strings.TrimSpace(reason)
		return nil
	})
}

// ApproveRequisition SUBMITTED → APPROVED y crea, en la misma transacción, la entrega WAITING
// desde la bodega origen final hacia la solicitante. No verifica stock: eso ocurre al despachar.
func (uc *RequisitionUseCase) ApproveRequisition(ctx context.Context, id entity.IdentityContext, requisitionID, finalSourceWarehouseID string) (*ApprovalResult, error) {
	if finalSourceWarehouseID == "" {
		return nil, domain.Invalid("final_source_warehouse_id requerido")
	}
	result := &ApprovalResult{}
	req, err := uc.transition(ctx, id, requisitionID, func(repos inventory.TxRepos, r *entity.Requisition, now time.Time) error {
		if err := authz.CheckApproveRequisition(id, r); err != nil {
			return err
		}
		if finalSourceWarehouseID == r.RequestingWarehouseID {
			return domain.Invalid("la bodega origen final no puede ser la solicitante")
		}
		// La bodega se resuelve después de la compuerta de rol.
		if _, err := uc.refs.Warehouse(ctx, finalSourceWarehouseID); err != nil {
			return err
		}
		existing, err := repos.Deliveries.GetByRequisition(ctx, r.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la requisición %s ya tiene la entrega %s", domain.ErrConflict, r.ID, existing.Number)
		}
		r.FinalSourceWarehouseID = finalSourceWarehouseID
		r.Status = entity.RequisitionStatusApproved
		r.ApprovedBy = id.UserID
		r.ApprovedAt = &now

		lines := make([]entity.DeliveryLine, 0, len(r.Lines))
		for _, l := range r.Lines {
			lines = append(lines, entity.DeliveryLine{ProductID: l.ProductID, Quantity: l.QuantityRequested})
		}
		number, err := inventory.NextDocumentNumber(ctx, repos.Numbers, entity.DocTypeDelivery, uc.deliveryPrefix)
		if err != nil {
			return err
		}
		d := &entity.Delivery{
			ID:                uuid.New().String(),
			Number:            number,
			WarehouseID:       finalSourceWarehouseID,
			TargetWarehouseID: r.RequestingWarehouseID,
			RequisitionID:     r.ID,
			Lines:             lines,
			Status:            entity.DeliveryStatusWaiting,
			Notes:             "Generada por la requisición " + r.Number,
			CreatedBy:         id.UserID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := repos.Deliveries.Create(ctx, d); err != nil {
			return err
		}
		result.Delivery = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Requisition = req
	inventory.LogTransition(uc.log, entity.DocTypeDelivery, result.Delivery.ID, result.Delivery.Number, "", result.Delivery.Status, id.UserID)
	return result, nil
}

// transition lee la requisición, aplica el cambio y la persiste con su estado previo como precondición.
func (uc *RequisitionUseCase) transition(ctx context.Context, id entity.IdentityContext, requisitionID string, apply func(repos inventory.TxRepos, r *entity.Requisition, now time.Time) error) (*entity.Requisition, error) {
	var req *entity.Requisition
	var from string
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		r, err := getRequisition(ctx, repos, requisitionID)
		if err != nil {
			return err
		}
		from = r.Status
		now := time.Now().UTC()
		if err := apply(repos, r, now); err != nil {
			return err
		}
		r.UpdatedAt = now
		if err := repos.Requisitions.Update(ctx, r, from); err != nil {
			return err
		}
		req = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.LogTransition(uc.log, entity.DocTypeRequisition, req.ID, req.Number, from, req.Status, id.UserID)
	return req, nil
}

// GetRequisition lectura por id. Los managers ven todas (deciden sobre cualquier bodega);
// el resto necesita la bodega solicitante u origen en alcance.
func (uc *RequisitionUseCase) GetRequisition(ctx context.Context, id entity.IdentityContext, requisitionID string) (*entity.Requisition, error) {
	var req *entity.Requisition
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		req, err = getRequisition(ctx, repos, requisitionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if id.Role != entity.RoleManager {
		if err := canView(id, req.RequestingWarehouseID, req.FinalSourceWarehouseID); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func getRequisition(ctx context.Context, repos inventory.TxRepos, requisitionID string) (*entity.Requisition, error) {
	r, err := repos.Requisitions.GetByID(ctx, requisitionID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: requisición %s", domain.ErrNotFound, requisitionID)
	}
	return r, nil
}
