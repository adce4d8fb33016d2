package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var (
	_ repository.ReceiptRepository        = (*receiptRepo)(nil)
	_ repository.DeliveryRepository       = (*deliveryRepo)(nil)
	_ repository.TransferRepository       = (*transferRepo)(nil)
	_ repository.RequisitionRepository    = (*requisitionRepo)(nil)
	_ repository.AdjustmentRepository     = (*adjustmentRepo)(nil)
	_ repository.DocumentNumberRepository = (*sequenceRepo)(nil)
)

func copyReceipt(r *entity.Receipt) *entity.Receipt {
	cp := *r
	cp.Lines = append([]entity.ReceiptLine(nil), r.Lines...)
	return &cp
}

func copyDelivery(d *entity.Delivery) *entity.Delivery {
	cp := *d
	cp.Lines = append([]entity.DeliveryLine(nil), d.Lines...)
	return &cp
}

func copyTransfer(t *entity.Transfer) *entity.Transfer {
	cp := *t
	cp.Lines = append([]entity.TransferLine(nil), t.Lines...)
	return &cp
}

func copyRequisition(r *entity.Requisition) *entity.Requisition {
	cp := *r
	cp.Lines = append([]entity.RequisitionLine(nil), r.Lines...)
	return &cp
}

// checkPrecondition estado y versión guardados deben coincidir con lo leído por el llamador.
func checkPrecondition(doc, id, storedStatus string, storedVersion int, expectedStatus string, version int) error {
	if storedStatus != expectedStatus || storedVersion != version {
		return fmt.Errorf("%w: %s %s cambió (estado %s, versión %d)", domain.ErrInvalidStateTransition, doc, id, storedStatus, storedVersion)
	}
	return nil
}

func duplicate(doc, id string) error {
	return fmt.Errorf("%w: %s %s ya existe", domain.ErrConflict, doc, id)
}

// ─── Recepciones ──────────────────────────────────────────────────────────────

type receiptRepo struct{ st *state }

func (r *receiptRepo) Create(_ context.Context, rc *entity.Receipt) error {
	if _, ok := r.st.receipts[rc.ID]; ok {
		return duplicate("recepción", rc.ID)
	}
	r.st.receipts[rc.ID] = copyReceipt(rc)
	return nil
}

func (r *receiptRepo) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	rc, ok := r.st.receipts[id]
	if !ok {
		return nil, nil
	}
	return copyReceipt(rc), nil
}

func (r *receiptRepo) Update(_ context.Context, rc *entity.Receipt, expectedStatus string) error {
	stored, ok := r.st.receipts[rc.ID]
	if !ok {
		return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, rc.ID)
	}
	if err := checkPrecondition("recepción", rc.ID, stored.Status, stored.Version, expectedStatus, rc.Version); err != nil {
		return err
	}
	rc.Version++
	r.st.receipts[rc.ID] = copyReceipt(rc)
	return nil
}

// ─── Entregas ─────────────────────────────────────────────────────────────────

type deliveryRepo struct{ st *state }

func (r *deliveryRepo) Create(_ context.Context, d *entity.Delivery) error {
	if _, ok := r.st.deliveries[d.ID]; ok {
		return duplicate("entrega", d.ID)
	}
	if d.RequisitionID != "" {
		for _, other := range r.st.deliveries {
			if other.RequisitionID == d.RequisitionID {
				return fmt.Errorf("%w: la requisición %s ya tiene entrega", domain.ErrConflict, d.RequisitionID)
			}
		}
	}
	r.st.deliveries[d.ID] = copyDelivery(d)
	return nil
}

func (r *deliveryRepo) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	d, ok := r.st.deliveries[id]
	if !ok {
		return nil, nil
	}
	return copyDelivery(d), nil
}

func (r *deliveryRepo) GetByRequisition(_ context.Context, requisitionID string) (*entity.Delivery, error) {
	for _, d := range r.st.deliveries {
		if d.RequisitionID == requisitionID {
			return copyDelivery(d), nil
		}
	}
	return nil, nil
}

func (r *deliveryRepo) Update(_ context.Context, d *entity.Delivery, expectedStatus string) error {
	stored, ok := r.st.deliveries[d.ID]
	if !ok {
		return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, d.ID)
	}
	if err := checkPrecondition("entrega", d.ID, stored.Status, stored.Version, expectedStatus, d.Version); err != nil {
		return err
	}
	d.Version++
	r.st.deliveries[d.ID] = copyDelivery(d)
	return nil
}

// ─── Traslados ────────────────────────────────────────────────────────────────

type transferRepo struct{ st *state }

func (r *transferRepo) Create(_ context.Context, t *entity.Transfer) error {
	if _, ok := r.st.transfers[t.ID]; ok {
		return duplicate("traslado", t.ID)
	}
	if t.DeliveryID != "" {
		for _, other := range r.st.transfers {
			if other.DeliveryID == t.DeliveryID {
				return fmt.Errorf("%w: la entrega %s ya tiene traslado", domain.ErrConflict, t.DeliveryID)
			}
		}
	}
	r.st.transfers[t.ID] = copyTransfer(t)
	return nil
}

func (r *transferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	t, ok := r.st.transfers[id]
	if !ok {
		return nil, nil
	}
	return copyTransfer(t), nil
}

func (r *transferRepo) GetByDelivery(_ context.Context, deliveryID string) (*entity.Transfer, error) {
	for _, t := range r.st.transfers {
		if t.DeliveryID == deliveryID {
			return copyTransfer(t), nil
		}
	}
	return nil, nil
}

func (r *transferRepo) Update(_ context.Context, t *entity.Transfer, expectedStatus string) error {
	stored, ok := r.st.transfers[t.ID]
	if !ok {
		return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, t.ID)
	}
	if err := checkPrecondition("traslado", t.ID, stored.Status, stored.Version, expectedStatus, t.Version); err != nil {
		return err
	}
	t.Version++
	r.st.transfers[t.ID] = copyTransfer(t)
	return nil
}

// ─── Requisiciones ────────────────────────────────────────────────────────────

type requisitionRepo struct{ st *state }

func (r *requisitionRepo) Create(_ context.Context, req *entity.Requisition) error {
	if _, ok := r.st.requisitions[req.ID]; ok {
		return duplicate("requisición", req.ID)
	}
	r.st.requisitions[req.ID] = copyRequisition(req)
	return nil
}

func (r *requisitionRepo) GetByID(_ context.Context, id string) (*entity.Requisition, error) {
	req, ok := r.st.requisitions[id]
	if !ok {
		return nil, nil
	}
	return copyRequisition(req), nil
}

func (r *requisitionRepo) Update(_ context.Context, req *entity.Requisition, expectedStatus string) error {
	stored, ok := r.st.requisitions[req.ID]
	if !ok {
		return fmt.Errorf("%w: requisición %s", domain.ErrNotFound, req.ID)
	}
	if err := checkPrecondition("requisición", req.ID, stored.Status, stored.Version, expectedStatus, req.Version); err != nil {
		return err
	}
	req.Version++
	r.st.requisitions[req.ID] = copyRequisition(req)
	return nil
}

// ─── Ajustes y consecutivos ───────────────────────────────────────────────────

type adjustmentRepo struct{ st *state }

func (r *adjustmentRepo) Create(_ context.Context, a *entity.Adjustment) error {
	cp := *a
	r.st.adjustments = append(r.st.adjustments, &cp)
	return nil
}

type sequenceRepo struct{ st *state }

func (r *sequenceRepo) Next(_ context.Context, docType string) (int64, error) {
	r.st.sequences[docType]++
	return r.st.sequences[docType], nil
}
