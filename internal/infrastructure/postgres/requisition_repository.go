package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo requisiciones sobre PostgreSQL.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionColumns = `id, number, requesting_warehouse_id, suggested_source_warehouse_id, final_source_warehouse_id,
	lines, status, notes, version, requested_by, created_at, submitted_at, approved_by, approved_at,
	rejected_by, rejected_at, rejected_reason, updated_at`

// Create persiste una requisición nueva.
func (r *RequisitionRepo) Create(ctx context.Context, req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.Number, req.RequestingWarehouseID, req.SuggestedSourceWarehouseID, req.FinalSourceWarehouseID,
		req.Lines, req.Status, req.Notes, req.Version, req.RequestedBy, req.CreatedAt, req.SubmittedAt, req.ApprovedBy, req.ApprovedAt,
		req.RejectedBy, req.RejectedAt, req.RejectedReason, req.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "insert requisition", "requisición "+req.Number+" ya existe")
	}
	return nil
}

// GetByID obtiene una requisición; (nil, nil) si no existe.
func (r *RequisitionRepo) GetByID(ctx context.Context, id string) (*entity.Requisition, error) {
	var req entity.Requisition
	err := r.q.QueryRow(ctx, `SELECT `+requisitionColumns+` FROM requisitions WHERE id = $1`, id).Scan(
		&req.ID, &req.Number, &req.RequestingWarehouseID, &req.SuggestedSourceWarehouseID, &req.FinalSourceWarehouseID,
		&req.Lines, &req.Status, &req.Notes, &req.Version, &req.RequestedBy, &req.CreatedAt, &req.SubmittedAt, &req.ApprovedBy, &req.ApprovedAt,
		&req.RejectedBy, &req.RejectedAt, &req.RejectedReason, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	return &req, nil
}

// Update persiste la transición si el estado y la versión siguen siendo los leídos.
func (r *RequisitionRepo) Update(ctx context.Context, req *entity.Requisition, expectedStatus string) error {
	query := `
		UPDATE requisitions SET status = $2, final_source_warehouse_id = $3, submitted_at = $4,
			approved_by = $5, approved_at = $6, rejected_by = $7, rejected_at = $8, rejected_reason = $9,
			updated_at = $10, version = version + 1
		WHERE id = $1 AND status = $11 AND version = $12`
	cmd, err := r.q.Exec(ctx, query,
		req.ID, req.Status, req.FinalSourceWarehouseID, req.SubmittedAt,
		req.ApprovedBy, req.ApprovedAt, req.RejectedBy, req.RejectedAt, req.RejectedReason,
		req.UpdatedAt, expectedStatus, req.Version,
	)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return staleOr(ctx, r.q, "requisitions", "requisición", req.ID)
	}
	req.Version++
	return nil
}
