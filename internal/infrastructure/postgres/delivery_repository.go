package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo entregas sobre PostgreSQL. Un índice único parcial sobre requisition_id
// garantiza una sola entrega por requisición.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, number, warehouse_id, target_warehouse_id, requisition_id, lines, status, notes, version,
	created_by, created_at, approved_by, approved_at, rejected_by, rejected_at, validated_by, validated_at, updated_at`

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(
		&d.ID, &d.Number, &d.WarehouseID, &d.TargetWarehouseID, &d.RequisitionID, &d.Lines, &d.Status, &d.Notes, &d.Version,
		&d.CreatedBy, &d.CreatedAt, &d.ApprovedBy, &d.ApprovedAt, &d.RejectedBy, &d.RejectedAt, &d.ValidatedBy, &d.ValidatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}

// Create persiste una entrega nueva.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Number, d.WarehouseID, d.TargetWarehouseID, d.RequisitionID, d.Lines, d.Status, d.Notes, d.Version,
		d.CreatedBy, d.CreatedAt, d.ApprovedBy, d.ApprovedAt, d.RejectedBy, d.RejectedAt, d.ValidatedBy, d.ValidatedAt, d.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "insert delivery", "entrega duplicada para la requisición "+d.RequisitionID)
	}
	return nil
}

// GetByID obtiene una entrega; (nil, nil) si no existe.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	return scanDelivery(r.q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
}

// GetByRequisition obtiene la entrega generada por una requisición; (nil, nil) si no hay.
func (r *DeliveryRepo) GetByRequisition(ctx context.Context, requisitionID string) (*entity.Delivery, error) {
	return scanDelivery(r.q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE requisition_id = $1`, requisitionID))
}

// Update persiste la transición si el estado y la versión siguen siendo los leídos.
func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery, expectedStatus string) error {
	query := `
		UPDATE deliveries SET status = $2, notes = $3, approved_by = $4, approved_at = $5,
			rejected_by = $6, rejected_at = $7, validated_by = $8, validated_at = $9, updated_at = $10,
			version = version + 1
		WHERE id = $1 AND status = $11 AND version = $12`
	cmd, err := r.q.Exec(ctx, query,
		d.ID, d.Status, d.Notes, d.ApprovedBy, d.ApprovedAt,
		d.RejectedBy, d.RejectedAt, d.ValidatedBy, d.ValidatedAt, d.UpdatedAt,
		expectedStatus, d.Version,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return staleOr(ctx, r.q, "deliveries", "entrega", d.ID)
	}
	d.Version++
	return nil
}
