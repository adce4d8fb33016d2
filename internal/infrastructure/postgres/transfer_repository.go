package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo traslados sobre PostgreSQL; delivery_id tiene índice único parcial.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, number, source_warehouse_id, target_warehouse_id, requisition_id, delivery_id, lines, status, version,
	created_by, created_at, dispatched_by, dispatched_at, received_by, received_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	err := row.Scan(
		&t.ID, &t.Number, &t.SourceWarehouseID, &t.TargetWarehouseID, &t.RequisitionID, &t.DeliveryID, &t.Lines, &t.Status, &t.Version,
		&t.CreatedBy, &t.CreatedAt, &t.DispatchedBy, &t.DispatchedAt, &t.ReceivedBy, &t.ReceivedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// Create persiste un traslado nuevo.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Number, t.SourceWarehouseID, t.TargetWarehouseID, t.RequisitionID, t.DeliveryID, t.Lines, t.Status, t.Version,
		t.CreatedBy, t.CreatedAt, t.DispatchedBy, t.DispatchedAt, t.ReceivedBy, t.ReceivedAt, t.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "insert transfer", "traslado duplicado para la entrega "+t.DeliveryID)
	}
	return nil
}

// GetByID obtiene un traslado; (nil, nil) si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	return scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id))
}

// GetByDelivery obtiene el traslado construido desde una entrega; (nil, nil) si no hay.
func (r *TransferRepo) GetByDelivery(ctx context.Context, deliveryID string) (*entity.Transfer, error) {
	return scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE delivery_id = $1`, deliveryID))
}

// Update persiste la transición si el estado y la versión siguen siendo los leídos.
func (r *TransferRepo) Update(ctx context.Context, t *entity.Transfer, expectedStatus string) error {
	query := `
		UPDATE transfers SET status = $2, dispatched_by = $3, dispatched_at = $4,
			received_by = $5, received_at = $6, updated_at = $7, version = version + 1
		WHERE id = $1 AND status = $8 AND version = $9`
	cmd, err := r.q.Exec(ctx, query,
		t.ID, t.Status, t.DispatchedBy, t.DispatchedAt, t.ReceivedBy, t.ReceivedAt, t.UpdatedAt,
		expectedStatus, t.Version,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return staleOr(ctx, r.q, "transfers", "traslado", t.ID)
	}
	t.Version++
	return nil
}
