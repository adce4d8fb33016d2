package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo recepciones sobre PostgreSQL; las líneas se guardan como JSONB.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste una recepción nueva.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, number, warehouse_id, supplier_name, lines, status, version,
			created_by, created_at, validated_by, validated_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		rc.ID, rc.Number, rc.WarehouseID, rc.SupplierName, rc.Lines, rc.Status, rc.Version,
		rc.CreatedBy, rc.CreatedAt, rc.ValidatedBy, rc.ValidatedAt, rc.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "insert receipt", "recepción "+rc.Number+" ya existe")
	}
	return nil
}

// GetByID obtiene una recepción; (nil, nil) si no existe.
func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	query := `
		SELECT id, number, warehouse_id, supplier_name, lines, status, version,
			created_by, created_at, validated_by, validated_at, updated_at
		FROM receipts WHERE id = $1`
	var rc entity.Receipt
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rc.ID, &rc.Number, &rc.WarehouseID, &rc.SupplierName, &rc.Lines, &rc.Status, &rc.Version,
		&rc.CreatedBy, &rc.CreatedAt, &rc.ValidatedBy, &rc.ValidatedAt, &rc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &rc, nil
}

// Update persiste la transición si el estado y la versión siguen siendo los leídos.
func (r *ReceiptRepo) Update(ctx context.Context, rc *entity.Receipt, expectedStatus string) error {
	query := `
		UPDATE receipts SET status = $2, validated_by = $3, validated_at = $4, updated_at = $5,
			version = version + 1
		WHERE id = $1 AND status = $6 AND version = $7`
	cmd, err := r.q.Exec(ctx, query,
		rc.ID, rc.Status, rc.ValidatedBy, rc.ValidatedAt, rc.UpdatedAt, expectedStatus, rc.Version,
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return staleOr(ctx, r.q, "receipts", "recepción", rc.ID)
	}
	rc.Version++
	return nil
}
