package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var (
	_ repository.AdjustmentRepository     = (*AdjustmentRepo)(nil)
	_ repository.DocumentNumberRepository = (*SequenceRepo)(nil)
)

// AdjustmentRepo registro de auditoría de ajustes (solo inserción).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste un ajuste.
func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	query := `
		INSERT INTO adjustments (id, product_id, warehouse_id, location_id, previous_quantity, new_quantity,
			delta, reason, remarks, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ProductID, a.WarehouseID, a.LocationID, a.PreviousQuantity, a.NewQuantity,
		a.Delta, a.Reason, a.Remarks, a.ActorID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// SequenceRepo consecutivos por tipo de documento. El upsert bloquea la fila hasta el fin de
// la transacción, así que los números no tienen huecos.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente consecutivo del tipo.
func (r *SequenceRepo) Next(ctx context.Context, docType string) (int64, error) {
	query := `
		INSERT INTO document_sequences (doc_type, last_value) VALUES ($1, 1)
		ON CONFLICT (doc_type) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, docType).Scan(&n); err != nil {
		return 0, fmt.Errorf("next document number: %w", err)
	}
	return n, nil
}
