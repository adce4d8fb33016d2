package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo log append-only de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, location_id, change, type,
			source_doc_type, source_doc_id, warehouse_from, location_from, warehouse_to, location_to,
			actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, m.LocationID, m.Change, m.Type,
		m.SourceDocType, m.SourceDocID, m.WarehouseFrom, m.LocationFrom, m.WarehouseTo, m.LocationTo,
		m.ActorID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List movimientos más recientes primero; los campos vacíos del filtro no filtran.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var (
		where []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("product_id", f.ProductID)
	add("warehouse_id", f.WarehouseID)
	add("source_doc_type", f.SourceDocType)
	add("source_doc_id", f.SourceDocID)

	query := `
		SELECT id, product_id, warehouse_id, location_id, change, type, source_doc_type, source_doc_id,
			warehouse_from, location_from, warehouse_to, location_to, actor_id, created_at
		FROM stock_movements`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.WarehouseID, &m.LocationID, &m.Change, &m.Type, &m.SourceDocType, &m.SourceDocID,
			&m.WarehouseFrom, &m.LocationFrom, &m.WarehouseTo, &m.LocationTo, &m.ActorID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByKey suma los cambios registrados para la clave.
func (r *StockMovementRepo) SumByKey(ctx context.Context, key entity.BalanceKey) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(change), 0)::bigint FROM stock_movements
		WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3`,
		key.ProductID, key.WarehouseID, key.LocationID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}
