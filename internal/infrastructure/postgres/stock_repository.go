package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// location_id = '' representa el stock a nivel bodega.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const balanceColumns = `product_id, warehouse_id, location_id, quantity, updated_at`

func scanBalance(row pgx.Row) (*entity.StockBalance, error) {
	var b entity.StockBalance
	if err := row.Scan(&b.ProductID, &b.WarehouseID, &b.LocationID, &b.Quantity, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func zeroBalance(key entity.BalanceKey) *entity.StockBalance {
	return &entity.StockBalance{ProductID: key.ProductID, WarehouseID: key.WarehouseID, LocationID: key.LocationID}
}

// Get obtiene el saldo de la clave; sin fila devuelve cantidad 0.
func (r *StockRepo) Get(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3`
	b, err := scanBalance(r.q.QueryRow(ctx, query, key.ProductID, key.WarehouseID, key.LocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroBalance(key), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE). Si no existe se crea en 0
// primero para que el bloqueo también cubra claves sin movimientos.
func (r *StockRepo) GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_balances (product_id, warehouse_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, warehouse_id, location_id) DO NOTHING`,
		key.ProductID, key.WarehouseID, key.LocationID)
	if err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3
		FOR UPDATE`
	b, err := scanBalance(r.q.QueryRow(ctx, query, key.ProductID, key.WarehouseID, key.LocationID))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return b, nil
}

// ListByWarehouse todas las filas de un producto en una bodega.
func (r *StockRepo) ListByWarehouse(ctx context.Context, productID, warehouseID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY location_id`
	return r.list(ctx, query, productID, warehouseID)
}

// ListByProduct todas las filas de un producto en todas las bodegas.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances WHERE product_id = $1
		ORDER BY warehouse_id, location_id`
	return r.list(ctx, query, productID)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockBalance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Add suma change al saldo (upsert). No verifica disponibilidad: el saldo puede quedar negativo.
func (r *StockRepo) Add(ctx context.Context, key entity.BalanceKey, change int64) (int64, error) {
	query := `
		INSERT INTO stock_balances (product_id, warehouse_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id, location_id)
		DO UPDATE SET quantity = stock_balances.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var qty int64
	err := r.q.QueryRow(ctx, query, key.ProductID, key.WarehouseID, key.LocationID, change).Scan(&qty)
	if err != nil {
		return 0, fmt.Errorf("add stock: %w", err)
	}
	return qty, nil
}

// AddIfSufficient decremento condicional: el UPDATE solo aplica si el saldo resultante es >= 0.
// Si no aplica devuelve ok=false con el saldo vigente.
func (r *StockRepo) AddIfSufficient(ctx context.Context, key entity.BalanceKey, change int64) (int64, bool, error) {
	if change >= 0 {
		qty, err := r.Add(ctx, key, change)
		return qty, err == nil, err
	}
	query := `
		UPDATE stock_balances SET quantity = quantity + $4, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3 AND quantity + $4 >= 0
		RETURNING quantity`
	var qty int64
	err := r.q.QueryRow(ctx, query, key.ProductID, key.WarehouseID, key.LocationID, change).Scan(&qty)
	if err == nil {
		return qty, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("decrement stock: %w", err)
	}
	current, err := r.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}
	return current.Quantity, false, nil
}
