package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockflow/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los saldos se protegen con decrementos condicionales y bloqueos de fila, y los documentos con
// la precondición estado+versión, así que basta READ COMMITTED.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTxRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewTxRepos construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewTxRepos(q Querier) inventory.TxRepos {
	return inventory.TxRepos{
		Stock:        NewStockRepository(q),
		Movements:    NewStockMovementRepository(q),
		Receipts:     NewReceiptRepository(q),
		Deliveries:   NewDeliveryRepository(q),
		Transfers:    NewTransferRepository(q),
		Requisitions: NewRequisitionRepository(q),
		Adjustments:  NewAdjustmentRepository(q),
		Numbers:      NewSequenceRepository(q),
	}
}
