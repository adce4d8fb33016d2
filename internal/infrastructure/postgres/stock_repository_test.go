package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// newMockStockRepository crea un StockRepo sobre un pool simulado.
func newMockStockRepository(t *testing.T) (*StockRepo, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewStockRepository(mock), mock
}

var stockKey = entity.BalanceKey{ProductID: "prod-1", WarehouseID: "wh-1", LocationID: ""}

var (
	sqlDecrement   = `(?s)` + regexp.QuoteMeta(`UPDATE stock_balances SET quantity = quantity + $4, updated_at = now()`) + `.*` + regexp.QuoteMeta(`AND quantity + $4 >= 0`)
	sqlUpsert      = `(?s)` + regexp.QuoteMeta(`INSERT INTO stock_balances (product_id, warehouse_id, location_id, quantity, updated_at)`) + `.*` + regexp.QuoteMeta(`DO UPDATE SET quantity = stock_balances.quantity + EXCLUDED.quantity`)
	sqlEnsureRow   = `(?s)` + regexp.QuoteMeta(`INSERT INTO stock_balances`) + `.*` + regexp.QuoteMeta(`DO NOTHING`)
	sqlBalance     = regexp.QuoteMeta(`FROM stock_balances WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3`)
	sqlBalanceLock = `(?s)` + sqlBalance + `.*FOR UPDATE`
)

func balanceRows(qty int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"product_id", "warehouse_id", "location_id", "quantity", "updated_at"}).
		AddRow(stockKey.ProductID, stockKey.WarehouseID, stockKey.LocationID, qty, time.Now().UTC())
}

func TestStockRepo_AddIfSufficient(t *testing.T) {
	t.Run("descuenta cuando alcanza", func(t *testing.T) {
		repo, mock := newMockStockRepository(t)

		mock.ExpectQuery(sqlDecrement).
			WithArgs("prod-1", "wh-1", "", int64(-3)).
			WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(int64(7)))

		qty, ok, err := repo.AddIfSufficient(context.Background(), stockKey, -3)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(7), qty)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sin filas devuelve el saldo vigente", func(t *testing.T) {
		repo, mock := newMockStockRepository(t)

		mock.ExpectQuery(sqlDecrement).
			WithArgs("prod-1", "wh-1", "", int64(-5)).
			WillReturnRows(pgxmock.NewRows([]string{"quantity"}))
		mock.ExpectQuery(sqlBalance).
			WithArgs("prod-1", "wh-1", "").
			WillReturnRows(balanceRows(2))

		qty, ok, err := repo.AddIfSufficient(context.Background(), stockKey, -5)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(2), qty)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("incremento usa el upsert", func(t *testing.T) {
		repo, mock := newMockStockRepository(t)

		mock.ExpectQuery(sqlUpsert).
			WithArgs("prod-1", "wh-1", "", int64(4)).
			WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(int64(4)))

		qty, ok, err := repo.AddIfSufficient(context.Background(), stockKey, 4)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(4), qty)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error del almacén se propaga", func(t *testing.T) {
		repo, mock := newMockStockRepository(t)
		connErr := errors.New("conexión cerrada")

		mock.ExpectQuery(sqlDecrement).
			WithArgs("prod-1", "wh-1", "", int64(-1)).
			WillReturnError(connErr)

		_, ok, err := repo.AddIfSufficient(context.Background(), stockKey, -1)
		assert.False(t, ok)
		assert.ErrorIs(t, err, connErr)
		assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// El ledger no valida disponibilidad: Add acepta dejar el saldo negativo igual que el almacén en memoria.
func TestStockRepo_AddPermiteSaldoNegativo(t *testing.T) {
	repo, mock := newMockStockRepository(t)

	mock.ExpectQuery(sqlUpsert).
		WithArgs("prod-1", "wh-1", "", int64(-5)).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(int64(-5)))

	qty, err := repo.Add(context.Background(), stockKey, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), qty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_GetForUpdateCreaFilaYBloquea(t *testing.T) {
	repo, mock := newMockStockRepository(t)

	mock.ExpectExec(sqlEnsureRow).
		WithArgs("prod-1", "wh-1", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(sqlBalanceLock).
		WithArgs("prod-1", "wh-1", "").
		WillReturnRows(balanceRows(0))

	b, err := repo.GetForUpdate(context.Background(), stockKey)
	require.NoError(t, err)
	assert.Equal(t, "prod-1", b.ProductID)
	assert.Equal(t, int64(0), b.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_GetSinFilaEsCero(t *testing.T) {
	repo, mock := newMockStockRepository(t)

	mock.ExpectQuery(sqlBalance).
		WithArgs("prod-1", "wh-1", "").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "warehouse_id", "location_id", "quantity", "updated_at"}))

	b, err := repo.Get(context.Background(), stockKey)
	require.NoError(t, err)
	assert.Equal(t, stockKey.WarehouseID, b.WarehouseID)
	assert.Equal(t, int64(0), b.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
