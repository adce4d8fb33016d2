package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

func TestLedger_ApplyMovementActualizaSaldoYLog(t *testing.T) {
	f := newFixture(t)
	k := key(prodP, whA, locA1)

	f.seed(t, k, 100)
	f.seed(t, k, -30)

	assert.Equal(t, int64(70), f.balance(t, k))
	f.assertConserved(t, k)

	require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		list, err := repos.Movements.List(f.ctx, repository.MovementFilter{ProductID: prodP})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(-30), list[0].Change, "más reciente primero")
		return nil
	}))
}

func TestLedger_ApplyMovementNoValidaDisponibilidad(t *testing.T) {
	f := newFixture(t)
	k := key(prodP, whA, "")
	f.seed(t, k, -5)
	assert.Equal(t, int64(-5), f.balance(t, k))
	f.assertConserved(t, k)
}

func TestLedger_CambioCeroEsInvalido(t *testing.T) {
	f := newFixture(t)
	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		_, err := inventory.LedgerFor(repos).ApplyMovement(f.ctx, inventory.MovementInput{Key: key(prodP, whA, "")})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_GuardedMovementRechazaSaldoNegativo(t *testing.T) {
	f := newFixture(t)
	k := key(prodP, whA, locA1)
	f.seed(t, k, 5)

	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		_, err := inventory.LedgerFor(repos).ApplyGuardedMovement(f.ctx, inventory.MovementInput{
			Key: k, Change: -8, Type: entity.MovementTypeDelivery,
		})
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	shortages := domain.ShortagesOf(err)
	require.Len(t, shortages, 1)
	assert.Equal(t, int64(8), shortages[0].Requested)
	assert.Equal(t, int64(5), shortages[0].Available)

	assert.Equal(t, int64(5), f.balance(t, k))
	f.assertConserved(t, k)
}

func TestLedger_Disponibilidad(t *testing.T) {
	f := newFixture(t)
	f.seed(t, key(prodP, whA, locA1), 10)
	f.seed(t, key(prodP, whA, locA2), 15)
	f.seed(t, key(prodP, whA, ""), 5)

	require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		ledger := inventory.LedgerFor(repos)

		exact, err := ledger.QueryAvailability(f.ctx, key(prodP, whA, locA1), 20)
		require.NoError(t, err)
		assert.Equal(t, inventory.Availability{Available: false, AvailableQuantity: 10}, exact)

		total, err := ledger.QueryWarehouseAvailability(f.ctx, prodP, whA, 20)
		require.NoError(t, err)
		assert.Equal(t, inventory.Availability{Available: true, AvailableQuantity: 30}, total)

		none, err := ledger.QueryBalance(f.ctx, key(prodQ, whB, ""))
		require.NoError(t, err)
		assert.Zero(t, none, "sin fila el saldo es 0")
		return nil
	}))
}

func TestLedger_PlanOutboundReportaTodasLasLineas(t *testing.T) {
	f := newFixture(t)
	f.seed(t, key(prodP, whA, locA1), 10)
	f.seed(t, key(prodQ, whA, ""), 3)

	err := f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		_, err := inventory.LedgerFor(repos).PlanOutbound(f.ctx, whA, []inventory.OutboundLine{
			{ProductID: prodP, LocationID: locA1, Quantity: 6, Strict: true},
			{ProductID: prodP, LocationID: locA1, Quantity: 6, Strict: true},
			{ProductID: prodQ, Quantity: 5},
		})
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	shortages := domain.ShortagesOf(err)
	require.Len(t, shortages, 2)
	assert.Equal(t, 1, shortages[0].LineIndex)
	assert.Equal(t, int64(4), shortages[0].Available, "la primera línea ya reservó 6")
	assert.Equal(t, 2, shortages[1].LineIndex)
	assert.Equal(t, int64(3), shortages[1].Available)
}

func TestLedger_ApplyOutboundDescuentaPorPorciones(t *testing.T) {
	f := newFixture(t)
	f.seed(t, key(prodP, whA, locA1), 4)
	f.seed(t, key(prodP, whA, locA2), 10)

	require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		ledger := inventory.LedgerFor(repos)
		plan, err := ledger.PlanOutbound(f.ctx, whA, []inventory.OutboundLine{{ProductID: prodP, LocationID: locA1, Quantity: 9}})
		require.NoError(t, err)
		movs, err := ledger.ApplyOutbound(f.ctx, whA, plan, func(int) inventory.MovementInput {
			return inventory.MovementInput{Type: entity.MovementTypeTransfer, SourceDocType: entity.DocTypeTransfer, SourceDocID: "t1"}
		})
		require.NoError(t, err)
		assert.Len(t, movs, 2)
		return nil
	}))
	assert.Equal(t, int64(0), f.balance(t, key(prodP, whA, locA1)))
	assert.Equal(t, int64(5), f.balance(t, key(prodP, whA, locA2)))
	f.assertConserved(t, key(prodP, whA, locA1), key(prodP, whA, locA2))
}
