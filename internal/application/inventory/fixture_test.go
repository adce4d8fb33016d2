package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/infrastructure/memory"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: almacén en memoria con bodegas A, B y ubicaciones L1, L2 (A) y LB (B)
// ──────────────────────────────────────────────────────────────────────────────

const (
	whA   = "wh-a"
	whB   = "wh-b"
	locA1 = "loc-a1"
	locA2 = "loc-a2"
	locB  = "loc-b"
	prodP = "prod-p"
	prodQ = "prod-q"
)

var (
	admin     = entity.NewIdentityContext("u-admin", entity.RoleAdmin, "")
	operatorA = entity.NewIdentityContext("u-op-a", entity.RoleOperator, whA)
	operatorB = entity.NewIdentityContext("u-op-b", entity.RoleOperator, whB)
	managerA  = entity.NewIdentityContext("u-mgr-a", entity.RoleManager, whA)
)

type fixture struct {
	ctx   context.Context
	store *memory.Store
	refs  *inventory.References
	log   *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddWarehouse(&entity.Warehouse{ID: whA, Code: "A", Name: "Bodega A"})
	store.AddWarehouse(&entity.Warehouse{ID: whB, Code: "B", Name: "Bodega B"})
	store.AddLocation(&entity.Location{ID: locA1, WarehouseID: whA, Code: "L1"})
	store.AddLocation(&entity.Location{ID: locA2, WarehouseID: whA, Code: "L2"})
	store.AddLocation(&entity.Location{ID: locB, WarehouseID: whB, Code: "LB"})
	store.AddProduct(&entity.Product{ID: prodP, SKU: "SKU-P", Name: "Producto P", Unit: "UND", ReorderLevel: 10})
	store.AddProduct(&entity.Product{ID: prodQ, SKU: "SKU-Q", Name: "Producto Q", Unit: "UND"})
	return &fixture{ctx: context.Background(), store: store, refs: inventory.NewReferences(store), log: logger.Nop()}
}

func key(product, warehouse, location string) entity.BalanceKey {
	return entity.BalanceKey{ProductID: product, WarehouseID: warehouse, LocationID: location}
}

// seed aplica una entrada directa al libro.
func (f *fixture) seed(t *testing.T, k entity.BalanceKey, qty int64) {
	t.Helper()
	require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		_, err := inventory.LedgerFor(repos).ApplyMovement(f.ctx, inventory.MovementInput{
			Key: k, Change: qty, Type: entity.MovementTypeReceipt,
			SourceDocType: entity.DocTypeReceipt, SourceDocID: "seed", ActorID: "seed",
		})
		return err
	}))
}

func (f *fixture) balance(t *testing.T, k entity.BalanceKey) int64 {
	t.Helper()
	var qty int64
	require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		var err error
		qty, err = inventory.LedgerFor(repos).QueryBalance(f.ctx, k)
		return err
	}))
	return qty
}

func (f *fixture) movementSum(t *testing.T, k entity.BalanceKey) int64 {
	t.Helper()
	var sum int64
	require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		var err error
		sum, err = repos.Movements.SumByKey(f.ctx, k)
		return err
	}))
	return sum
}

// assertConserved saldo == suma de movimientos para cada clave.
func (f *fixture) assertConserved(t *testing.T, keys ...entity.BalanceKey) {
	t.Helper()
	for _, k := range keys {
		require.Equal(t, f.balance(t, k), f.movementSum(t, k), "conservación en %+v", k)
	}
}
