package fulfillment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/fulfillment"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
	"github.com/jhoicas/stockflow/internal/infrastructure/memory"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: bodegas A, B y C; ubicación L1 en A y LB en B; productos P y Q
// ──────────────────────────────────────────────────────────────────────────────

const (
	whA   = "wh-a"
	whB   = "wh-b"
	whC   = "wh-c"
	locA1 = "loc-a1"
	locB  = "loc-b"
	prodP = "prod-p"
	prodQ = "prod-q"
)

var (
	admin     = entity.NewIdentityContext("u-admin", entity.RoleAdmin, "")
	managerA  = entity.NewIdentityContext("u-mgr-a", entity.RoleManager, whA)
	managerB  = entity.NewIdentityContext("u-mgr-b", entity.RoleManager, whB)
	managerC  = entity.NewIdentityContext("u-mgr-c", entity.RoleManager, whC)
	operatorA = entity.NewIdentityContext("u-op-a", entity.RoleOperator, whA)
	operatorB = entity.NewIdentityContext("u-op-b", entity.RoleOperator, whB)
	operatorC = entity.NewIdentityContext("u-op-c", entity.RoleOperator, whC)
)

type fixture struct {
	ctx          context.Context
	store        *memory.Store
	deliveries   *fulfillment.DeliveryUseCase
	transfers    *fulfillment.TransferUseCase
	requisitions *fulfillment.RequisitionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddWarehouse(&entity.Warehouse{ID: whA, Code: "A", Name: "Bodega A"})
	store.AddWarehouse(&entity.Warehouse{ID: whB, Code: "B", Name: "Bodega B"})
	store.AddWarehouse(&entity.Warehouse{ID: whC, Code: "C", Name: "Bodega C"})
	store.AddLocation(&entity.Location{ID: locA1, WarehouseID: whA, Code: "L1"})
	store.AddLocation(&entity.Location{ID: locB, WarehouseID: whB, Code: "LB"})
	store.AddProduct(&entity.Product{ID: prodP, SKU: "SKU-P", Name: "Producto P", Unit: "UND"})
	store.AddProduct(&entity.Product{ID: prodQ, SKU: "SKU-Q", Name: "Producto Q", Unit: "UND"})

	refs := inventory.NewReferences(store)
	prefixes := inventory.DefaultPrefixes()
	log := logger.Nop()
	return &fixture{
		ctx:          context.Background(),
		store:        store,
		deliveries:   fulfillment.NewDeliveryUseCase(store, refs, prefixes, log),
		transfers:    fulfillment.NewTransferUseCase(store, refs, prefixes, log),
		requisitions: fulfillment.NewRequisitionUseCase(store, refs, prefixes, log),
	}
}

func key(product, warehouse, location string) entity.BalanceKey {
	return entity.BalanceKey{ProductID: product, WarehouseID: warehouse, LocationID: location}
}

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

// warehouseTotal suma todas las ubicaciones de la bodega.
func (f *fixture) warehouseTotal(t *testing.T, product, warehouse string) int64 {
	t.Helper()
	var total int64
	require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		av, err := inventory.LedgerFor(repos).QueryWarehouseAvailability(f.ctx, product, warehouse, 0)
		total = av.AvailableQuantity
		return err
	}))
	return total
}

func (f *fixture) movementCount(t *testing.T, docID string) int {
	t.Helper()
	var n int
	require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
		list, err := repos.Movements.List(f.ctx, repository.MovementFilter{SourceDocID: docID})
		n = len(list)
		return err
	}))
	return n
}

func (f *fixture) assertConserved(t *testing.T, keys ...entity.BalanceKey) {
	t.Helper()
	for _, k := range keys {
		var sum int64
		require.NoError(t, f.store.Run(f.ctx, func(repos inventory.TxRepos) error {
			var err error
			sum, err = repos.Movements.SumByKey(f.ctx, k)
			return err
		}))
		require.Equal(t, f.balance(t, k), sum, "conservación en %+v", k)
	}
}
