package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/inventory"
)

func bal(loc string, qty int64) *entity.StockBalance {
	return &entity.StockBalance{ProductID: "p", WarehouseID: "w", LocationID: loc, Quantity: qty}
}

func TestAllocate_PreferidaPrimero(t *testing.T) {
	slices, available := inventory.Allocate([]*entity.StockBalance{bal("L2", 50), bal("L1", 100)}, "L1", 30)
	assert.Equal(t, int64(150), available)
	require.Len(t, slices, 1)
	assert.Equal(t, inventory.Slice{LocationID: "L1", Quantity: 30}, slices[0])
}

func TestAllocate_FallbackSinUbicacionYLuegoMayorCantidad(t *testing.T) {
	balances := []*entity.StockBalance{bal("L1", 5), bal("", 10), bal("L2", 20), bal("L3", 40)}
	slices, available := inventory.Allocate(balances, "L1", 60)
	assert.Equal(t, int64(75), available)
	assert.Equal(t, []inventory.Slice{
		{LocationID: "L1", Quantity: 5},
		{LocationID: "", Quantity: 10},
		{LocationID: "L3", Quantity: 40},
		{LocationID: "L2", Quantity: 5},
	}, slices)
}

func TestAllocate_Insuficiente(t *testing.T) {
	slices, available := inventory.Allocate([]*entity.StockBalance{bal("", 5), bal("L1", -3)}, "", 20)
	assert.Nil(t, slices)
	assert.Equal(t, int64(5), available, "los saldos negativos no suman")
}

func TestReservations_Net(t *testing.T) {
	res := inventory.Reservations{}
	balances := []*entity.StockBalance{bal("L1", 10)}
	slices, _ := inventory.Allocate(res.Net(balances), "L1", 7)
	res.Reserve("p", "w", slices)

	_, available := inventory.Allocate(res.Net(balances), "L1", 7)
	assert.Equal(t, int64(3), available)
	assert.Equal(t, int64(10), balances[0].Quantity, "Net no muta los saldos originales")
}
