package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/infrastructure/memory"
)

func newStore() *memory.Store {
	s := memory.NewStore()
	s.AddWarehouse(&entity.Warehouse{ID: "wh-b", Code: "B", Name: "Bodega B"})
	s.AddWarehouse(&entity.Warehouse{ID: "wh-a", Code: "A", Name: "Bodega A"})
	s.AddLocation(&entity.Location{ID: "loc-2", WarehouseID: "wh-a", Code: "L2"})
	s.AddLocation(&entity.Location{ID: "loc-1", WarehouseID: "wh-a", Code: "L1"})
	for i := 1; i <= 5; i++ {
		s.AddProduct(&entity.Product{ID: fmt.Sprintf("p-%d", i), SKU: fmt.Sprintf("SKU-%d", i), Name: "Producto"})
	}
	return s
}

func TestWarehouseUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWarehouseUseCase(newStore())

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "A", list.Items[0].Code)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	op := entity.NewIdentityContext("u", entity.RoleOperator, "wh-a")
	locs, err := uc.Locations(ctx, op, "wh-a")
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "L1", locs[0].Code)

	_, err = uc.Locations(ctx, op, "wh-b")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductUseCase_Paginates(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(newStore())

	page, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "SKU-4", page.Items[0].SKU)
	assert.Equal(t, 5, page.Page.Total)

	page, err = uc.List(ctx, dto.PageRequest{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 50, page.Page.Limit)

	p, err := uc.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", p.SKU)
	_, err = uc.GetByID(ctx, "p-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
