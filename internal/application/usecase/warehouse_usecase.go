// Package usecase lecturas de datos maestros para la capa HTTP. El CRUD de productos, bodegas y
// ubicaciones vive fuera del servicio; aquí solo se consultan.
package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/authz"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

// WarehouseUseCase consultas de bodegas y ubicaciones.
type WarehouseUseCase struct {
	repo repository.ReferenceRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.ReferenceRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// List todas las bodegas. Cualquier actor autenticado las ve: se necesitan para elegir destinos
// y orígenes de requisiciones.
func (uc *WarehouseUseCase) List(ctx context.Context) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, dto.ToWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: len(items), Total: len(items)},
	}, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	out := dto.ToWarehouseResponse(w)
	return &out, nil
}

// Locations ubicaciones de una bodega; requiere la bodega en alcance.
func (uc *WarehouseUseCase) Locations(ctx context.Context, ident entity.IdentityContext, warehouseID string) ([]dto.LocationResponse, error) {
	if err := authz.CheckViewWarehouse(ident, warehouseID); err != nil {
		return nil, err
	}
	if _, err := uc.GetByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListLocations(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.ToLocationResponse(l))
	}
	return out, nil
}
