package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

// References valida ids contra los datos maestros antes de abrir la transacción.
type References struct {
	repo repository.ReferenceRepository
}

// NewReferences construye el validador de referencias.
func NewReferences(repo repository.ReferenceRepository) *References {
	return &References{repo: repo}
}

// Product exige que el producto exista.
func (r *References) Product(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return p, nil
}

// Warehouse exige que la bodega exista.
func (r *References) Warehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	w, err := r.repo.GetWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return w, nil
}

// Location exige que la ubicación exista y pertenezca a la bodega. locationID vacío es válido.
func (r *References) Location(ctx context.Context, warehouseID, locationID string) error {
	if locationID == "" {
		return nil
	}
	loc, err := r.repo.GetLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, locationID)
	}
	if loc.WarehouseID != warehouseID {
		return domain.Invalid("la ubicación %s no pertenece a la bodega %s", locationID, warehouseID)
	}
	return nil
}

// Line valida producto, cantidad positiva y ubicación de una línea.
func (r *References) Line(ctx context.Context, index int, productID string, quantity int64, warehouseID, locationID string) error {
	if productID == "" {
		return domain.Invalid("línea %d: product_id requerido", index)
	}
	if quantity <= 0 {
		return domain.Invalid("línea %d: la cantidad debe ser positiva", index)
	}
	if _, err := r.Product(ctx, productID); err != nil {
		return err
	}
	return r.Location(ctx, warehouseID, locationID)
}

// Repository expone el repositorio subyacente para consultas de solo lectura.
func (r *References) Repository() repository.ReferenceRepository { return r.repo }
