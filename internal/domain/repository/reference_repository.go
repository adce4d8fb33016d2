package repository

import (
	"context"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// ReferenceRepository consultas de datos maestros (productos, bodegas, ubicaciones).
// El CRUD de estos datos vive fuera del núcleo; aquí solo se leen. Devuelve (nil, nil) si no existe.
type ReferenceRepository interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]*entity.Warehouse, error)
	GetLocation(ctx context.Context, id string) (*entity.Location, error)
	ListLocations(ctx context.Context, warehouseID string) ([]*entity.Location, error)
}
