package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

// ProductUseCase consultas de productos.
type ProductUseCase struct {
	repo repository.ReferenceRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ReferenceRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// List productos ordenados por SKU con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	total := len(list)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	items := make([]dto.ProductResponse, 0, end-start)
	for _, p := range list[start:end] {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
