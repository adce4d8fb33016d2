package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*Store)(nil)

// AddProduct siembra un producto.
func (s *Store) AddProduct(p *entity.Product) {
	s.refsMu.Lock()
	defer s.refsMu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// AddWarehouse siembra una bodega.
func (s *Store) AddWarehouse(w *entity.Warehouse) {
	s.refsMu.Lock()
	defer s.refsMu.Unlock()
	cp := *w
	s.warehouses[w.ID] = &cp
}

// AddLocation siembra una ubicación.
func (s *Store) AddLocation(l *entity.Location) {
	s.refsMu.Lock()
	defer s.refsMu.Unlock()
	cp := *l
	s.locations[l.ID] = &cp
}

func (s *Store) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	s.refsMu.RLock()
	defer s.refsMu.RUnlock()
	if p, ok := s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) ListProducts(_ context.Context) ([]*entity.Product, error) {
	s.refsMu.RLock()
	defer s.refsMu.RUnlock()
	out := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (s *Store) GetWarehouse(_ context.Context, id string) (*entity.Warehouse, error) {
	s.refsMu.RLock()
	defer s.refsMu.RUnlock()
	if w, ok := s.warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) ListWarehouses(_ context.Context) ([]*entity.Warehouse, error) {
	s.refsMu.RLock()
	defer s.refsMu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(s.warehouses))
	for _, w := range s.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) GetLocation(_ context.Context, id string) (*entity.Location, error) {
	s.refsMu.RLock()
	defer s.refsMu.RUnlock()
	if l, ok := s.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) ListLocations(_ context.Context, warehouseID string) ([]*entity.Location, error) {
	s.refsMu.RLock()
	defer s.refsMu.RUnlock()
	out := make([]*entity.Location, 0)
	for _, l := range s.locations {
		if l.WarehouseID == warehouseID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
