package memory

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// seedFile datos maestros iniciales del almacén en memoria (YAML o JSON).
type seedFile struct {
	Warehouses []seedWarehouse `mapstructure:"warehouses"`
	Products   []seedProduct   `mapstructure:"products"`
}

type seedWarehouse struct {
	ID        string         `mapstructure:"id"`
	Code      string         `mapstructure:"code"`
	Name      string         `mapstructure:"name"`
	Address   string         `mapstructure:"address"`
	Locations []seedLocation `mapstructure:"locations"`
}

type seedLocation struct {
	ID   string `mapstructure:"id"`
	Code string `mapstructure:"code"`
	Name string `mapstructure:"name"`
}

type seedProduct struct {
	ID           string `mapstructure:"id"`
	SKU          string `mapstructure:"sku"`
	Name         string `mapstructure:"name"`
	Unit         string `mapstructure:"unit"`
	ReorderLevel int64  `mapstructure:"reorder_level"`
}

// LoadSeed crea un almacén con las bodegas, ubicaciones y productos del archivo.
// El formato se deduce de la extensión (.yaml, .yml, .json).
func LoadSeed(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("leer semilla %s: %w", path, err)
	}
	var f seedFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decodificar semilla %s: %w", path, err)
	}
	if len(f.Warehouses) == 0 || len(f.Products) == 0 {
		return nil, fmt.Errorf("semilla %s: se requiere al menos una bodega y un producto", path)
	}

	s := NewStore()
	now := time.Now().UTC()
	seen := map[string]bool{}
	unique := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("semilla %s: %s sin id", path, kind)
		}
		if seen[kind+"/"+id] {
			return fmt.Errorf("semilla %s: %s %s duplicado", path, kind, id)
		}
		seen[kind+"/"+id] = true
		return nil
	}

	for _, w := range f.Warehouses {
		if err := unique("bodega", w.ID); err != nil {
			return nil, err
		}
		s.AddWarehouse(&entity.Warehouse{ID: w.ID, Code: w.Code, Name: w.Name, Address: w.Address, CreatedAt: now, UpdatedAt: now})
		for _, l := range w.Locations {
			if err := unique("ubicación", l.ID); err != nil {
				return nil, err
			}
			s.AddLocation(&entity.Location{ID: l.ID, WarehouseID: w.ID, Code: l.Code, Name: l.Name, CreatedAt: now})
		}
	}
	for _, p := range f.Products {
		if err := unique("producto", p.ID); err != nil {
			return nil, err
		}
		if p.ReorderLevel < 0 {
			return nil, fmt.Errorf("semilla %s: reorder_level negativo en producto %s", path, p.ID)
		}
		unit := p.Unit
		if unit == "" {
			unit = "UND"
		}
		s.AddProduct(&entity.Product{ID: p.ID, SKU: p.SKU, Name: p.Name, Unit: unit, ReorderLevel: p.ReorderLevel, CreatedAt: now, UpdatedAt: now})
	}
	return s, nil
}
