package entity

import "time"

// Product representa un producto o SKU (dato maestro, solo lectura para el núcleo).
// El SKU es inmutable una vez referenciado por movimientos.
type Product struct {
	ID           string
	SKU          string
	Name         string
	Unit         string
	ReorderLevel int64 // punto de reorden; 0 = sin alerta
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
