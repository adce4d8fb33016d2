package entity

import "time"

// Warehouse representa una bodega (código único).
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location es una ubicación física dentro de exactamente una bodega.
type Location struct {
	ID          string
	WarehouseID string
	Code        string
	Name        string
	CreatedAt   time.Time
}
