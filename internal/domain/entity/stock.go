package entity

import "time"

// BalanceKey identifica una fila de saldo. LocationID vacío = stock a nivel bodega (sin ubicación).
type BalanceKey struct {
	ProductID   string
	WarehouseID string
	LocationID  string
}

// StockBalance es el saldo materializado de un producto en (bodega, ubicación).
// Se crea de forma perezosa con el primer movimiento y se actualiza en sitio.
type StockBalance struct {
	ProductID   string
	WarehouseID string
	LocationID  string
	Quantity    int64
	UpdatedAt   time.Time
}

// Key devuelve la clave del saldo.
func (b StockBalance) Key() BalanceKey {
	return BalanceKey{ProductID: b.ProductID, WarehouseID: b.WarehouseID, LocationID: b.LocationID}
}
