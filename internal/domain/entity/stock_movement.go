package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeReceipt    = "RECEIPT"
	MovementTypeDelivery   = "DELIVERY"
	MovementTypeTransfer   = "TRANSFER"
	MovementTypeAdjustment = "ADJUSTMENT"
)

// Tipos de documento origen de un movimiento.
const (
	DocTypeReceipt     = "RECEIPT"
	DocTypeDelivery    = "DELIVERY"
	DocTypeTransfer    = "TRANSFER"
	DocTypeRequisition = "REQUISITION"
	DocTypeAdjustment  = "ADJUSTMENT"
)

// StockMovement es un cambio de cantidad inmutable (append-only) contra un saldo.
// ProductID+WarehouseID+LocationID es el saldo afectado; From/To son enlaces informativos del documento.
// Para cada clave, la suma de Change es igual a StockBalance.Quantity.
type StockMovement struct {
	ID            string
	ProductID     string
	WarehouseID   string
	LocationID    string
	Change        int64 // positivo entrada, negativo salida
	Type          string
	SourceDocType string
	SourceDocID   string
	WarehouseFrom string
	LocationFrom  string
	WarehouseTo   string
	LocationTo    string
	ActorID       string
	CreatedAt     time.Time
}

// Key devuelve la clave del saldo afectado.
func (m StockMovement) Key() BalanceKey {
	return BalanceKey{ProductID: m.ProductID, WarehouseID: m.WarehouseID, LocationID: m.LocationID}
}
