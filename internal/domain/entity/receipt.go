package entity

import "time"

// Estados de una recepción.
const (
	ReceiptStatusDraft   = "DRAFT"
	ReceiptStatusWaiting = "WAITING"
	ReceiptStatusDone    = "DONE"
)

// ReceiptLine línea de recepción. LocationID vacío = stock a nivel bodega.
type ReceiptLine struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id,omitempty"`
	Quantity   int64  `json:"quantity"`
}

// Receipt documento de entrada de mercancía (una sola compuerta: WAITING → DONE).
type Receipt struct {
	ID           string
	Number       string
	WarehouseID  string
	SupplierName string
	Lines        []ReceiptLine
	Status       string
	Version      int
	CreatedBy    string
	CreatedAt    time.Time
	ValidatedBy  string
	ValidatedAt  *time.Time
	UpdatedAt    time.Time
}

// IsTerminal informa si la recepción ya no admite transiciones.
func (r *Receipt) IsTerminal() bool { return r.Status == ReceiptStatusDone }
