package entity

import "time"

// Estados de una entrega.
const (
	DeliveryStatusDraft    = "DRAFT"
	DeliveryStatusWaiting  = "WAITING"
	DeliveryStatusReady    = "READY"
	DeliveryStatusDone     = "DONE"
	DeliveryStatusRejected = "REJECTED"
)

// DeliveryLine línea de entrega. FromLocationID vacío = stock a nivel bodega.
type DeliveryLine struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id,omitempty"`
	Quantity       int64  `json:"quantity"`
}

// Delivery documento de salida. WarehouseID es la bodega origen.
// Si RequisitionID está presente, la entrega solo puede completarse a través de un Transfer.
type Delivery struct {
	ID                string
	Number            string
	WarehouseID       string
	TargetWarehouseID string
	RequisitionID     string
	Lines             []DeliveryLine
	Status            string
	Notes             string
	Version           int
	CreatedBy         string
	CreatedAt         time.Time
	ApprovedBy        string
	ApprovedAt        *time.Time
	RejectedBy        string
	RejectedAt        *time.Time
	ValidatedBy       string
	ValidatedAt       *time.Time
	UpdatedAt         time.Time
}

// HasRequisition informa si la entrega nació de una requisición.
func (d *Delivery) HasRequisition() bool { return d.RequisitionID != "" }

// IsTerminal informa si la entrega ya no admite transiciones.
func (d *Delivery) IsTerminal() bool {
	return d.Status == DeliveryStatusDone || d.Status == DeliveryStatusRejected
}
