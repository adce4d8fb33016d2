package entity

import "time"

// Estados de un traslado.
const (
	TransferStatusDraft     = "DRAFT"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusDone      = "DONE"
)

// TransferLine línea de traslado entre bodegas.
type TransferLine struct {
	ProductID        string `json:"product_id"`
	SourceLocationID string `json:"source_location_id,omitempty"`
	TargetLocationID string `json:"target_location_id,omitempty"`
	Quantity         int64  `json:"quantity"`
}

// Transfer movimiento en dos fases: dispatch descuenta en origen, accept acredita en destino.
// Entre ambas fases el stock está "en tránsito".
type Transfer struct {
	ID                string
	Number            string
	SourceWarehouseID string
	TargetWarehouseID string
	RequisitionID     string
	DeliveryID        string
	Lines             []TransferLine
	Status            string
	Version           int
	CreatedBy         string
	CreatedAt         time.Time
	DispatchedBy      string
	DispatchedAt      *time.Time
	ReceivedBy        string
	ReceivedAt        *time.Time
	UpdatedAt         time.Time
}

// IsTerminal informa si el traslado ya no admite transiciones.
func (t *Transfer) IsTerminal() bool { return t.Status == TransferStatusDone }
