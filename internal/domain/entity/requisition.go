package entity

import "time"

// Estados de una requisición.
const (
	RequisitionStatusDraft     = "DRAFT"
	RequisitionStatusSubmitted = "SUBMITTED"
	RequisitionStatusApproved  = "APPROVED"
	RequisitionStatusRejected  = "REJECTED"
)

// RequisitionLine cantidad solicitada de un producto.
type RequisitionLine struct {
	ProductID         string     `json:"product_id"`
	QuantityRequested int64      `json:"quantity_requested"`
	NeededByDate      *time.Time `json:"needed_by_date,omitempty"`
}

// Requisition solicitud de stock de una bodega a otra.
// FinalSourceWarehouseID solo se fija al aprobar y nunca es igual a RequestingWarehouseID.
type Requisition struct {
	ID                         string
	Number                     string
	RequestingWarehouseID      string
	SuggestedSourceWarehouseID string
	FinalSourceWarehouseID     string
	Lines                      []RequisitionLine
	Status                     string
	Notes                      string
	Version                    int
	RequestedBy                string
	CreatedAt                  time.Time
	SubmittedAt                *time.Time
	ApprovedBy                 string
	ApprovedAt                 *time.Time
	RejectedBy                 string
	RejectedAt                 *time.Time
	RejectedReason             string
	UpdatedAt                  time.Time
}

// IsTerminal informa si la requisición ya no admite transiciones.
func (r *Requisition) IsTerminal() bool {
	return r.Status == RequisitionStatusApproved || r.Status == RequisitionStatusRejected
}
