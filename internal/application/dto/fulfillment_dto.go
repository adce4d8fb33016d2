package dto

import "time"

// ─── Entregas ─────────────────────────────────────────────────────────────────

// DeliveryLineRequest línea de entrega.
type DeliveryLineRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	FromLocationID string `json:"from_location_id,omitempty"`
	Quantity       int64  `json:"quantity" validate:"gt=0"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	WarehouseID       string                `json:"warehouse_id" validate:"required"`
	TargetWarehouseID string                `json:"target_warehouse_id,omitempty" validate:"omitempty,nefield=WarehouseID"`
	RequisitionID     string                `json:"requisition_id,omitempty"`
	Notes             string                `json:"notes" validate:"max=2000"`
	Lines             []DeliveryLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DeliveryLineResponse línea hidratada.
type DeliveryLineResponse struct {
	ProductID        string `json:"product_id"`
	ProductSKU       string `json:"product_sku,omitempty"`
	ProductName      string `json:"product_name,omitempty"`
	FromLocationID   string `json:"from_location_id,omitempty"`
	FromLocationCode string `json:"from_location_code,omitempty"`
	Quantity         int64  `json:"quantity"`
}

// DeliveryResponse salida de una entrega.
type DeliveryResponse struct {
	ID                  string                 `json:"id"`
	Number              string                 `json:"number"`
	WarehouseID         string                 `json:"warehouse_id"`
	WarehouseName       string                 `json:"warehouse_name,omitempty"`
	TargetWarehouseID   string                 `json:"target_warehouse_id,omitempty"`
	TargetWarehouseName string                 `json:"target_warehouse_name,omitempty"`
	RequisitionID       string                 `json:"requisition_id,omitempty"`
	Status              string                 `json:"status"`
	Notes               string                 `json:"notes,omitempty"`
	Lines               []DeliveryLineResponse `json:"lines"`
	CreatedBy           string                 `json:"created_by"`
	CreatedAt           time.Time              `json:"created_at"`
	ApprovedBy          string                 `json:"approved_by,omitempty"`
	ApprovedAt          *time.Time             `json:"approved_at,omitempty"`
	RejectedBy          string                 `json:"rejected_by,omitempty"`
	RejectedAt          *time.Time             `json:"rejected_at,omitempty"`
	ValidatedBy         string                 `json:"validated_by,omitempty"`
	ValidatedAt         *time.Time             `json:"validated_at,omitempty"`
}

// ─── Traslados ────────────────────────────────────────────────────────────────

// TransferLineRequest línea de traslado.
type TransferLineRequest struct {
	ProductID        string `json:"product_id" validate:"required"`
	SourceLocationID string `json:"source_location_id,omitempty"`
	TargetLocationID string `json:"target_location_id,omitempty"`
	Quantity         int64  `json:"quantity" validate:"gt=0"`
}

// CreateTransferRequest body para POST /api/transfers.
// Con DeliveryID el traslado se construye desde la entrega y Lines se ignoran.
type CreateTransferRequest struct {
	SourceWarehouseID string                `json:"source_warehouse_id" validate:"required_without=DeliveryID"`
	TargetWarehouseID string                `json:"target_warehouse_id" validate:"required_without=DeliveryID"`
	RequisitionID     string                `json:"requisition_id,omitempty"`
	DeliveryID        string                `json:"delivery_id,omitempty"`
	Lines             []TransferLineRequest `json:"lines" validate:"required_without=DeliveryID,dive"`
}

// TransferLineResponse línea hidratada.
type TransferLineResponse struct {
	ProductID          string `json:"product_id"`
	ProductSKU         string `json:"product_sku,omitempty"`
	ProductName        string `json:"product_name,omitempty"`
	SourceLocationID   string `json:"source_location_id,omitempty"`
	SourceLocationCode string `json:"source_location_code,omitempty"`
	TargetLocationID   string `json:"target_location_id,omitempty"`
	TargetLocationCode string `json:"target_location_code,omitempty"`
	Quantity           int64  `json:"quantity"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID                  string                 `json:"id"`
	Number              string                 `json:"number"`
	SourceWarehouseID   string                 `json:"source_warehouse_id"`
	SourceWarehouseName string                 `json:"source_warehouse_name,omitempty"`
	TargetWarehouseID   string                 `json:"target_warehouse_id"`
	TargetWarehouseName string                 `json:"target_warehouse_name,omitempty"`
	RequisitionID       string                 `json:"requisition_id,omitempty"`
	DeliveryID          string                 `json:"delivery_id,omitempty"`
	Status              string                 `json:"status"`
	Lines               []TransferLineResponse `json:"lines"`
	CreatedBy           string                 `json:"created_by"`
	CreatedAt           time.Time              `json:"created_at"`
	DispatchedBy        string                 `json:"dispatched_by,omitempty"`
	DispatchedAt        *time.Time             `json:"dispatched_at,omitempty"`
	ReceivedBy          string                 `json:"received_by,omitempty"`
	ReceivedAt          *time.Time             `json:"received_at,omitempty"`
}

// ─── Requisiciones ────────────────────────────────────────────────────────────

// RequisitionLineRequest línea de requisición.
type RequisitionLineRequest struct {
	ProductID         string     `json:"product_id" validate:"required"`
	QuantityRequested int64      `json:"quantity_requested" validate:"gt=0"`
	NeededByDate      *time.Time `json:"needed_by_date,omitempty"`
}

// CreateRequisitionRequest body para POST /api/requisitions.
// Draft deja la requisición en DRAFT; por defecto queda SUBMITTED.
type CreateRequisitionRequest struct {
	RequestingWarehouseID      string                   `json:"requesting_warehouse_id" validate:"required"`
	SuggestedSourceWarehouseID string                   `json:"suggested_source_warehouse_id,omitempty" validate:"omitempty,nefield=RequestingWarehouseID"`
	Notes                      string                   `json:"notes" validate:"max=2000"`
	Draft                      bool                     `json:"draft"`
	Lines                      []RequisitionLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ApproveRequisitionRequest body para POST /api/requisitions/:id/approve.
type ApproveRequisitionRequest struct {
	FinalSourceWarehouseID string `json:"final_source_warehouse_id" validate:"required"`
}

// RequisitionLineResponse línea hidratada.
type RequisitionLineResponse struct {
	ProductID         string     `json:"product_id"`
	ProductSKU        string     `json:"product_sku,omitempty"`
	ProductName       string     `json:"product_name,omitempty"`
	QuantityRequested int64      `json:"quantity_requested"`
	NeededByDate      *time.Time `json:"needed_by_date,omitempty"`
}

// RequisitionResponse salida de una requisición.
type RequisitionResponse struct {
	ID                         string                    `json:"id"`
	Number                     string                    `json:"number"`
	RequestingWarehouseID      string                    `json:"requesting_warehouse_id"`
	RequestingWarehouseName    string                    `json:"requesting_warehouse_name,omitempty"`
	SuggestedSourceWarehouseID string                    `json:"suggested_source_warehouse_id,omitempty"`
	FinalSourceWarehouseID     string                    `json:"final_source_warehouse_id,omitempty"`
	Status                     string                    `json:"status"`
	Notes                      string                    `json:"notes,omitempty"`
	Lines                      []RequisitionLineResponse `json:"lines"`
	RequestedBy                string                    `json:"requested_by"`
	CreatedAt                  time.Time                 `json:"created_at"`
	SubmittedAt                *time.Time                `json:"submitted_at,omitempty"`
	ApprovedBy                 string                    `json:"approved_by,omitempty"`
	ApprovedAt                 *time.Time                `json:"approved_at,omitempty"`
	RejectedBy                 string                    `json:"rejected_by,omitempty"`
	RejectedAt                 *time.Time                `json:"rejected_at,omitempty"`
	RejectedReason             string                    `json:"rejected_reason,omitempty"`
}

// ApprovalResponse requisición aprobada y la entrega generada.
type ApprovalResponse struct {
	Requisition RequisitionResponse `json:"requisition"`
	Delivery    DeliveryResponse    `json:"delivery"`
}

// SourceSuggestionDTO candidata de bodega origen para una requisición (consultivo).
type SourceSuggestionDTO struct {
	WarehouseID    string `json:"warehouse_id"`
	WarehouseCode  string `json:"warehouse_code"`
	WarehouseName  string `json:"warehouse_name"`
	LinesCovered   int    `json:"lines_covered"`
	TotalLines     int    `json:"total_lines"`
	CoveredQty     int64  `json:"covered_quantity"`
	FullyAvailable bool   `json:"fully_available"`
}
