package dto

import "time"

// ─── Recepciones ──────────────────────────────────────────────────────────────

// ReceiptLineRequest línea de recepción.
type ReceiptLineRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	LocationID string `json:"location_id,omitempty"`
	Quantity   int64  `json:"quantity" validate:"gt=0"`
}

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	WarehouseID  string               `json:"warehouse_id" validate:"required"`
	SupplierName string               `json:"supplier_name" validate:"max=200"`
	Lines        []ReceiptLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ReceiptLineResponse línea hidratada.
type ReceiptLineResponse struct {
	ProductID    string `json:"product_id"`
	ProductSKU   string `json:"product_sku,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	LocationID   string `json:"location_id,omitempty"`
	LocationCode string `json:"location_code,omitempty"`
	Quantity     int64  `json:"quantity"`
}

// ReceiptResponse salida de una recepción.
type ReceiptResponse struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	WarehouseID   string                `json:"warehouse_id"`
	WarehouseName string                `json:"warehouse_name,omitempty"`
	SupplierName  string                `json:"supplier_name,omitempty"`
	Status        string                `json:"status"`
	Lines         []ReceiptLineResponse `json:"lines"`
	CreatedBy     string                `json:"created_by"`
	CreatedAt     time.Time             `json:"created_at"`
	ValidatedBy   string                `json:"validated_by,omitempty"`
	ValidatedAt   *time.Time            `json:"validated_at,omitempty"`
}

// ─── Ajustes ──────────────────────────────────────────────────────────────────

// AdjustmentRequest body para POST /api/stock/adjustments.
type AdjustmentRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	LocationID  string `json:"location_id,omitempty"`
	NewQuantity int64  `json:"new_quantity" validate:"min=0"`
	Reason      string `json:"reason" validate:"required,oneof=COUNT_ERROR DAMAGE LOSS OTHER"`
	Remarks     string `json:"remarks" validate:"max=1000"`
}

// AdjustmentResponse ajuste aplicado y su movimiento (nil si delta es 0).
type AdjustmentResponse struct {
	ID               string            `json:"id"`
	ProductID        string            `json:"product_id"`
	WarehouseID      string            `json:"warehouse_id"`
	LocationID       string            `json:"location_id,omitempty"`
	PreviousQuantity int64             `json:"previous_quantity"`
	NewQuantity      int64             `json:"new_quantity"`
	Delta            int64             `json:"delta"`
	Reason           string            `json:"reason"`
	Remarks          string            `json:"remarks,omitempty"`
	Movement         *MovementResponse `json:"movement,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ─── Stock ────────────────────────────────────────────────────────────────────

// BalanceQuery parámetros de GET /api/stock/balance y /api/stock/reconcile.
type BalanceQuery struct {
	ProductID   string `query:"product_id" validate:"required"`
	WarehouseID string `query:"warehouse_id" validate:"required"`
	LocationID  string `query:"location_id"`
	Required    int64  `query:"required" validate:"min=0"`
}

// BalanceResponse saldo de una clave y disponibilidad.
type BalanceResponse struct {
	ProductID            string `json:"product_id"`
	WarehouseID          string `json:"warehouse_id"`
	LocationID           string `json:"location_id,omitempty"`
	Quantity             int64  `json:"quantity"`
	WarehouseQuantity    int64  `json:"warehouse_quantity"`
	Required             int64  `json:"required,omitempty"`
	Available            bool   `json:"available"`
	AvailableAtWarehouse bool   `json:"available_at_warehouse"`
}

// MovementQuery filtros de GET /api/stock/movements.
type MovementQuery struct {
	ProductID     string `query:"product_id"`
	WarehouseID   string `query:"warehouse_id"`
	SourceDocType string `query:"source_doc_type" validate:"omitempty,oneof=RECEIPT DELIVERY TRANSFER REQUISITION ADJUSTMENT"`
	SourceDocID   string `query:"source_doc_id"`
	PageRequest
}

// MovementResponse movimiento del log.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	WarehouseID   string    `json:"warehouse_id"`
	LocationID    string    `json:"location_id,omitempty"`
	Change        int64     `json:"change"`
	Type          string    `json:"movement_type"`
	SourceDocType string    `json:"source_doc_type"`
	SourceDocID   string    `json:"source_doc_id"`
	WarehouseFrom string    `json:"warehouse_from,omitempty"`
	LocationFrom  string    `json:"location_from,omitempty"`
	WarehouseTo   string    `json:"warehouse_to,omitempty"`
	LocationTo    string    `json:"location_to,omitempty"`
	ActorID       string    `json:"actor_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReconciliationResponse compara saldo materializado contra la suma del log.
type ReconciliationResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	LocationID  string `json:"location_id,omitempty"`
	Balance     int64  `json:"balance"`
	MovementSum int64  `json:"movement_sum"`
	Consistent  bool   `json:"consistent"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un SKU
// que se encuentra por debajo de su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	WarehouseID       string `json:"warehouse_id,omitempty"`
	CurrentStock      int64  `json:"current_stock"`
	ReorderPoint      int64  `json:"reorder_point"`
	IdealStock        int64  `json:"ideal_stock"`         // ReorderPoint * 1.5
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}
