package dto

import (
	"context"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

// Hydrator arma las respuestas de lectura resolviendo ids contra los datos maestros.
// Los flujos trabajan solo con ids; la desnormalización ocurre aquí, fuera del núcleo.
// Una referencia que ya no existe se deja sin nombre en lugar de fallar la lectura.
type Hydrator struct {
	refs repository.ReferenceRepository
}

// NewHydrator construye el hidratador.
func NewHydrator(refs repository.ReferenceRepository) *Hydrator {
	return &Hydrator{refs: refs}
}

// lookup cache por respuesta para no repetir consultas con líneas del mismo producto.
type lookup struct {
	ctx        context.Context
	refs       repository.ReferenceRepository
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	locations  map[string]*entity.Location
	err        error
}

func (h *Hydrator) newLookup(ctx context.Context) *lookup {
	return &lookup{
		ctx:        ctx,
		refs:       h.refs,
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		locations:  map[string]*entity.Location{},
	}
}

func (l *lookup) product(id string) (sku, name string) {
	if id == "" || l.err != nil {
		return "", ""
	}
	p, ok := l.products[id]
	if !ok {
		p, l.err = l.refs.GetProduct(l.ctx, id)
		l.products[id] = p
	}
	if p == nil {
		return "", ""
	}
	return p.SKU, p.Name
}

func (l *lookup) warehouse(id string) string {
	if id == "" || l.err != nil {
		return ""
	}
	w, ok := l.warehouses[id]
	if !ok {
		w, l.err = l.refs.GetWarehouse(l.ctx, id)
		l.warehouses[id] = w
	}
	if w == nil {
		return ""
	}
	return w.Name
}

func (l *lookup) location(id string) string {
	if id == "" || l.err != nil {
		return ""
	}
	loc, ok := l.locations[id]
	if !ok {
		loc, l.err = l.refs.GetLocation(l.ctx, id)
		l.locations[id] = loc
	}
	if loc == nil {
		return ""
	}
	return loc.Code
}

// Receipt hidrata una recepción.
func (h *Hydrator) Receipt(ctx context.Context, r *entity.Receipt) (*ReceiptResponse, error) {
	l := h.newLookup(ctx)
	out := &ReceiptResponse{
		ID:            r.ID,
		Number:        r.Number,
		WarehouseID:   r.WarehouseID,
		WarehouseName: l.warehouse(r.WarehouseID),
		SupplierName:  r.SupplierName,
		Status:        r.Status,
		Lines:         make([]ReceiptLineResponse, 0, len(r.Lines)),
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
		ValidatedBy:   r.ValidatedBy,
		ValidatedAt:   r.ValidatedAt,
	}
	for _, line := range r.Lines {
		sku, name := l.product(line.ProductID)
		out.Lines = append(out.Lines, ReceiptLineResponse{
			ProductID:    line.ProductID,
			ProductSKU:   sku,
			ProductName:  name,
			LocationID:   line.LocationID,
			LocationCode: l.location(line.LocationID),
			Quantity:     line.Quantity,
		})
	}
	return out, l.err
}

// Delivery hidrata una entrega.
func (h *Hydrator) Delivery(ctx context.Context, d *entity.Delivery) (*DeliveryResponse, error) {
	l := h.newLookup(ctx)
	out := &DeliveryResponse{
		ID:                  d.ID,
		Number:              d.Number,
		WarehouseID:         d.WarehouseID,
		WarehouseName:       l.warehouse(d.WarehouseID),
		TargetWarehouseID:   d.TargetWarehouseID,
		TargetWarehouseName: l.warehouse(d.TargetWarehouseID),
		RequisitionID:       d.RequisitionID,
		Status:              d.Status,
		Notes:               d.Notes,
		Lines:               make([]DeliveryLineResponse, 0, len(d.Lines)),
		CreatedBy:           d.CreatedBy,
		CreatedAt:           d.CreatedAt,
		ApprovedBy:          d.ApprovedBy,
		ApprovedAt:          d.ApprovedAt,
		RejectedBy:          d.RejectedBy,
		RejectedAt:          d.RejectedAt,
		ValidatedBy:         d.ValidatedBy,
		ValidatedAt:         d.ValidatedAt,
	}
	for _, line := range d.Lines {
		sku, name := l.product(line.ProductID)
		out.Lines = append(out.Lines, DeliveryLineResponse{
			ProductID:        line.ProductID,
			ProductSKU:       sku,
			ProductName:      name,
			FromLocationID:   line.FromLocationID,
			FromLocationCode: l.location(line.FromLocationID),
			Quantity:         line.Quantity,
		})
	}
	return out, l.err
}

// Transfer hidrata un traslado.
func (h *Hydrator) Transfer(ctx context.Context, t *entity.Transfer) (*TransferResponse, error) {
	l := h.newLookup(ctx)
	out := &TransferResponse{
		ID:                  t.ID,
		Number:              t.Number,
		SourceWarehouseID:   t.SourceWarehouseID,
		SourceWarehouseName: l.warehouse(t.SourceWarehouseID),
		TargetWarehouseID:   t.TargetWarehouseID,
		TargetWarehouseName: l.warehouse(t.TargetWarehouseID),
		RequisitionID:       t.RequisitionID,
		DeliveryID:          t.DeliveryID,
		Status:              t.Status,
		Lines:               make([]TransferLineResponse, 0, len(t.Lines)),
		CreatedBy:           t.CreatedBy,
		CreatedAt:           t.CreatedAt,
		DispatchedBy:        t.DispatchedBy,
		DispatchedAt:        t.DispatchedAt,
		ReceivedBy:          t.ReceivedBy,
		ReceivedAt:          t.ReceivedAt,
	}
	for _, line := range t.Lines {
		sku, name := l.product(line.ProductID)
		out.Lines = append(out.Lines, TransferLineResponse{
			ProductID:          line.ProductID,
			ProductSKU:         sku,
			ProductName:        name,
			SourceLocationID:   line.SourceLocationID,
			SourceLocationCode: l.location(line.SourceLocationID),
			TargetLocationID:   line.TargetLocationID,
			TargetLocationCode: l.location(line.TargetLocationID),
			Quantity:           line.Quantity,
		})
	}
	return out, l.err
}

// Requisition hidrata una requisición.
func (h *Hydrator) Requisition(ctx context.Context, r *entity.Requisition) (*RequisitionResponse, error) {
	l := h.newLookup(ctx)
	out := &RequisitionResponse{
		ID:                         r.ID,
		Number:                     r.Number,
		RequestingWarehouseID:      r.RequestingWarehouseID,
		RequestingWarehouseName:    l.warehouse(r.RequestingWarehouseID),
		SuggestedSourceWarehouseID: r.SuggestedSourceWarehouseID,
		FinalSourceWarehouseID:     r.FinalSourceWarehouseID,
		Status:                     r.Status,
		Notes:                      r.Notes,
		Lines:                      make([]RequisitionLineResponse, 0, len(r.Lines)),
		RequestedBy:                r.RequestedBy,
		CreatedAt:                  r.CreatedAt,
		SubmittedAt:                r.SubmittedAt,
		ApprovedBy:                 r.ApprovedBy,
		ApprovedAt:                 r.ApprovedAt,
		RejectedBy:                 r.RejectedBy,
		RejectedAt:                 r.RejectedAt,
		RejectedReason:             r.RejectedReason,
	}
	for _, line := range r.Lines {
		sku, name := l.product(line.ProductID)
		out.Lines = append(out.Lines, RequisitionLineResponse{
			ProductID:         line.ProductID,
			ProductSKU:        sku,
			ProductName:       name,
			QuantityRequested: line.QuantityRequested,
			NeededByDate:      line.NeededByDate,
		})
	}
	return out, l.err
}

// ToMovementResponse convierte un movimiento (sin hidratar).
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		WarehouseID:   m.WarehouseID,
		LocationID:    m.LocationID,
		Change:        m.Change,
		Type:          m.Type,
		SourceDocType: m.SourceDocType,
		SourceDocID:   m.SourceDocID,
		WarehouseFrom: m.WarehouseFrom,
		LocationFrom:  m.LocationFrom,
		WarehouseTo:   m.WarehouseTo,
		LocationTo:    m.LocationTo,
		ActorID:       m.ActorID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToAdjustmentResponse convierte un ajuste y su movimiento opcional.
func ToAdjustmentResponse(a *entity.Adjustment, m *entity.StockMovement) AdjustmentResponse {
	out := AdjustmentResponse{
		ID:               a.ID,
		ProductID:        a.ProductID,
		WarehouseID:      a.WarehouseID,
		LocationID:       a.LocationID,
		PreviousQuantity: a.PreviousQuantity,
		NewQuantity:      a.NewQuantity,
		Delta:            a.Delta,
		Reason:           a.Reason,
		Remarks:          a.Remarks,
		CreatedAt:        a.CreatedAt,
	}
	if m != nil {
		mr := ToMovementResponse(m)
		out.Movement = &mr
	}
	return out
}

// ToWarehouseResponse convierte una bodega.
func ToWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID, Code: w.Code, Name: w.Name, Address: w.Address, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
}

// ToLocationResponse convierte una ubicación.
func ToLocationResponse(l *entity.Location) LocationResponse {
	return LocationResponse{ID: l.ID, WarehouseID: l.WarehouseID, Code: l.Code, Name: l.Name, CreatedAt: l.CreatedAt}
}

// ToProductResponse convierte un producto.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Unit:         p.Unit,
		ReorderLevel: p.ReorderLevel,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
