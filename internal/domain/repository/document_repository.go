package repository

import (
	"context"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// Los Update de documentos aplican concurrencia optimista: la fila solo se escribe si en BD
// sigue en expectedStatus y con la versión leída; si no, devuelven domain.ErrInvalidStateTransition.
// En éxito incrementan Version en la entidad recibida.

// ReceiptRepository puerto de persistencia de recepciones.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt, expectedStatus string) error
}

// DeliveryRepository puerto de persistencia de entregas.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	GetByRequisition(ctx context.Context, requisitionID string) (*entity.Delivery, error)
	Update(ctx context.Context, delivery *entity.Delivery, expectedStatus string) error
}

// TransferRepository puerto de persistencia de traslados.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	GetByDelivery(ctx context.Context, deliveryID string) (*entity.Transfer, error)
	Update(ctx context.Context, transfer *entity.Transfer, expectedStatus string) error
}

// RequisitionRepository puerto de persistencia de requisiciones.
type RequisitionRepository interface {
	Create(ctx context.Context, requisition *entity.Requisition) error
	GetByID(ctx context.Context, id string) (*entity.Requisition, error)
	Update(ctx context.Context, requisition *entity.Requisition, expectedStatus string) error
}

// AdjustmentRepository puerto de persistencia de ajustes (auditoría).
type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.Adjustment) error
}

// DocumentNumberRepository entrega consecutivos sin huecos por tipo de documento.
type DocumentNumberRepository interface {
	Next(ctx context.Context, docType string) (int64, error)
}
