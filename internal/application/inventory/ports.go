package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Stock        repository.StockRepository
	Movements    repository.StockMovementRepository
	Receipts     repository.ReceiptRepository
	Deliveries   repository.DeliveryRepository
	Transfers    repository.TransferRepository
	Requisitions repository.RequisitionRepository
	Adjustments  repository.AdjustmentRepository
	Numbers      repository.DocumentNumberRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo lo escrito; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// DocumentPrefixes prefijos de numeración por tipo de documento.
type DocumentPrefixes struct {
	Receipt     string
	Delivery    string
	Transfer    string
	Requisition string
}

// DefaultPrefixes REC, DEL, TRF, REQ.
func DefaultPrefixes() DocumentPrefixes {
	return DocumentPrefixes{Receipt: "REC", Delivery: "DEL", Transfer: "TRF", Requisition: "REQ"}
}

// FormatDocumentNumber renderiza PREFIJO/00001.
func FormatDocumentNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s/%05d", prefix, n)
}

// NextDocumentNumber toma el siguiente consecutivo dentro de la transacción en curso.
func NextDocumentNumber(ctx context.Context, numbers repository.DocumentNumberRepository, docType, prefix string) (string, error) {
	n, err := numbers.Next(ctx, docType)
	if err != nil {
		return "", fmt.Errorf("siguiente número %s: %w", docType, err)
	}
	return FormatDocumentNumber(prefix, n), nil
}
