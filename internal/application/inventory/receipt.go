package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/authz"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// ReceiptUseCase flujo de recepciones: WAITING → DONE, con entrada de stock al validar.
type ReceiptUseCase struct {
	tx     TxRunner
	refs   *References
	prefix string
	log    *logger.Logger
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(tx TxRunner, refs *References, prefixes DocumentPrefixes, log *logger.Logger) *ReceiptUseCase {
	return &ReceiptUseCase{tx: tx, refs: refs, prefix: prefixes.Receipt, log: log.Component("receipt")}
}

// CreateReceipt crea una recepción en WAITING.
func (uc *ReceiptUseCase) CreateReceipt(ctx context.Context, id entity.IdentityContext, in dto.CreateReceiptRequest) (*entity.Receipt, error) {
	if err := authz.CheckCreateReceipt(id, in.WarehouseID); err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("la recepción no tiene líneas")
	}
	if _, err := uc.refs.Warehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	lines := make([]entity.ReceiptLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if err := uc.refs.Line(ctx, i, l.ProductID, l.Quantity, in.WarehouseID, l.LocationID); err != nil {
			return nil, err
		}
		lines = append(lines, entity.ReceiptLine{ProductID: l.ProductID, LocationID: l.LocationID, Quantity: l.Quantity})
	}

	now := time.Now().UTC()
	receipt := &entity.Receipt{
		ID:           uuid.New().String(),
		WarehouseID:  in.WarehouseID,
		SupplierName: in.SupplierName,
		Lines:        lines,
		Status:       entity.ReceiptStatusWaiting,
		CreatedBy:    id.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		number, err := NextDocumentNumber(ctx, repos.Numbers, entity.DocTypeReceipt, uc.prefix)
		if err != nil {
			return err
		}
		receipt.Number = number
		return repos.Receipts.Create(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}
	LogTransition(uc.log, entity.DocTypeReceipt, receipt.ID, receipt.Number, "", receipt.Status, id.UserID)
	return receipt, nil
}

// ValidateReceipt pasa la recepción a DONE e incrementa el stock de cada línea.
func (uc *ReceiptUseCase) ValidateReceipt(ctx context.Context, id entity.IdentityContext, receiptID string) (*entity.Receipt, error) {
	var receipt *entity.Receipt
	var from string
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		r, err := repos.Receipts.GetByID(ctx, receiptID)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, receiptID)
		}
		if err := authz.CheckValidateReceipt(id, r); err != nil {
			return err
		}
		from = r.Status
		now := time.Now().UTC()
		r.Status = entity.ReceiptStatusDone
		r.ValidatedBy = id.UserID
		r.ValidatedAt = &now
		r.UpdatedAt = now
		if err := repos.Receipts.Update(ctx, r, from); err != nil {
			if errors.Is(err, domain.ErrInvalidStateTransition) {
				return domain.ErrAlreadyValidated
			}
			return err
		}
		ledger := LedgerFor(repos)
		for _, line := range r.Lines {
			_, err := ledger.ApplyMovement(ctx, MovementInput{
				Key:           entity.BalanceKey{ProductID: line.ProductID, WarehouseID: r.WarehouseID, LocationID: line.LocationID},
				Change:        line.Quantity,
				Type:          entity.MovementTypeReceipt,
				SourceDocType: entity.DocTypeReceipt,
				SourceDocID:   r.ID,
				ActorID:       id.UserID,
				WarehouseTo:   r.WarehouseID,
				LocationTo:    line.LocationID,
			})
			if err != nil {
				return err
			}
		}
		receipt = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	LogTransition(uc.log, entity.DocTypeReceipt, receipt.ID, receipt.Number, from, receipt.Status, id.UserID)
	return receipt, nil
}

// GetReceipt lectura por id.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, id entity.IdentityContext, receiptID string) (*entity.Receipt, error) {
	var receipt *entity.Receipt
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		r, err := repos.Receipts.GetByID(ctx, receiptID)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, receiptID)
		}
		receipt = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := authz.CheckViewWarehouse(id, receipt.WarehouseID); err != nil {
		return nil, err
	}
	return receipt, nil
}

// LogTransition registra una transición exitosa de documento.
func LogTransition(log *logger.Logger, docType, id, number, from, to, actor string) {
	log.Info().
		Str("document", docType).
		Str("id", id).
		Str("number", number).
		Str("from", from).
		Str("to", to).
		Str("actor", actor).
		Msg("transición de documento")
}

// LogRejectedStock registra un rechazo por stock insuficiente.
func LogRejectedStock(log *logger.Logger, docType, id string, err error) {
	if shortages := domain.ShortagesOf(err); len(shortages) > 0 {
		log.Warn().
			Str("document", docType).
			Str("id", id).
			Int("shortages", len(shortages)).
			Msg("stock insuficiente")
	}
}
