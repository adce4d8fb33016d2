package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrAlreadyValidated       = fmt.Errorf("%w: documento ya validado", ErrInvalidStateTransition)
)

// StockShortage describe una línea que no alcanza a cubrirse con el stock disponible.
type StockShortage struct {
	LineIndex   int    `json:"line_index"`
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	LocationID  string `json:"location_id,omitempty"`
	Requested   int64  `json:"requested"`
	Available   int64  `json:"available"`
}

// InsufficientStockError agrupa TODAS las líneas faltantes de una operación.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	if len(e.Shortages) == 0 {
		return ErrInsufficientStock.Error()
	}
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("línea %d producto %s: solicitado %d, disponible %d",
			s.LineIndex, s.ProductID, s.Requested, s.Available))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ShortagesOf extrae el detalle de faltantes si err es (o envuelve) un InsufficientStockError.
func ShortagesOf(err error) []StockShortage {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise.Shortages
	}
	return nil
}

// Invalid envuelve ErrInvalidInput con un detalle legible.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// WrongStatus envuelve ErrInvalidStateTransition indicando el estado actual del documento.
func WrongStatus(doc, id, status string) error {
	return fmt.Errorf("%w: %s %s está en estado %s", ErrInvalidStateTransition, doc, id, status)
}
