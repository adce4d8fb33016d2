package dto

import "github.com/jhoicas/stockflow/internal/domain"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Shortages solo viaja con INSUFFICIENT_STOCK;
// Fields solo con VALIDATION cuando el cuerpo no pasó la validación de estructura.
type ErrorResponse struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Shortages []domain.StockShortage `json:"shortages,omitempty"`
	Fields    map[string]string      `json:"fields,omitempty"`
}

// ReasonRequest body para rechazos (motivo libre).
type ReasonRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}
