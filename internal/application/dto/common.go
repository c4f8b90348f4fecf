package dto

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y el tope de 100 elementos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// nonNegative regla ozzo para montos decimal.Decimal >= 0.
var nonNegative = validation.By(func(value interface{}) error {
	switch v := value.(type) {
	case decimal.Decimal:
		if v.IsNegative() {
			return errors.New("no puede ser negativo")
		}
	case *decimal.Decimal:
		if v != nil && v.IsNegative() {
			return errors.New("no puede ser negativo")
		}
	}
	return nil
})
