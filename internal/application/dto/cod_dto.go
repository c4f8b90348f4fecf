package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CodSummaryQuery parámetros de GET /api/cod/summary.
// From y To en formato YYYY-MM-DD; Format csv | excel | pdf.
type CodSummaryQuery struct {
	From     string `query:"from"`
	To       string `query:"to"`
	Format   string `query:"format"`
	Download bool   `query:"download"`
	Detail   bool   `query:"detail"`
}

// NormalizedFormat formato en minúsculas ("" si no se pidió archivo).
func (q CodSummaryQuery) NormalizedFormat() string {
	return strings.ToLower(strings.TrimSpace(q.Format))
}

// CodSummaryResponse agregados COD del rango.
type CodSummaryResponse struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Count           int             `json:"count"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	TotalFees       decimal.Decimal `json:"total_fees"`
}

// CodRowDTO fila del detalle COD.
type CodRowDTO struct {
	Reference       string          `json:"reference"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	DeliveryAddress string          `json:"delivery_address"`
	CODAmount       decimal.Decimal `json:"cod_amount"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Status          string          `json:"status"`
	Driver          string          `json:"driver"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CodDetailResponse detalle COD del rango.
type CodDetailResponse struct {
	From time.Time   `json:"from"`
	To   time.Time   `json:"to"`
	Rows []CodRowDTO `json:"rows"`
}

// CreateCodReportRequest solicitud de un reporte COD guardado.
type CreateCodReportRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Format string `json:"format"`
}

// Validate exige fechas YYYY-MM-DD y un formato soportado.
func (r CreateCodReportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.From, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.To, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Format, validation.Required, validation.By(func(v interface{}) error {
			s, _ := v.(string)
			switch strings.ToLower(s) {
			case "csv", "excel", "pdf":
				return nil
			}
			return validation.NewError("validation_format", "use csv, excel o pdf")
		})),
	)
}

// CodReportResponse salida de un reporte COD guardado.
type CodReportResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Format      string    `json:"format"`
	Status      string    `json:"status"`
	DownloadURL string    `json:"download_url"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
