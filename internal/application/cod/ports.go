package cod

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ReportData datos de un reporte COD listos para renderizar.
type ReportData struct {
	From        time.Time
	To          time.Time
	Rows        []repository.CodRow
	TotalCOD    decimal.Decimal
	TotalFees   decimal.Decimal
	GeneratedAt time.Time
}

// Renderer puerto de salida para cada formato de exportación (CSV, Excel, PDF).
type Renderer interface {
	Render(ctx context.Context, data ReportData) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportFile archivo generado para descarga.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
