package entity

import "time"

// Formatos de exportación del reporte COD.
const (
	ReportFormatCSV   = "CSV"
	ReportFormatExcel = "Excel"
	ReportFormatPDF   = "PDF"
)

// Estados del reporte.
const (
	ReportStatusReady      = "ready"
	ReportStatusProcessing = "processing"
)

// CodReport registro de un reporte COD solicitado por un usuario.
// Name se deriva del rango de fechas y es único por usuario.
type CodReport struct {
	ID          string
	Name        string
	From        time.Time
	To          time.Time
	Format      string
	Status      string
	DownloadURL string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
