// Package csvexport genera el reporte COD en CSV con todos los campos entre comillas.
package csvexport

import (
	"context"
	"strings"

	"github.com/jhoicas/Logistica-api/internal/application/cod"
)

// Header columnas del CSV, en orden.
var Header = []string{
	"Reference", "Customer Name", "Customer Phone", "Delivery Address",
	"COD Amount", "Delivery Fee", "Status", "Driver", "Created At",
}

// Renderer implementa cod.Renderer para CSV.
type Renderer struct {
	formatter *cod.Formatter
}

var _ cod.Renderer = (*Renderer)(nil)

// NewRenderer construye el exportador. formatter da formato a las fechas.
func NewRenderer(formatter *cod.Formatter) *Renderer {
	return &Renderer{formatter: formatter}
}

func (r *Renderer) ContentType() string { return "text/csv" }
func (r *Renderer) Extension() string   { return "csv" }

// Render escribe cabecera + una línea por fila, separadas por \n sin salto final.
// Los montos van sin formato de locale para que el archivo se pueda reimportar.
func (r *Renderer) Render(_ context.Context, data cod.ReportData) ([]byte, error) {
	lines := make([]string, 0, len(data.Rows)+1)
	lines = append(lines, line(Header))
	for _, row := range data.Rows {
		lines = append(lines, line([]string{
			row.Reference,
			row.CustomerName,
			row.CustomerPhone,
			row.DeliveryAddress,
			row.CODAmount.String(),
			row.DeliveryFee.String(),
			row.Status,
			row.DriverName,
			r.formatter.Date(row.CreatedAt),
		}))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// line entrecomilla cada campo y duplica las comillas internas.
func line(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
