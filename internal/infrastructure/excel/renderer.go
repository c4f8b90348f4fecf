// Package excel genera el reporte COD como libro .xlsx con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Logistica-api/internal/application/cod"
)

// SheetName nombre de la única hoja del libro.
const SheetName = "COD Report"

type column struct {
	title string
	width float64
}

var columns = []column{
	{"Reference", 16},
	{"Customer Name", 24},
	{"Customer Phone", 16},
	{"Delivery Address", 40},
	{"COD Amount", 14},
	{"Delivery Fee", 14},
	{"Status", 12},
	{"Driver", 22},
	{"Created At", 14},
}

// Renderer implementa cod.Renderer para Excel.
type Renderer struct {
	formatter *cod.Formatter
}

var _ cod.Renderer = (*Renderer)(nil)

// NewRenderer construye el exportador.
func NewRenderer(formatter *cod.Formatter) *Renderer {
	return &Renderer{formatter: formatter}
}

func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *Renderer) Extension() string { return "xlsx" }

// Render arma la hoja: cabecera en negrita y centrada, anchos fijos y una fila por entrega.
func (r *Renderer) Render(_ context.Context, data cod.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.title
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, c.width); err != nil {
			return nil, fmt.Errorf("excel: ancho de columna: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", style); err != nil {
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}

	for i, row := range data.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.Reference,
			row.CustomerName,
			row.CustomerPhone,
			row.DeliveryAddress,
			row.CODAmount.InexactFloat64(),
			row.DeliveryFee.InexactFloat64(),
			row.Status,
			row.DriverName,
			r.formatter.Date(row.CreatedAt),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
