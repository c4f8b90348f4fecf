// Package pdf implementa el reporte COD en PDF con Maroto v2.
//
// Layout de cada página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│              COD Report  (solo primera página)              │
//	│          From dd/mm/yyyy to dd/mm/yyyy                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Ref | Customer | Phone | COD | Fee | Status | Driver | Date │
//	│  ...filas...                                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│                         Total COD: ₹x  (tras la última fila) │
//	│                  Total Delivery Fees: ₹y                     │
//	└─────────────────────────────────────────────────────────────┘
//
// La paginación la decide plan(): la cabecera de la tabla se repite en cada
// página nueva y los totales saltan de página si no caben.
//
// El texto se dibuja con DejaVu Sans embebida (fonts/): las fuentes estándar
// de PDF son cp1252 y no tienen el glifo ₹.
package pdf

import (
	"context"
	_ "embed"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	fontrepo "github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/Logistica-api/internal/application/cod"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ── Fuente ────────────────────────────────────────────────────────────────────

const fontFamily = "dejavusans"

var (
	//go:embed fonts/DejaVuSans.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	fontBold []byte
)

// loadFonts registra regular y negrita, los dos estilos que usa el reporte.
func loadFonts() ([]*entity.CustomFont, error) {
	return fontrepo.New().
		AddUTF8FontFromBytes(fontFamily, fontstyle.Normal, fontRegular).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Bold, fontBold).
		Load()
}

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Medidas (mm) ──────────────────────────────────────────────────────────────

const (
	margin       = 10.0
	a4Height     = 297.0
	titleHeight  = 10.0
	subtitleH    = 7.0
	introGap     = 3.0
	headerHeight = 8.0
	lineHeight   = 7.0
	gridSize     = 100
)

// tableColumns ancho de cada columna sobre una grilla de 100.
var tableColumns = []struct {
	title string
	width int
	align align.Type
}{
	{"Reference", 13, align.Left},
	{"Customer", 17, align.Left},
	{"Phone", 13, align.Left},
	{"COD", 11, align.Right},
	{"Fee", 9, align.Right},
	{"Status", 11, align.Left},
	{"Driver", 14, align.Left},
	{"Date", 12, align.Left},
}

// ── Paginación ────────────────────────────────────────────────────────────────

type layout struct {
	body   float64 // alto útil de la página
	intro  float64 // título + subtítulo + separación
	header float64
	line   float64
	totals float64
}

var a4Layout = layout{
	body:   a4Height - 2*margin,
	intro:  titleHeight + subtitleH + introGap,
	header: headerHeight,
	line:   lineHeight,
	totals: 2 * lineHeight,
}

type pagePlan struct {
	Title  bool
	Header bool
	Rows   []int // índices en ReportData.Rows
	Totals bool
}

// plan reparte n filas en páginas. Se abre página nueva cuando el espacio
// restante es menor que una línea; los totales necesitan dos líneas.
func (l layout) plan(n int) []pagePlan {
	pages := []pagePlan{{Title: true, Header: true}}
	remaining := l.body - l.intro - l.header
	for i := 0; i < n; i++ {
		if remaining < l.line {
			pages = append(pages, pagePlan{Header: true})
			remaining = l.body - l.header
		}
		cur := &pages[len(pages)-1]
		cur.Rows = append(cur.Rows, i)
		remaining -= l.line
	}
	if remaining < l.totals {
		pages = append(pages, pagePlan{})
	}
	pages[len(pages)-1].Totals = true
	return pages
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// Renderer implementa cod.Renderer usando Maroto v2.
type Renderer struct {
	formatter *cod.Formatter
}

var _ cod.Renderer = (*Renderer)(nil)

// NewRenderer construye el generador.
func NewRenderer(formatter *cod.Formatter) *Renderer {
	return &Renderer{formatter: formatter}
}

func (r *Renderer) ContentType() string { return "application/pdf" }
func (r *Renderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *Renderer) Render(_ context.Context, data cod.ReportData) ([]byte, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuentes: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(margin).WithRightMargin(margin).
		WithTopMargin(margin).WithBottomMargin(margin).
		WithMaxGridSize(gridSize).
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: fontFamily, Size: 8}).
		WithTitle("COD Report", true).
		Build()

	m := maroto.New(cfg)

	for _, p := range a4Layout.plan(len(data.Rows)) {
		var rows []core.Row
		if p.Title {
			rows = append(rows, r.introRows(data)...)
		}
		if p.Header {
			rows = append(rows, tableHeaderRow())
		}
		for _, i := range p.Rows {
			rows = append(rows, r.detailRow(data.Rows[i]))
		}
		if p.Totals {
			rows = append(rows, r.totalsRows(data)...)
		}
		m.AddPages(page.New().Add(rows...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// introRows: título centrado y subtítulo con el rango.
func (r *Renderer) introRows(data cod.ReportData) []core.Row {
	return []core.Row{
		row.New(titleHeight).Add(col.New(gridSize).Add(
			text.New("COD Report", props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(subtitleH).Add(col.New(gridSize).Add(
			text.New(r.subtitle(data), props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 1,
			}),
		)),
		line.NewRow(introGap, props.Line{Color: colorPrimary, Thickness: 0.3}),
	}
}

func (r *Renderer) subtitle(data cod.ReportData) string {
	return fmt.Sprintf("From %s to %s", r.formatter.Date(data.From), r.formatter.Date(data.To))
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(tableColumns))
	for _, c := range tableColumns {
		cols = append(cols, col.New(c.width).Add(text.New(c.title, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(headerHeight).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// detailRow: una fila por entrega; montos alineados a la derecha.
func (r *Renderer) detailRow(d repository.CodRow) core.Row {
	values := []string{
		d.Reference,
		d.CustomerName,
		d.CustomerPhone,
		r.formatter.Money(d.CODAmount),
		r.formatter.Money(d.DeliveryFee),
		d.Status,
		d.DriverName,
		r.formatter.Date(d.CreatedAt),
	}
	cols := make([]core.Col, 0, len(tableColumns))
	for i, c := range tableColumns {
		cols = append(cols, col.New(c.width).Add(text.New(values[i], props.Text{
			Size: 7.5, Align: c.align, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(lineHeight).Add(cols...)
}

// totalsLines textos del pie: total COD y total de tarifas.
func (r *Renderer) totalsLines(data cod.ReportData) []string {
	return []string{
		"Total COD: " + r.formatter.Money(data.TotalCOD),
		"Total Delivery Fees: " + r.formatter.Money(data.TotalFees),
	}
}

// totalsRows: dos líneas alineadas a la derecha.
func (r *Renderer) totalsRows(data cod.ReportData) []core.Row {
	lines := r.totalsLines(data)
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(lineHeight).Add(col.New(gridSize).Add(
			text.New(l, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1.5, Right: 1,
			}),
		)))
	}
	return out
}
