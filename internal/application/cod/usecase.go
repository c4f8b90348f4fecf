// Package cod agrega los montos contra entrega (COD) y orquesta su exportación
// a CSV, Excel y PDF.
package cod

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// Formatos aceptados en el parámetro format.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// UseCase agregación y exportación COD.
type UseCase struct {
	repo      repository.CodRepository
	reports   repository.CodReportRepository
	renderers map[string]Renderer
	formatter *Formatter
	now       func() time.Time
}

// NewUseCase construye el caso de uso. renderers se indexa por formato (csv, excel, pdf).
func NewUseCase(
	repo repository.CodRepository,
	reports repository.CodReportRepository,
	renderers map[string]Renderer,
	formatter *Formatter,
) *UseCase {
	return &UseCase{
		repo:      repo,
		reports:   reports,
		renderers: renderers,
		formatter: formatter,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ParseRange interpreta from/to (YYYY-MM-DD) en la zona horaria del reporte.
// from vacío = 1970-01-01; to vacío = hoy. to incluye el día completo (hasta 23:59:59.999).
func ParseRange(from, to string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	var start, end time.Time
	if strings.TrimSpace(from) == "" {
		start = time.Date(1970, 1, 1, 0, 0, 0, 0, loc)
	} else {
		t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(from), loc)
		if err != nil {
			return start, end, fmt.Errorf("%w: from debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		start = t
	}
	if strings.TrimSpace(to) == "" {
		n := now.In(loc)
		end = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	} else {
		t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(to), loc)
		if err != nil {
			return start, end, fmt.Errorf("%w: to debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		end = t
	}
	end = end.Add(24*time.Hour - time.Millisecond)
	if end.Before(start) {
		return start, end, fmt.Errorf("%w: from no puede ser posterior a to", domain.ErrInvalidInput)
	}
	return start, end, nil
}

// Filename COD_Report_<from>_to_<to>.<ext>
func Filename(from, to time.Time, ext string) string {
	return fmt.Sprintf("%s.%s", reportName(from, to), ext)
}

func reportName(from, to time.Time) string {
	return fmt.Sprintf("COD_Report_%s_to_%s", from.Format(dateLayout), to.Format(dateLayout))
}

// scope: el admin ve todas las entregas; el resto solo las que creó.
func scope(actor entity.Actor) string {
	if actor.IsAdmin() {
		return ""
	}
	return actor.UserID
}

func (uc *UseCase) filter(actor entity.Actor, q dto.CodSummaryQuery) (repository.CodFilter, error) {
	from, to, err := ParseRange(q.From, q.To, uc.now(), uc.formatter.Location())
	if err != nil {
		return repository.CodFilter{}, err
	}
	return repository.CodFilter{From: from, To: to, CreatedByID: scope(actor)}, nil
}

// Summary agregados COD del rango para el actor.
func (uc *UseCase) Summary(ctx context.Context, actor entity.Actor, q dto.CodSummaryQuery) (*dto.CodSummaryResponse, error) {
	f, err := uc.filter(actor, q)
	if err != nil {
		return nil, err
	}
	t, err := uc.repo.Totals(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("cod: totales: %w", err)
	}
	return &dto.CodSummaryResponse{
		From:            f.From,
		To:              f.To,
		TotalAmount:     t.TotalAmount,
		Count:           t.Count,
		PendingAmount:   t.PendingAmount,
		CollectedAmount: t.CollectedAmount,
		TotalFees:       t.TotalFees,
	}, nil
}

// Detail filas COD del rango, de la más reciente a la más antigua.
func (uc *UseCase) Detail(ctx context.Context, actor entity.Actor, q dto.CodSummaryQuery) (*dto.CodDetailResponse, error) {
	f, err := uc.filter(actor, q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Rows(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("cod: filas: %w", err)
	}
	out := &dto.CodDetailResponse{From: f.From, To: f.To, Rows: make([]dto.CodRowDTO, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.CodRowDTO{
			Reference:       r.Reference,
			CustomerName:    r.CustomerName,
			CustomerPhone:   r.CustomerPhone,
			DeliveryAddress: r.DeliveryAddress,
			CODAmount:       r.CODAmount,
			DeliveryFee:     r.DeliveryFee,
			Status:          r.Status,
			Driver:          r.DriverName,
			CreatedAt:       r.CreatedAt,
		})
	}
	return out, nil
}

// Export genera el archivo del formato pedido (csv, excel o pdf, sin distinguir mayúsculas).
func (uc *UseCase) Export(ctx context.Context, actor entity.Actor, q dto.CodSummaryQuery) (*ExportFile, error) {
	format := q.NormalizedFormat()
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado (use csv, excel o pdf)", domain.ErrInvalidInput, q.Format)
	}
	f, err := uc.filter(actor, q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Rows(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("cod: filas: %w", err)
	}
	data := ReportData{From: f.From, To: f.To, Rows: rows, GeneratedAt: uc.now()}
	data.TotalCOD, data.TotalFees = sumRows(rows)

	content, err := renderer.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("cod: generar %s: %w", format, err)
	}
	return &ExportFile{
		Filename:    Filename(f.From, f.To, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

func sumRows(rows []repository.CodRow) (cod, fees decimal.Decimal) {
	cod, fees = decimal.Zero, decimal.Zero
	for _, r := range rows {
		cod = cod.Add(r.CODAmount)
		fees = fees.Add(r.DeliveryFee)
	}
	return cod, fees
}

// ── Reportes guardados ────────────────────────────────────────────────────────

// CreateReport registra un reporte listo para descargar. El nombre se deriva
// del rango; repetirlo para el mismo usuario devuelve ErrDuplicate.
func (uc *UseCase) CreateReport(ctx context.Context, actor entity.Actor, in dto.CreateCodReportRequest) (*dto.CodReportResponse, error) {
	format := strings.ToLower(in.Format)
	if _, ok := uc.renderers[format]; !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, in.Format)
	}
	from, to, err := ParseRange(in.From, in.To, uc.now(), uc.formatter.Location())
	if err != nil {
		return nil, err
	}
	now := uc.now()
	r := &entity.CodReport{
		ID:     uuid.New().String(),
		Name:   reportName(from, to),
		From:   from,
		To:     to,
		Format: displayFormat(format),
		Status: entity.ReportStatusReady,
		DownloadURL: fmt.Sprintf("/api/cod/summary?from=%s&to=%s&format=%s&download=true",
			from.Format(dateLayout), to.Format(dateLayout), format),
		UserID:    actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reports.Create(ctx, r); err != nil {
		return nil, err
	}
	return toReportResponse(r), nil
}

// ListReports reportes del actor (el admin ve todos).
func (uc *UseCase) ListReports(ctx context.Context, actor entity.Actor) ([]dto.CodReportResponse, error) {
	list, err := uc.reports.List(ctx, scope(actor))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CodReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReportResponse(r))
	}
	return out, nil
}

// DeleteReport elimina un reporte propio (o cualquiera, si es admin).
func (uc *UseCase) DeleteReport(ctx context.Context, actor entity.Actor, id string) error {
	r, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if !actor.IsAdmin() && r.UserID != actor.UserID {
		return domain.ErrForbidden
	}
	return uc.reports.Delete(ctx, id)
}

func displayFormat(format string) string {
	switch format {
	case FormatExcel:
		return entity.ReportFormatExcel
	case FormatPDF:
		return entity.ReportFormatPDF
	default:
		return entity.ReportFormatCSV
	}
}

func toReportResponse(r *entity.CodReport) *dto.CodReportResponse {
	return &dto.CodReportResponse{
		ID:          r.ID,
		Name:        r.Name,
		From:        r.From,
		To:          r.To,
		Format:      r.Format,
		Status:      r.Status,
		DownloadURL: r.DownloadURL,
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
