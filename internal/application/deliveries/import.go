package deliveries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/ports"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/csvimport"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

// ImportUseCase carga masiva desde CSV.
//
// Las filas se aplican una a una, sin transacción: si el almacén falla a
// mitad del archivo las filas anteriores quedan aplicadas.
type ImportUseCase struct {
	repo    repository.DeliveryRepository
	cache   ports.Cache
	maxRows int
	log     *logger.Logger
}

// NewImportUseCase construye el caso de uso. maxRows <= 0 desactiva el límite.
func NewImportUseCase(repo repository.DeliveryRepository, maxRows int, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{repo: repo, cache: ports.NopCache{}, maxRows: maxRows, log: log}
}

// WithCache invalida las estadísticas cacheadas del dashboard tras cada carga con cambios.
func (uc *ImportUseCase) WithCache(cache ports.Cache) *ImportUseCase {
	if cache != nil {
		uc.cache = cache
	}
	return uc
}

func (uc *ImportUseCase) invalidateDashboards(ctx context.Context) {
	if err := uc.cache.DeleteByPrefix(ctx, ports.DashboardKeyPrefix); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del dashboard")
	}
}

// BulkStatus aplica un archivo status-update (id,status).
// Devuelve ErrEmptyInput si ninguna fila es aceptada.
func (uc *ImportUseCase) BulkStatus(ctx context.Context, content string) (*dto.BulkStatusResponse, error) {
	parsed, err := uc.parse(content, csvimport.KindStatusUpdate)
	if err != nil {
		return nil, err
	}
	accepted := csvimport.AcceptStatusRows(parsed.Rows)
	if len(accepted) == 0 {
		return nil, domain.ErrEmptyInput
	}

	out := &dto.BulkStatusResponse{OK: true}
	for _, u := range accepted {
		changed, err := uc.repo.UpdateStatus(ctx, u.ID, u.Status)
		if err != nil {
			uc.log.Error().Err(err).Int("row", u.RowNumber).Int("processed", out.Processed).
				Msg("carga masiva de estados interrumpida")
			return nil, fmt.Errorf("fila %d: actualizar estado: %w", u.RowNumber, err)
		}
		out.Processed++
		if changed {
			out.Updated++
		}
	}
	uc.log.Info().Int("rows", len(parsed.Rows)).Int("processed", out.Processed).Int("updated", out.Updated).
		Msg("carga masiva de estados aplicada")
	if out.Updated > 0 {
		uc.invalidateDashboards(ctx)
	}
	return out, nil
}

// Preview valida un archivo delivery-batch sin escribir nada.
func (uc *ImportUseCase) Preview(content string) (*dto.ImportPreviewResponse, error) {
	parsed, err := uc.parse(content, csvimport.KindDeliveryBatch)
	if err != nil {
		return nil, err
	}
	rows, sum := csvimport.ValidateDeliveryRows(parsed.Rows)
	out := &dto.ImportPreviewResponse{
		Columns:   parsed.Columns,
		HasHeader: parsed.HasHeader,
		Rows:      make([]dto.ImportRowDTO, 0, len(rows)),
		Total:     sum.Total,
		Valid:     sum.Valid,
		Invalid:   sum.Invalid,
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.ImportRowDTO{
			Index:     r.Index,
			RowNumber: r.RowNumber,
			Values:    r.Values,
			Valid:     r.Valid,
			Reason:    r.Reason,
		})
	}
	return out, nil
}

// BulkCreate crea una entrega por cada fila válida de un archivo delivery-batch.
// Una referencia duplicada cuenta como fila fallida; cualquier otro error del
// almacén interrumpe la carga.
func (uc *ImportUseCase) BulkCreate(ctx context.Context, actor entity.Actor, content string) (*dto.BulkCreateResponse, error) {
	parsed, err := uc.parse(content, csvimport.KindDeliveryBatch)
	if err != nil {
		return nil, err
	}
	rows, sum := csvimport.ValidateDeliveryRows(parsed.Rows)
	if sum.Valid == 0 {
		return nil, domain.ErrEmptyInput
	}

	out := &dto.BulkCreateResponse{OK: true, Total: sum.Total, Errors: []dto.RowErrorDTO{}}
	for _, r := range rows {
		if !r.Valid {
			out.Failed++
			out.Errors = append(out.Errors, dto.RowErrorDTO{
				RowNumber: r.RowNumber, Reference: r.Value(csvimport.ColReference), Reason: r.Reason,
			})
			continue
		}
		d := DeliveryFromRow(r, actor.UserID, time.Now())
		if err := uc.repo.Create(ctx, d); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				out.Failed++
				out.Errors = append(out.Errors, dto.RowErrorDTO{
					RowNumber: r.RowNumber, Reference: d.Reference, Reason: "la referencia ya existe",
				})
				continue
			}
			uc.log.Error().Err(err).Int("row", r.RowNumber).Int("created", out.Created).
				Msg("carga masiva de entregas interrumpida")
			return nil, fmt.Errorf("fila %d: crear entrega: %w", r.RowNumber, err)
		}
		out.Created++
	}
	uc.log.Info().Str("user_id", actor.UserID).Int("total", out.Total).Int("created", out.Created).
		Int("failed", out.Failed).Msg("carga masiva de entregas aplicada")
	if out.Created > 0 {
		uc.invalidateDashboards(ctx)
	}
	return out, nil
}

func (uc *ImportUseCase) parse(content string, kind csvimport.Kind) (*csvimport.Parsed, error) {
	parsed, err := csvimport.Parse(content, kind)
	if err != nil {
		return nil, err
	}
	if uc.maxRows > 0 && len(parsed.Rows) > uc.maxRows {
		return nil, fmt.Errorf("%w: el archivo supera el máximo de %d filas", domain.ErrInvalidInput, uc.maxRows)
	}
	return parsed, nil
}

// DeliveryFromRow construye la entrega a partir de una fila ya validada.
// Montos vacíos, no numéricos o negativos se toman como 0.
func DeliveryFromRow(r csvimport.Row, createdBy string, now time.Time) *entity.Delivery {
	priority := r.Value(csvimport.ColPriority)
	if priority == "" {
		priority = entity.PriorityStandard
	}
	payment := r.Value(csvimport.ColPaymentMethod)
	if payment == "" {
		payment = entity.PaymentPrepaid
	}
	return &entity.Delivery{
		ID:                  uuid.New().String(),
		Reference:           r.Value(csvimport.ColReference),
		CustomerName:        r.Value(csvimport.ColCustomerName),
		CustomerPhone:       r.Value(csvimport.ColCustomerPhone),
		DeliveryAddress:     r.Value(csvimport.ColDeliveryAddress),
		Sender:              entity.Sender{Address: r.Value(csvimport.ColOriginAddress)},
		PackageType:         r.Value(csvimport.ColPackageType),
		Description:         r.Value(csvimport.ColDescription),
		Priority:            priority,
		PaymentMethod:       payment,
		DeliveryFee:         parseAmount(r.Value(csvimport.ColDeliveryFee)),
		CODAmount:           parseAmount(r.Value(csvimport.ColCODAmount)),
		SpecialInstructions: []string{},
		Notes:               r.Value(csvimport.ColNotes),
		Status:              entity.DeliveryStatusPending,
		CreatedByID:         createdBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	return v
}
