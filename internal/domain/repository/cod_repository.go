package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// CodFilter rango y alcance de la agregación COD.
// CreatedByID vacío = todas las entregas (alcance admin).
type CodFilter struct {
	From        time.Time
	To          time.Time
	CreatedByID string
}

// CodTotals agregados de entregas contra entrega.
type CodTotals struct {
	TotalAmount     decimal.Decimal
	Count           int
	PendingAmount   decimal.Decimal // pending, assigned, in_transit
	CollectedAmount decimal.Decimal // delivered
	TotalFees       decimal.Decimal
}

// CodRow fila proyectada para el detalle y las exportaciones.
type CodRow struct {
	Reference       string
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	CODAmount       decimal.Decimal
	DeliveryFee     decimal.Decimal
	Status          string
	DriverName      string // "Unassigned" si no hay conductor resoluble
	CreatedAt       time.Time
}

// CodRepository consultas read-only sobre entregas COD.
type CodRepository interface {
	Totals(ctx context.Context, f CodFilter) (CodTotals, error)
	// Rows devuelve las filas ordenadas de la más reciente a la más antigua.
	Rows(ctx context.Context, f CodFilter) ([]CodRow, error)
}

// CodReportRepository persistencia de los reportes COD solicitados.
type CodReportRepository interface {
	// Create devuelve domain.ErrDuplicate si el usuario ya tiene un reporte con ese nombre.
	Create(ctx context.Context, r *entity.CodReport) error
	GetByID(ctx context.Context, id string) (*entity.CodReport, error)
	// List con userID vacío devuelve todos.
	List(ctx context.Context, userID string) ([]*entity.CodReport, error)
	Delete(ctx context.Context, id string) error
}
