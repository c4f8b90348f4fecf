package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain/analytics"
)

// AnalyticsRepository define consultas de lectura para el dashboard.
// Los rangos son semiabiertos: [from, to).
type AnalyticsRepository interface {
	// CountByStatus cuenta entregas delivered, returned e in_transit creadas en el rango.
	// Con createdByID vacío cuenta sobre todas las entregas.
	CountByStatus(ctx context.Context, createdByID string, from, to time.Time) (analytics.Counts, error)
}
