package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Logistica-api/internal/domain/analytics"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementa consultas analíticas (read-only) sobre PostgreSQL.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountByStatus cuenta por estado las entregas creadas en [from, to).
func (r *AnalyticsRepo) CountByStatus(ctx context.Context, createdByID string, from, to time.Time) (analytics.Counts, error) {
	query := `
		SELECT
		    COUNT(*) FILTER (WHERE status = 'delivered'),
		    COUNT(*) FILTER (WHERE status = 'returned'),
		    COUNT(*) FILTER (WHERE status = 'in_transit')
		FROM deliveries
		WHERE created_at >= $1 AND created_at < $2
		  AND ($3 = '' OR created_by_id::text = $3)`
	var c analytics.Counts
	if err := r.pool.QueryRow(ctx, query, from, to, createdByID).Scan(&c.Delivered, &c.Returned, &c.InTransit); err != nil {
		return analytics.Counts{}, fmt.Errorf("count by status: %w", err)
	}
	return c, nil
}
