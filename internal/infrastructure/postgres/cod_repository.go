package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.CodRepository = (*CodRepo)(nil)

// CodRepo consultas read-only de montos contra entrega.
type CodRepo struct {
	pool *pgxpool.Pool
}

// NewCodRepository construye el adaptador.
func NewCodRepository(pool *pgxpool.Pool) *CodRepo {
	return &CodRepo{pool: pool}
}

// filtro común: solo COD, rango [from, to] y, si aplica, el creador.
const codWhere = `
	WHERE d.payment_method = 'cod'
	  AND d.created_at >= $1 AND d.created_at <= $2
	  AND ($3 = '' OR d.created_by_id::text = $3)`

// Totals agrega montos y conteos del rango.
func (r *CodRepo) Totals(ctx context.Context, f repository.CodFilter) (repository.CodTotals, error) {
	query := `
		SELECT
		    COALESCE(SUM(d.cod_amount), 0),
		    COUNT(*),
		    COALESCE(SUM(d.cod_amount) FILTER (WHERE d.status IN ('pending', 'assigned', 'in_transit')), 0),
		    COALESCE(SUM(d.cod_amount) FILTER (WHERE d.status = 'delivered'), 0),
		    COALESCE(SUM(d.delivery_fee), 0)
		FROM deliveries d` + codWhere
	var t repository.CodTotals
	err := r.pool.QueryRow(ctx, query, f.From, f.To, f.CreatedByID).Scan(
		&t.TotalAmount, &t.Count, &t.PendingAmount, &t.CollectedAmount, &t.TotalFees,
	)
	if err != nil {
		return repository.CodTotals{}, fmt.Errorf("cod totals: %w", err)
	}
	return t, nil
}

// Rows filas del rango con el nombre del conductor, de la más reciente a la más antigua.
func (r *CodRepo) Rows(ctx context.Context, f repository.CodFilter) ([]repository.CodRow, error) {
	query := `
		SELECT d.reference, d.customer_name, d.customer_phone, d.delivery_address,
		       d.cod_amount, d.delivery_fee, d.status,
		       COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), 'Unassigned'),
		       d.created_at
		FROM deliveries d
		LEFT JOIN users u ON u.id = d.assigned_driver_id` + codWhere + `
		ORDER BY d.created_at DESC`
	rows, err := r.pool.Query(ctx, query, f.From, f.To, f.CreatedByID)
	if err != nil {
		return nil, fmt.Errorf("cod rows: %w", err)
	}
	defer rows.Close()
	out := make([]repository.CodRow, 0)
	for rows.Next() {
		var c repository.CodRow
		if err := rows.Scan(
			&c.Reference, &c.CustomerName, &c.CustomerPhone, &c.DeliveryAddress,
			&c.CODAmount, &c.DeliveryFee, &c.Status, &c.DriverName, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cod row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
