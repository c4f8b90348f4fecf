package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.CodReportRepository = (*CodReportRepo)(nil)

const codReportColumns = `id, name, date_from, date_to, format, status, download_url, user_id, created_at, updated_at`

// CodReportRepo persistencia de reportes COD guardados.
type CodReportRepo struct {
	pool *pgxpool.Pool
}

// NewCodReportRepository construye el adaptador.
func NewCodReportRepository(pool *pgxpool.Pool) *CodReportRepo {
	return &CodReportRepo{pool: pool}
}

// Create inserta el reporte. (user_id, name) es único.
func (r *CodReportRepo) Create(ctx context.Context, rep *entity.CodReport) error {
	query := `INSERT INTO cod_reports (` + codReportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		rep.ID, rep.Name, rep.From, rep.To, rep.Format, rep.Status, rep.DownloadURL,
		rep.UserID, rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el reporte %s", domain.ErrDuplicate, rep.Name)
		}
		return fmt.Errorf("insert cod report: %w", err)
	}
	return nil
}

// GetByID nil si no existe.
func (r *CodReportRepo) GetByID(ctx context.Context, id string) (*entity.CodReport, error) {
	rep, err := scanCodReport(r.pool.QueryRow(ctx,
		`SELECT `+codReportColumns+` FROM cod_reports WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cod report: %w", err)
	}
	return rep, nil
}

// List reportes del usuario, o todos si userID está vacío. Más recientes primero.
func (r *CodReportRepo) List(ctx context.Context, userID string) ([]*entity.CodReport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+codReportColumns+` FROM cod_reports
		WHERE ($1 = '' OR user_id::text = $1)
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cod reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.CodReport
	for rows.Next() {
		rep, err := scanCodReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cod report: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

// Delete elimina el reporte.
func (r *CodReportRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cod_reports WHERE id::text = $1`, id); err != nil {
		return fmt.Errorf("delete cod report: %w", err)
	}
	return nil
}

func scanCodReport(row pgx.Row) (*entity.CodReport, error) {
	var rep entity.CodReport
	if err := row.Scan(
		&rep.ID, &rep.Name, &rep.From, &rep.To, &rep.Format, &rep.Status,
		&rep.DownloadURL, &rep.UserID, &rep.CreatedAt, &rep.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rep, nil
}
