package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = `
	id, reference, customer_name, customer_phone, delivery_address,
	sender_name, sender_phone, sender_address, weight, dimensions,
	package_type, description, priority, payment_method, delivery_fee,
	cod_amount, special_instructions, notes, assigned_driver_id, status,
	created_by_id, is_draft, created_at, updated_at`

// DeliveryRepo implementación de DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create inserta una entrega. Una referencia repetida devuelve domain.ErrDuplicate.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Reference, d.CustomerName, d.CustomerPhone, d.DeliveryAddress,
		d.Sender.Name, d.Sender.Phone, d.Sender.Address, d.Weight, d.Dimensions,
		d.PackageType, d.Description, d.Priority, d.PaymentMethod, d.DeliveryFee,
		d.CODAmount, instructions(d.SpecialInstructions), d.Notes, nullIfEmpty(d.AssignedDriverID), d.Status,
		d.CreatedByID, d.IsDraft, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la referencia %s ya existe", domain.ErrDuplicate, d.Reference)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID obtiene una entrega por ID. nil si no existe.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.getOne(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id::text = $1`, id)
}

// GetByReference obtiene una entrega por referencia. nil si no existe.
func (r *DeliveryRepo) GetByReference(ctx context.Context, reference string) (*entity.Delivery, error) {
	return r.getOne(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE reference = $1`, reference)
}

func (r *DeliveryRepo) getOne(ctx context.Context, query string, arg string) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// Update reemplaza los campos editables de la entrega.
func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	query := `
		UPDATE deliveries SET
			customer_name = $2, customer_phone = $3, delivery_address = $4,
			sender_name = $5, sender_phone = $6, sender_address = $7,
			weight = $8, dimensions = $9, package_type = $10, description = $11,
			priority = $12, payment_method = $13, delivery_fee = $14, cod_amount = $15,
			special_instructions = $16, notes = $17, is_draft = $18, updated_at = $19
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.CustomerName, d.CustomerPhone, d.DeliveryAddress,
		d.Sender.Name, d.Sender.Phone, d.Sender.Address,
		d.Weight, d.Dimensions, d.PackageType, d.Description,
		d.Priority, d.PaymentMethod, d.DeliveryFee, d.CODAmount,
		instructions(d.SpecialInstructions), d.Notes, d.IsDraft, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la entrega.
func (r *DeliveryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM deliveries WHERE id::text = $1`, id); err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	return nil
}

// List filtra por estado, creador, conductor y texto; devuelve la página y el total.
func (r *DeliveryRepo) List(ctx context.Context, f repository.DeliveryFilter) ([]*entity.Delivery, int, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.CreatedByID != "" {
		add("created_by_id::text = $%d", f.CreatedByID)
	}
	if f.AssignedDriverID != "" {
		add("assigned_driver_id::text = $%d", f.AssignedDriverID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(reference ILIKE $%d OR customer_name ILIKE $%d)", n, n))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM deliveries`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM deliveries%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		deliveryColumns, clause, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Delivery, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// UpdateStatus cambia el estado solo si difiere del actual. Un id inexistente
// o con formato inválido no es error: changed=false.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE deliveries SET status = $2, updated_at = NOW() WHERE id::text = $1 AND status <> $2`,
		id, status)
	if err != nil {
		return false, fmt.Errorf("update delivery status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AssignDriver asigna el conductor; una entrega pendiente pasa a assigned.
func (r *DeliveryRepo) AssignDriver(ctx context.Context, id, driverID string) error {
	query := `
		UPDATE deliveries SET
			assigned_driver_id = $2,
			status = CASE WHEN status = 'pending' THEN 'assigned' ELSE status END,
			updated_at = NOW()
		WHERE id::text = $1`
	tag, err := r.q.Exec(ctx, query, id, driverID)
	if err != nil {
		return fmt.Errorf("assign driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(
		&d.ID, &d.Reference, &d.CustomerName, &d.CustomerPhone, &d.DeliveryAddress,
		&d.Sender.Name, &d.Sender.Phone, &d.Sender.Address, &d.Weight, &d.Dimensions,
		&d.PackageType, &d.Description, &d.Priority, &d.PaymentMethod, &d.DeliveryFee,
		&d.CODAmount, &d.SpecialInstructions, &d.Notes, &d.AssignedDriverID, &d.Status,
		&d.CreatedByID, &d.IsDraft, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func instructions(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
