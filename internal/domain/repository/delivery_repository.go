package repository

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// DeliveryFilter criterios de listado de entregas.
// Los campos vacíos no filtran.
type DeliveryFilter struct {
	Status           string
	Search           string // coincide con reference o customer_name (ILIKE)
	CreatedByID      string
	AssignedDriverID string
	Limit            int
	Offset           int
}

// DeliveryRepository puerto de persistencia para entregas.
type DeliveryRepository interface {
	// Create devuelve domain.ErrDuplicate si la referencia ya existe.
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	GetByReference(ctx context.Context, reference string) (*entity.Delivery, error)
	Update(ctx context.Context, d *entity.Delivery) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f DeliveryFilter) ([]*entity.Delivery, int, error)
	// UpdateStatus aplica el estado solo si difiere del actual.
	// changed=false cuando el id no existe o ya tenía ese estado.
	UpdateStatus(ctx context.Context, id, status string) (changed bool, err error)
	AssignDriver(ctx context.Context, id, driverID string) error
}
