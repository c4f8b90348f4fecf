package repository

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// List filtra por rol si role no está vacío.
	List(ctx context.Context, role string, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository acceso al documento único de configuración.
type SettingsRepository interface {
	// Get crea el documento con valores por defecto si aún no existe.
	Get(ctx context.Context) (*entity.Settings, error)
	Update(ctx context.Context, s *entity.Settings) error
}
