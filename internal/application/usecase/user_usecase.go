package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// UserUseCase administración de usuarios y conductores.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create da de alta un usuario con password hasheado.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		AvatarURL:    in.AvatarURL,
		PayRate:      in.PayRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return dto.UserFromEntity(u), nil
}

// GetByID obtiene un usuario por ID. ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.UserFromEntity(u), nil
}

// List lista usuarios, opcionalmente filtrados por rol.
func (uc *UserUseCase) List(ctx context.Context, role string, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	if role != "" && !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	list, err := uc.repo.List(ctx, role, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.UserFromEntity(u))
	}
	return out, nil
}

// ListDrivers conductores activos, para la asignación de entregas.
func (uc *UserUseCase) ListDrivers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, entity.RoleDriver, 500, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		if u.IsActive {
			out = append(out, *dto.UserFromEntity(u))
		}
	}
	return out, nil
}

// Update aplica los campos presentes en la solicitud.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.PayRate != nil {
		u.PayRate = *in.PayRate
	}
	if in.AvatarURL != nil {
		u.AvatarURL = *in.AvatarURL
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.UserFromEntity(u), nil
}

// Delete elimina un usuario. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if actor.UserID == id {
		return fmt.Errorf("%w: no puede eliminar su propio usuario", domain.ErrConflict)
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(ctx, id)
}
