package auth

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
	"github.com/jhoicas/Logistica-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SettingsSource lectura de la configuración vigente (registro abierto, rol por defecto).
type SettingsSource interface {
	Current(ctx context.Context) (*entity.Settings, error)
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	settings SettingsSource
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, settings SettingsSource, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, settings: settings, jwtCfg: jwtCfg}
}

// Register crea un usuario con el rol por defecto de la configuración.
// Devuelve ErrForbidden si el registro está cerrado y ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	st, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: leer configuración: %w", err)
	}
	if !st.AllowRegistration {
		return nil, fmt.Errorf("%w: el registro está deshabilitado", domain.ErrForbidden)
	}

	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := st.DefaultRole
	if !entity.IsValidRole(role) || role == entity.RoleAdmin {
		role = entity.RoleCustomer
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.UserFromEntity(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: cuenta inactiva", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.UserFromEntity(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.UserFromEntity(user), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
