package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

var roleRule = validation.In(entity.RoleAdmin, entity.RoleManager, entity.RoleDriver, entity.RoleCustomer)

// CreateUserRequest alta de usuario por un admin (password en texto, se hashea en use case).
type CreateUserRequest struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Password  string          `json:"password"`
	Role      string          `json:"role"`
	PayRate   decimal.Decimal `json:"pay_rate"`
	AvatarURL string          `json:"avatar_url"`
}

// Validate reglas de alta.
func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Phone, phoneRule),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Role, validation.Required, roleRule),
		validation.Field(&r.PayRate, nonNegative),
		validation.Field(&r.AvatarURL, is.URL),
	)
}

// UpdateUserRequest edición parcial; los punteros nil no se modifican.
type UpdateUserRequest struct {
	FirstName *string          `json:"first_name"`
	LastName  *string          `json:"last_name"`
	Phone     *string          `json:"phone"`
	Role      *string          `json:"role"`
	IsActive  *bool            `json:"is_active"`
	PayRate   *decimal.Decimal `json:"pay_rate"`
	AvatarURL *string          `json:"avatar_url"`
}

// Validate reglas de edición.
func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Phone, phoneRule),
		validation.Field(&r.Role, validation.NilOrNotEmpty, roleRule),
		validation.Field(&r.PayRate, nonNegative),
		validation.Field(&r.AvatarURL, is.URL),
	)
}

// RegisterRequest auto-registro desde el portal.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// Validate reglas de registro.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Phone, phoneRule),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate exige ambos campos.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Role      string          `json:"role"`
	IsActive  bool            `json:"is_active"`
	AvatarURL string          `json:"avatar_url,omitempty"`
	PayRate   decimal.Decimal `json:"pay_rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LoginResponse token JWT y usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserFromEntity convierte la entidad a su salida pública.
func UserFromEntity(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		AvatarURL: u.AvatarURL,
		PayRate:   u.PayRate,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
