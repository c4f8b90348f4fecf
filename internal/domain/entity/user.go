package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleDriver   = "driver"
	RoleCustomer = "customer"
)

// IsValidRole indica si r es uno de los roles soportados.
func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDriver, RoleCustomer:
		return true
	}
	return false
}

// User representa un usuario del portal (admin, conductor, gestor o cliente).
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string // bcrypt hash
	Role         string
	IsActive     bool
	AvatarURL    string
	PayRate      decimal.Decimal // pago por entrega (conductores)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName nombre visible: "Nombre Apellido" sin espacios sobrantes.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
