package entity

// Actor usuario autenticado que ejecuta una operación (del token JWT).
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsStaff admin o gestor: ven y editan todas las entregas.
func (a Actor) IsStaff() bool { return a.Role == RoleAdmin || a.Role == RoleManager }
