package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// ValidRole verifica que el rol sea uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Company).
// ManagerID es una referencia auto-referencial opcional al jefe directo;
// si está definida debe apuntar a un usuario de la misma empresa.
type User struct {
	ID             string
	Email          string // único a nivel global
	HashedPassword string // bcrypt hash, nunca texto plano después de persistir
	FullName       string
	Role           string  // admin, manager, employee
	CompanyID      string
	ManagerID      *string // nil = sin jefe asignado
	CreatedAt      time.Time
}

// HasManager indica si el usuario tiene jefe directo asignado.
func (u *User) HasManager() bool {
	return u.ManagerID != nil && *u.ManagerID != ""
}
