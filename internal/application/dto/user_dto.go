package dto

import "time"

// RegisterRequest entrada para registro (auth): el password llega en texto y
// se hashea en el use case, nunca se persiste plano.
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FullName  string  `json:"full_name" validate:"required,min=1,max=200"`
	CompanyID string  `json:"company_id" validate:"required,uuid"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
// Role solo lo puede cambiar un admin; Password se re-hashea antes de
// persistir.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	FullName  *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin manager employee"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CompanyID string    `json:"company_id"`
	ManagerID *string   `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse lista de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
