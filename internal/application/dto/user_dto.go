package dto

import "time"

// CreateUserRequest body para POST /api/users. Password llega en claro y se
// hashea antes de persistir; nunca se conserva después de la llamada.
type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	RoleTitle   string `json:"role_title"`
	AccessLevel string `json:"access_level"` // admin, tecnico
}

// UpdateUserRequest body para PUT /api/users/{id}. Password vacío = no cambiar.
type UpdateUserRequest struct {
	Name        string `json:"name"`
	Password    string `json:"password,omitempty"`
	RoleTitle   string `json:"role_title"`
	AccessLevel string `json:"access_level"`
}

// UserResponse representación pública de un usuario (sin hash).
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	RoleTitle   string    `json:"role_title"`
	AccessLevel string    `json:"access_level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT más datos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
