package entity

import "time"

// Niveles de acceso válidos para User.
const (
	AccessAdmin   = "admin"
	AccessTecnico = "tecnico"
)

// User representa un usuario del staff que registra préstamos.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	RoleTitle    string // cargo, texto libre
	AccessLevel  string // admin, tecnico
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
