package entity

import "time"

// Estados de Equipment. Un equipo inactivo conserva su historial pero
// desaparece de listados y no admite nuevos préstamos.
const (
	EquipmentStatusActive   = "active"
	EquipmentStatusInactive = "inactive"
)

// Equipment representa un equipo prestable del catálogo.
// QuantityInStock es la cantidad disponible ahora; solo el motor de préstamos
// la modifica (checkout resta, devolución suma). Nunca negativa.
type Equipment struct {
	ID              string
	Name            string
	Description     string
	QuantityInStock int
	RegisteredAt    time.Time
	Status          string // active, inactive
}

// IsActive indica si el equipo admite préstamos y aparece en listados.
func (e *Equipment) IsActive() bool {
	return e.Status == EquipmentStatusActive
}
