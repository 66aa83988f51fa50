package entity

import "time"

// Estados de Client. Baja lógica: un cliente referenciado por movimientos
// nunca se elimina físicamente.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client representa la parte externa que recibe equipos en préstamo.
type Client struct {
	ID        string
	Name      string
	Contact   string
	Status    string // active, inactive
	CreatedAt time.Time
}
