package entity

import "time"

// Movement representa un préstamo de equipo: se crea una sola vez en el
// checkout y se modifica una sola vez en la devolución (ReturnedAt).
// ReturnedAt == nil significa préstamo ABIERTO. Nunca se elimina.
type Movement struct {
	ID          string
	EquipmentID string
	UserID      string // staff que registra el préstamo
	ClientID    string // parte que recibe el equipo
	CheckoutAt  time.Time
	Quantity    int // inmutable después de crear, siempre >= 1
	ReturnedAt  *time.Time
	Note        string
}

// IsOpen indica si el préstamo sigue abierto (sin devolución).
func (m *Movement) IsOpen() bool {
	return m.ReturnedAt == nil
}
