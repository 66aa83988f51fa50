package dto

import "time"

// CheckOutRequest body para POST /api/movements/checkout. El usuario que
// registra el préstamo sale del token, no del body.
type CheckOutRequest struct {
	EquipmentID string `json:"equipment_id"`
	ClientID    string `json:"client_id"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note,omitempty"`
}

// BatchCheckOutRequest body para POST /api/movements/checkout-batch.
// Cada equipo se presta con cantidad 1; los que no tengan stock se omiten.
type BatchCheckOutRequest struct {
	EquipmentIDs []string `json:"equipment_ids"`
	ClientID     string   `json:"client_id"`
	Note         string   `json:"note,omitempty"`
}

// MovementResponse representación pública de un movimiento.
type MovementResponse struct {
	ID          string     `json:"id"`
	EquipmentID string     `json:"equipment_id"`
	UserID      string     `json:"user_id"`
	ClientID    string     `json:"client_id"`
	CheckoutAt  time.Time  `json:"checkout_at"`
	Quantity    int        `json:"quantity"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// SkippedItemDTO equipo omitido en un checkout por lotes, con el motivo.
type SkippedItemDTO struct {
	EquipmentID string `json:"equipment_id"`
	Reason      string `json:"reason"` // INSUFFICIENT_STOCK, NOT_FOUND, ...
}

// BatchCheckOutResponse resultado itemizado del checkout por lotes
// (éxito parcial esperado, no todo-o-nada).
type BatchCheckOutResponse struct {
	Succeeded []MovementResponse `json:"succeeded"`
	Skipped   []SkippedItemDTO   `json:"skipped"`
}
