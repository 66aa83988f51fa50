package dto

import "time"

// CreateEquipmentRequest body para POST /api/equipment.
type CreateEquipmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// UpdateEquipmentRequest body para PUT /api/equipment/{id}.
type UpdateEquipmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// EquipmentResponse representación pública de un equipo.
type EquipmentResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	QuantityInStock int       `json:"quantity_in_stock"`
	RegisteredAt    time.Time `json:"registered_at"`
	Status          string    `json:"status"`
}
