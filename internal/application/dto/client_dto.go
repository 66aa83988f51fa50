package dto

import "time"

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// UpdateClientRequest body para PUT /api/clients/{id}.
type UpdateClientRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// ClientResponse representación pública de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
