package dto

import "time"

// DashboardStatsDTO respuesta de GET /api/reports/dashboard.
// TotalProvisioned se deriva siempre como InStock + OnLoan: el total provisto
// no se persiste por separado, es un invariante reconstruible.
type DashboardStatsDTO struct {
	TotalProvisioned int `json:"total_provisioned"`
	InStock          int `json:"in_stock"`
	OnLoan           int `json:"on_loan"`
	UserCount        int `json:"user_count"`
	ActiveEquipment  int `json:"active_equipment"`
}

// MovementDetailDTO movimiento con nombres resueltos para las vistas.
type MovementDetailDTO struct {
	MovementID    string     `json:"movement_id"`
	EquipmentID   string     `json:"equipment_id"`
	EquipmentName string     `json:"equipment_name"`
	UserID        string     `json:"user_id"`
	UserName      string     `json:"user_name"`
	ClientID      string     `json:"client_id"`
	ClientName    string     `json:"client_name"`
	Quantity      int        `json:"quantity"`
	CheckoutAt    time.Time  `json:"checkout_at"`
	ReturnedAt    *time.Time `json:"returned_at,omitempty"`
	Note          string     `json:"note,omitempty"`
}

// Tipos de evento para el feed de actividad.
const (
	ActivityCheckout = "checkout"
	ActivityReturn   = "return"
)

// ActivityDTO entrada del feed de actividad reciente: el movimiento más su
// evento más nuevo (checkout o devolución) y el instante de ese evento.
type ActivityDTO struct {
	Kind     string            `json:"kind"` // checkout | return
	At       time.Time         `json:"at"`
	Movement MovementDetailDTO `json:"movement"`
}
