package repository

import (
	"context"
	"time"
)

// MovementDetail es una fila de movimiento con los nombres de equipo,
// usuario y cliente ya resueltos (JOIN), para las vistas de reporte.
type MovementDetail struct {
	MovementID    string
	EquipmentID   string
	EquipmentName string
	UserID        string
	UserName      string
	ClientID      string
	ClientName    string
	Quantity      int
	CheckoutAt    time.Time
	ReturnedAt    *time.Time
	Note          string
}

// ReportRepository define consultas de solo lectura sobre el estado
// comprometido del almacén. Sin caché: cada llamada rederiva el estado
// desde las filas persistidas.
type ReportRepository interface {
	// StockTotals devuelve la suma de stock disponible y la suma de
	// cantidades en préstamos abiertos (stock + abierto == total provisto).
	StockTotals(ctx context.Context) (inStock, onLoan int, err error)
	UserCount(ctx context.Context) (int, error)
	ActiveEquipmentCount(ctx context.Context) (int, error)
	OpenMovements(ctx context.Context) ([]MovementDetail, error)
	RecentMovements(ctx context.Context, limit int) ([]MovementDetail, error)
	MovementsByClient(ctx context.Context, clientID string) ([]MovementDetail, error)
}
