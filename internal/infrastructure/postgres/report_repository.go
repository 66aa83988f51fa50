package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
// Todo se deriva de filas confirmadas; ningún reporte mantiene estado propio.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockTotals devuelve unidades en stock y unidades prestadas (movimientos
// abiertos). La suma de ambas es el total aprovisionado.
func (r *ReportRepo) StockTotals(ctx context.Context) (inStock, onLoan int, err error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(quantity_in_stock) FROM equipment WHERE status = 'active'), 0),
			COALESCE((SELECT SUM(quantity) FROM movements WHERE returned_at IS NULL), 0)`
	if err := r.q.QueryRow(ctx, query).Scan(&inStock, &onLoan); err != nil {
		return 0, 0, fmt.Errorf("stock totals: %w", err)
	}
	return inStock, onLoan, nil
}

// UserCount cuenta los usuarios registrados.
func (r *ReportRepo) UserCount(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("user count: %w", err)
	}
	return n, nil
}

// ActiveEquipmentCount cuenta los equipos activos.
func (r *ReportRepo) ActiveEquipmentCount(ctx context.Context) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM equipment WHERE status = 'active'`
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("active equipment count: %w", err)
	}
	return n, nil
}

const movementDetailSelect = `
	SELECT m.id, m.equipment_id, e.name, m.user_id, u.name, m.client_id, c.name,
	       m.quantity, m.checkout_at, m.returned_at, m.note
	FROM movements m
	JOIN equipment e ON e.id = m.equipment_id
	JOIN users u     ON u.id = m.user_id
	JOIN clients c   ON c.id = m.client_id`

// OpenMovements lista los movimientos sin devolver, el más reciente primero.
func (r *ReportRepo) OpenMovements(ctx context.Context) ([]repository.MovementDetail, error) {
	query := movementDetailSelect + `
	WHERE m.returned_at IS NULL
	ORDER BY m.checkout_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("open movements: %w", err)
	}
	return scanMovementDetails(rows)
}

// RecentMovements lista los últimos movimientos ordenados por su evento más
// reciente (devolución si existe, salida en caso contrario).
func (r *ReportRepo) RecentMovements(ctx context.Context, limit int) ([]repository.MovementDetail, error) {
	query := movementDetailSelect + `
	ORDER BY COALESCE(m.returned_at, m.checkout_at) DESC
	LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	return scanMovementDetails(rows)
}

// MovementsByClient lista el historial completo de un cliente.
func (r *ReportRepo) MovementsByClient(ctx context.Context, clientID string) ([]repository.MovementDetail, error) {
	query := movementDetailSelect + `
	WHERE m.client_id = $1
	ORDER BY m.checkout_at DESC`
	rows, err := r.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("movements by client: %w", err)
	}
	return scanMovementDetails(rows)
}

func scanMovementDetails(rows pgx.Rows) ([]repository.MovementDetail, error) {
	defer rows.Close()
	var list []repository.MovementDetail
	for rows.Next() {
		var d repository.MovementDetail
		err := rows.Scan(
			&d.MovementID, &d.EquipmentID, &d.EquipmentName, &d.UserID, &d.UserName,
			&d.ClientID, &d.ClientName, &d.Quantity, &d.CheckoutAt, &d.ReturnedAt, &d.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement detail: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
