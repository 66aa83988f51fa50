// Package reports contiene las vistas de solo lectura: estadísticas del
// dashboard, préstamos abiertos, actividad reciente e historial por cliente.
// Siempre reflejan el último estado comprometido; no hay caché de stock.
package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

const defaultActivityLimit = 20

// ReportsUseCase arma las vistas de reporte desde ReportRepository.
type ReportsUseCase struct {
	repo repository.ReportRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(repo repository.ReportRepository) *ReportsUseCase {
	return &ReportsUseCase{repo: repo}
}

// DashboardStats devuelve los KPIs del dashboard. El total provisto se
// deriva como stock disponible + cantidad en préstamos abiertos (invariante
// de conservación, nunca se persiste por separado).
//
// Tres consultas en paralelo:
//  1. StockTotals           → InStock + OnLoan
//  2. UserCount             → total de usuarios
//  3. ActiveEquipmentCount  → equipos activos
func (uc *ReportsUseCase) DashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	type totalsResult struct {
		inStock int
		onLoan  int
		err     error
	}
	type countResult struct {
		n   int
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	usersCh := make(chan countResult, 1)
	equipCh := make(chan countResult, 1)

	go func() {
		inStock, onLoan, err := uc.repo.StockTotals(ctx)
		totalsCh <- totalsResult{inStock, onLoan, err}
	}()
	go func() {
		n, err := uc.repo.UserCount(ctx)
		usersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.ActiveEquipmentCount(ctx)
		equipCh <- countResult{n, err}
	}()

	totals := <-totalsCh
	users := <-usersCh
	equip := <-equipCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de stock: %w", totals.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de usuarios: %w", users.err)
	}
	if equip.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de equipos: %w", equip.err)
	}

	return &dto.DashboardStatsDTO{
		TotalProvisioned: totals.inStock + totals.onLoan,
		InStock:          totals.inStock,
		OnLoan:           totals.onLoan,
		UserCount:        users.n,
		ActiveEquipment:  equip.n,
	}, nil
}

// OpenMovements lista los préstamos abiertos, más recientes primero.
func (uc *ReportsUseCase) OpenMovements(ctx context.Context) ([]dto.MovementDetailDTO, error) {
	rows, err := uc.repo.OpenMovements(ctx)
	if err != nil {
		return nil, err
	}
	return toDetailDTOs(rows), nil
}

// RecentActivity devuelve los últimos movimientos ordenados por su evento
// más nuevo (checkout o devolución), etiquetados con el tipo de evento.
func (uc *ReportsUseCase) RecentActivity(ctx context.Context, limit int) ([]dto.ActivityDTO, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	rows, err := uc.repo.RecentMovements(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toActivityDTO(row))
	}
	return out, nil
}

// ClientHistory lista todos los movimientos de un cliente, más recientes primero.
func (uc *ReportsUseCase) ClientHistory(ctx context.Context, clientID string) ([]dto.MovementDetailDTO, error) {
	rows, err := uc.repo.MovementsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toDetailDTOs(rows), nil
}

// toActivityDTO etiqueta una fila según su evento más reciente: con
// devolución registrada es "return" (y At es la devolución); abierta es
// "checkout".
func toActivityDTO(row repository.MovementDetail) dto.ActivityDTO {
	kind := dto.ActivityCheckout
	at := row.CheckoutAt
	if row.ReturnedAt != nil {
		kind = dto.ActivityReturn
		at = *row.ReturnedAt
	}
	return dto.ActivityDTO{Kind: kind, At: at, Movement: toDetailDTO(row)}
}

func toDetailDTO(row repository.MovementDetail) dto.MovementDetailDTO {
	return dto.MovementDetailDTO{
		MovementID:    row.MovementID,
		EquipmentID:   row.EquipmentID,
		EquipmentName: row.EquipmentName,
		UserID:        row.UserID,
		UserName:      row.UserName,
		ClientID:      row.ClientID,
		ClientName:    row.ClientName,
		Quantity:      row.Quantity,
		CheckoutAt:    row.CheckoutAt,
		ReturnedAt:    row.ReturnedAt,
		Note:          row.Note,
	}
}

func toDetailDTOs(rows []repository.MovementDetail) []dto.MovementDetailDTO {
	out := make([]dto.MovementDetailDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDetailDTO(row))
	}
	return out
}
