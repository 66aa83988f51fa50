package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/application/reports"
)

// ReportHandler maneja las vistas de reporte (solo lectura).
type ReportHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      KPIs del dashboard
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// OpenMovements godoc
// @Summary      Préstamos abiertos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementDetailDTO
// @Router       /api/reports/open [get]
func (h *ReportHandler) OpenMovements(c *fiber.Ctx) error {
	out, err := h.uc.OpenMovements(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RecentActivity godoc
// @Summary      Actividad reciente (checkouts y devoluciones)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {array}  dto.ActivityDTO
// @Router       /api/reports/activity [get]
func (h *ReportHandler) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	out, err := h.uc.RecentActivity(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ClientHistory godoc
// @Summary      Historial de movimientos de un cliente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}  dto.MovementDetailDTO
// @Router       /api/reports/clients/{id}/history [get]
func (h *ReportHandler) ClientHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ClientHistory(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
