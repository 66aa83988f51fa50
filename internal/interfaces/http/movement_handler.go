package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/application/ledger"
	"github.com/jhoicas/Prestamos-api/internal/domain"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
)

// MovementHandler maneja checkouts, devoluciones y comprobantes.
type MovementHandler struct {
	uc        *ledger.LedgerUseCase
	receiptUC *ledger.ReceiptUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.LedgerUseCase, receiptUC *ledger.ReceiptUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, receiptUC: receiptUC}
}

// CheckOut godoc
// @Summary      Registrar préstamo (checkout)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckOutRequest  true  "equipment_id, client_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/checkout [post]
func (h *MovementHandler) CheckOut(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	}
	var in dto.CheckOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.CheckOut(c.UserContext(), ledger.CheckOutInput{
		EquipmentID: in.EquipmentID,
		UserID:      userID,
		ClientID:    in.ClientID,
		Quantity:    in.Quantity,
		Note:        in.Note,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// BatchCheckOut godoc
// @Summary      Registrar préstamo por lotes (cantidad 1 por equipo, éxito parcial)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchCheckOutRequest  true  "equipment_ids, client_id"
// @Success      200   {object}  dto.BatchCheckOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/checkout-batch [post]
func (h *MovementHandler) BatchCheckOut(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	}
	var in dto.BatchCheckOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.EquipmentIDs) == 0 || in.ClientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "equipment_ids y client_id son requeridos"})
	}
	succeeded, skipped, err := h.uc.BatchCheckOut(c.UserContext(), in.EquipmentIDs, userID, in.ClientID, in.Note)
	if err != nil {
		return movementError(c, err)
	}
	out := dto.BatchCheckOutResponse{
		Succeeded: make([]dto.MovementResponse, 0, len(succeeded)),
		Skipped:   make([]dto.SkippedItemDTO, 0, len(skipped)),
	}
	for _, mov := range succeeded {
		out.Succeeded = append(out.Succeeded, *toMovementResponse(mov))
	}
	for _, s := range skipped {
		out.Skipped = append(out.Skipped, dto.SkippedItemDTO{EquipmentID: s.EquipmentID, Reason: s.Reason})
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Registrar devolución
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/return [post]
func (h *MovementHandler) Return(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	mov, err := h.uc.Return(c.UserContext(), id)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// Receipt godoc
// @Summary      Descargar comprobante del préstamo en PDF
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/receipt [get]
func (h *MovementHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, err := h.receiptUC.GenerateReceipt(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

// movementError traduce los errores del motor de préstamos a HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyReturned):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RETURNED", Message: err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén no disponible, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		EquipmentID: m.EquipmentID,
		UserID:      m.UserID,
		ClientID:    m.ClientID,
		CheckoutAt:  m.CheckoutAt,
		Quantity:    m.Quantity,
		ReturnedAt:  m.ReturnedAt,
		Note:        m.Note,
	}
}
