package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Prestamos-api/internal/application/directory"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/domain"
)

// EquipmentHandler maneja las peticiones HTTP para el catálogo de equipos.
type EquipmentHandler struct {
	uc *directory.EquipmentUseCase
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *directory.EquipmentUseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar equipo
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipmentRequest  true  "Datos del equipo"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/equipment [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar equipos activos
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int   false  "Límite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Param        all     query  bool  false  "Incluir inactivos"
// @Success      200     {array}  dto.EquipmentResponse
// @Router       /api/equipment [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	var (
		out []*dto.EquipmentResponse
		err error
	)
	if c.QueryBool("all") {
		out, err = h.uc.ListAll(limit, offset)
	} else {
		out, err = h.uc.List(limit, offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener equipo por ID
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipo no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar equipo (re-aprovisionamiento incluido)
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del equipo"
// @Param        body  body  dto.UpdateEquipmentRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipo no encontrado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Dar de baja un equipo (prohibido con préstamos abiertos)
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [delete]
func (h *EquipmentHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Deactivate(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipo no encontrado"})
		case errors.Is(err, domain.ErrHasOpenMovements):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_OPEN_MOVEMENTS", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// pageParams extrae limit/offset de la query con los topes habituales.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
