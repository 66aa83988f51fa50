package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/domain"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

// EquipmentUseCase aplica reglas de negocio para el catálogo de equipos.
// No toca el stock por préstamos: eso es exclusivo del motor de préstamos.
type EquipmentUseCase struct {
	repo     repository.EquipmentRepository
	txRunner TxRunner
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository, txRunner TxRunner) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, txRunner: txRunner}
}

// Create registra un equipo nuevo con su cantidad provista inicial.
func (uc *EquipmentUseCase) Create(in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name requerido: %w", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("cantidad %d: %w", in.Quantity, domain.ErrInvalidInput)
	}
	e := &entity.Equipment{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Description:     in.Description,
		QuantityInStock: in.Quantity,
		RegisteredAt:    time.Now(),
		Status:          entity.EquipmentStatusActive,
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	return toEquipmentResponse(e), nil
}

// List lista solo equipos activos (vista de catálogo por defecto).
func (uc *EquipmentUseCase) List(limit, offset int) ([]*dto.EquipmentResponse, error) {
	list, err := uc.repo.ListActive(limit, offset)
	if err != nil {
		return nil, err
	}
	return toEquipmentResponses(list), nil
}

// ListAll lista todos los equipos, incluidos los inactivos (vista admin).
func (uc *EquipmentUseCase) ListAll(limit, offset int) ([]*dto.EquipmentResponse, error) {
	list, err := uc.repo.ListAll(limit, offset)
	if err != nil {
		return nil, err
	}
	return toEquipmentResponses(list), nil
}

// GetByID obtiene un equipo por ID. Devuelve nil si no existe.
func (uc *EquipmentUseCase) GetByID(id string) (*dto.EquipmentResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return toEquipmentResponse(e), nil
}

// Update corrige nombre, descripción y cantidad de catálogo. El cambio de
// cantidad es un re-aprovisionamiento y se hace con la fila bloqueada para
// no pisar un checkout concurrente.
func (uc *EquipmentUseCase) Update(ctx context.Context, id string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name requerido: %w", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("cantidad %d: %w", in.Quantity, domain.ErrInvalidInput)
	}
	var out *dto.EquipmentResponse
	err := uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		e, err := equipmentRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("equipo %s: %w", id, domain.ErrNotFound)
		}
		e.Name = in.Name
		e.Description = in.Description
		e.QuantityInStock = in.Quantity
		if err := equipmentRepo.Update(e); err != nil {
			return err
		}
		out = toEquipmentResponse(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Deactivate marca un equipo como inactivo (baja lógica). Prohibido si tiene
// préstamos abiertos; la verificación y el cambio de estado comparten la
// transacción para que un checkout concurrente no se cuele en medio.
func (uc *EquipmentUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		e, err := equipmentRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("equipo %s: %w", id, domain.ErrNotFound)
		}
		open, err := movRepo.CountOpenByEquipment(id)
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("equipo %s con %d préstamos abiertos: %w", id, open, domain.ErrHasOpenMovements)
		}
		return equipmentRepo.SetStatus(id, entity.EquipmentStatusInactive)
	})
}

func toEquipmentResponse(e *entity.Equipment) *dto.EquipmentResponse {
	if e == nil {
		return nil
	}
	return &dto.EquipmentResponse{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		QuantityInStock: e.QuantityInStock,
		RegisteredAt:    e.RegisteredAt,
		Status:          e.Status,
	}
}

func toEquipmentResponses(list []*entity.Equipment) []*dto.EquipmentResponse {
	out := make([]*dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEquipmentResponse(e))
	}
	return out
}
