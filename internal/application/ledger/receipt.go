package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/Prestamos-api/internal/domain"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un préstamo a partir del
// movimiento y las entidades relacionadas.
type ReceiptUseCase struct {
	movRepo       repository.MovementRepository
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	clientRepo    repository.ClientRepository
	generator     ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	movRepo repository.MovementRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		movRepo:       movRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		clientRepo:    clientRepo,
		generator:     generator,
	}
}

// GenerateReceipt devuelve los bytes del PDF del comprobante.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, movementID string) ([]byte, error) {
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("movimiento %s: %w", movementID, domain.ErrNotFound)
	}
	equip, err := uc.equipmentRepo.GetByID(mov.EquipmentID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(mov.UserID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(mov.ClientID)
	if err != nil {
		return nil, err
	}
	if equip == nil || user == nil || client == nil {
		return nil, fmt.Errorf("movimiento %s: entidades relacionadas: %w", movementID, domain.ErrNotFound)
	}
	return uc.generator.GenerateReceipt(ctx, mov, equip, user, client)
}
