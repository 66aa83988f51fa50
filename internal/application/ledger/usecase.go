package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Prestamos-api/internal/domain"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

// LedgerUseCase registra checkouts y devoluciones de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) sobre el equipo y Commit/Rollback.
// Es el único escritor de quantity_in_stock y returned_at.
type LedgerUseCase struct {
	txRunner   TxRunner
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:   txRunner,
		userRepo:   userRepo,
		clientRepo: clientRepo,
	}
}

// CheckOutInput entrada para registrar un préstamo.
type CheckOutInput struct {
	EquipmentID string
	UserID      string
	ClientID    string
	Quantity    int
	Note        string
}

// SkippedItem equipo omitido en un checkout por lotes, con el motivo.
type SkippedItem struct {
	EquipmentID string
	Reason      string
}

// CheckOut registra un préstamo: dentro de una sola transacción bloquea la
// fila del equipo, verifica stock suficiente, inserta el movimiento abierto
// y resta la cantidad del stock. La verificación y la resta comparten la tx
// para que dos checkouts concurrentes no puedan sobregirar el stock.
func (uc *LedgerUseCase) CheckOut(ctx context.Context, input CheckOutInput) (*entity.Movement, error) {
	if input.Quantity < 1 {
		return nil, fmt.Errorf("cantidad %d: %w", input.Quantity, domain.ErrInvalidInput)
	}
	if input.EquipmentID == "" || input.UserID == "" || input.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Pre-checks fuera de la tx para mensajes claros; las FKs del almacén
	// son la garantía final.
	user, err := uc.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", input.UserID, domain.ErrNotFound)
	}
	client, err := uc.clientRepo.GetByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.Status != entity.ClientStatusActive {
		return nil, fmt.Errorf("cliente %s: %w", input.ClientID, domain.ErrNotFound)
	}

	// El reloj se captura una vez por operación y se usa en toda la tx.
	now := time.Now()

	var mov *entity.Movement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		// Bloquea la fila del equipo (SELECT FOR UPDATE)
		equip, err := equipmentRepo.GetForUpdate(input.EquipmentID)
		if err != nil {
			return err
		}
		if equip == nil || !equip.IsActive() {
			return fmt.Errorf("equipo %s: %w", input.EquipmentID, domain.ErrNotFound)
		}
		if equip.QuantityInStock < input.Quantity {
			return fmt.Errorf("equipo %s: %w", input.EquipmentID, domain.ErrInsufficientStock)
		}
		mov = &entity.Movement{
			ID:          uuid.New().String(),
			EquipmentID: input.EquipmentID,
			UserID:      input.UserID,
			ClientID:    input.ClientID,
			CheckoutAt:  now,
			Quantity:    input.Quantity,
			Note:        input.Note,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return equipmentRepo.UpdateStock(equip.ID, equip.QuantityInStock-input.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// BatchCheckOut presta varios equipos juntos con cantidad 1 cada uno.
// Cada item es un CheckOut independiente: los que fallen se reportan en
// skipped con su motivo y no abortan el lote (éxito parcial esperado).
func (uc *LedgerUseCase) BatchCheckOut(
	ctx context.Context,
	equipmentIDs []string,
	userID, clientID, note string,
) ([]*entity.Movement, []SkippedItem, error) {
	if len(equipmentIDs) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	var succeeded []*entity.Movement
	var skipped []SkippedItem
	for _, equipmentID := range equipmentIDs {
		mov, err := uc.CheckOut(ctx, CheckOutInput{
			EquipmentID: equipmentID,
			UserID:      userID,
			ClientID:    clientID,
			Quantity:    1,
			Note:        note,
		})
		if err != nil {
			skipped = append(skipped, SkippedItem{
				EquipmentID: equipmentID,
				Reason:      skipReason(err),
			})
			continue
		}
		succeeded = append(succeeded, mov)
	}
	return succeeded, skipped, nil
}

// Return cierra un préstamo: dentro de una sola transacción bloquea el
// movimiento, rechaza devoluciones repetidas, marca returned_at y suma la
// cantidad de vuelta al stock del equipo. El stock se incrementa exactamente
// una vez por movimiento.
func (uc *LedgerUseCase) Return(ctx context.Context, movementID string) (*entity.Movement, error) {
	if movementID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		m, err := movRepo.GetForUpdate(movementID)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("movimiento %s: %w", movementID, domain.ErrNotFound)
		}
		if m.ReturnedAt != nil {
			return fmt.Errorf("movimiento %s: %w", movementID, domain.ErrAlreadyReturned)
		}
		if err := movRepo.SetReturned(m.ID, now); err != nil {
			return err
		}
		equip, err := equipmentRepo.GetForUpdate(m.EquipmentID)
		if err != nil {
			return err
		}
		if equip == nil {
			return fmt.Errorf("equipo %s: %w", m.EquipmentID, domain.ErrNotFound)
		}
		if err := equipmentRepo.UpdateStock(equip.ID, equip.QuantityInStock+m.Quantity); err != nil {
			return err
		}
		m.ReturnedAt = &now
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// skipReason traduce el error de un item del lote a un código estable.
func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return "INVALID_INPUT"
	default:
		return "ERROR"
	}
}
