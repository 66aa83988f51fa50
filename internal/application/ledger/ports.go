package ledger

import (
	"context"

	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// préstamos: o se escriben movimiento y stock juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de un préstamo.
type ReceiptGenerator interface {
	GenerateReceipt(
		ctx context.Context,
		mov *entity.Movement,
		equipment *entity.Equipment,
		user *entity.User,
		client *entity.Client,
	) ([]byte, error)
}
