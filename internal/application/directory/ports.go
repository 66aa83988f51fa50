package directory

import (
	"context"

	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

// TxRunner igual que ledger.TxRunner: la desactivación de equipos necesita
// verificar préstamos abiertos y cambiar el estado en la misma transacción.
// La interfaz se declara del lado del consumidor; la implementación de
// postgres satisface ambas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error) error
}
