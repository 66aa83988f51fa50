package repository

import (
	"time"

	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos
// (préstamos). Los movimientos se insertan una vez y se cierran una vez;
// nunca se eliminan.
type MovementRepository interface {
	Create(m *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	GetForUpdate(id string) (*entity.Movement, error)
	SetReturned(id string, at time.Time) error
	CountOpenByEquipment(equipmentID string) (int, error)
	CountByUser(userID string) (int, error)
}
