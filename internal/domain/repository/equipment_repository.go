package repository

import "github.com/jhoicas/Prestamos-api/internal/domain/entity"

// EquipmentRepository define el puerto de persistencia para equipos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar las
// lecturas-modificaciones de stock dentro de una transacción.
type EquipmentRepository interface {
	Create(e *entity.Equipment) error
	GetByID(id string) (*entity.Equipment, error)
	GetForUpdate(id string) (*entity.Equipment, error)
	ListActive(limit, offset int) ([]*entity.Equipment, error)
	ListAll(limit, offset int) ([]*entity.Equipment, error)
	Update(e *entity.Equipment) error
	UpdateStock(id string, quantity int) error
	SetStatus(id, status string) error
}
