package repository

import "github.com/jhoicas/Prestamos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios del staff.
// Delete debe devolver domain.ErrReferencedByMovements si la FK de movimientos
// impide el borrado; la constraint del almacén es la garantía final.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	Update(u *entity.User) error
	Delete(id string) error
}
