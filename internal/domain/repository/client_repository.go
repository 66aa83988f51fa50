package repository

import "github.com/jhoicas/Prestamos-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
	Update(c *entity.Client) error
	SetStatus(id, status string) error
}
