package directory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/domain"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

// ClientUseCase aplica reglas de negocio para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente nuevo.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name requerido: %w", domain.ErrInvalidInput)
	}
	c := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Status:    entity.ClientStatusActive,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toClientResponse(c), nil
}

// List lista clientes sin filtrar.
func (uc *ClientUseCase) List(limit, offset int) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update actualiza nombre y contacto. Devuelve nil si el cliente no existe.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	c.Contact = in.Contact
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Deactivate marca un cliente como inactivo. Baja lógica: los clientes
// referenciados por movimientos nunca se eliminan físicamente.
func (uc *ClientUseCase) Deactivate(id string) error {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return uc.repo.SetStatus(id, entity.ClientStatusInactive)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Contact:   c.Contact,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
