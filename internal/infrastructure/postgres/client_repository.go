package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, contact, status, created_at`

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, contact, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Contact, c.Status, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Contact, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List lista clientes con paginación, sin filtrar.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(c *entity.Client) error {
	query := `UPDATE clients SET name = $2, contact = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Contact)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// SetStatus cambia el estado (active/inactive). Baja lógica, nunca DELETE.
func (r *ClientRepo) SetStatus(id, status string) error {
	query := `UPDATE clients SET status = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("set client status: %w", err)
	}
	return nil
}
