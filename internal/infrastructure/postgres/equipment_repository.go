package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación de EquipmentRepository (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `id, name, description, quantity_in_stock, registered_at, status`

// Create persiste un equipo nuevo.
func (r *EquipmentRepo) Create(e *entity.Equipment) error {
	query := `
		INSERT INTO equipment (id, name, description, quantity_in_stock, registered_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Name, e.Description, e.QuantityInStock, e.RegisteredAt, e.Status,
	)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID. Devuelve nil si no existe.
func (r *EquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get equipment")
}

// GetForUpdate obtiene un equipo y bloquea la fila (SELECT FOR UPDATE) para
// serializar las modificaciones de stock dentro de la transacción.
func (r *EquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get equipment for update")
}

// ListActive lista equipos activos ordenados por nombre.
func (r *EquipmentRepo) ListActive(limit, offset int) ([]*entity.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment WHERE status = 'active'
		ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListAll lista todos los equipos, incluidos inactivos.
func (r *EquipmentRepo) ListAll(limit, offset int) ([]*entity.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Update actualiza nombre, descripción y cantidad.
func (r *EquipmentRepo) Update(e *entity.Equipment) error {
	query := `
		UPDATE equipment SET name = $2, description = $3, quantity_in_stock = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, e.ID, e.Name, e.Description, e.QuantityInStock)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

// UpdateStock fija la cantidad en stock. Solo el motor de préstamos debe
// llamarlo, con la fila ya bloqueada por GetForUpdate.
func (r *EquipmentRepo) UpdateStock(id string, quantity int) error {
	query := `UPDATE equipment SET quantity_in_stock = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update equipment stock: %w", err)
	}
	return nil
}

// SetStatus cambia el estado (active/inactive).
func (r *EquipmentRepo) SetStatus(id, status string) error {
	query := `UPDATE equipment SET status = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("set equipment status: %w", err)
	}
	return nil
}

func (r *EquipmentRepo) scanOne(row pgx.Row, op string) (*entity.Equipment, error) {
	var e entity.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.QuantityInStock, &e.RegisteredAt, &e.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

func (r *EquipmentRepo) list(query string, limit, offset int) ([]*entity.Equipment, error) {
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		var e entity.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.QuantityInStock, &e.RegisteredAt, &e.Status); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
