package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository (usable con pool o tx).
// Los movimientos son el libro mayor del sistema: solo se insertan y se
// marcan como devueltos, nunca se actualizan en sitio ni se borran.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, equipment_id, user_id, client_id, checkout_at, quantity, returned_at, note`

// Create inserta un movimiento de salida.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, equipment_id, user_id, client_id, checkout_at, quantity, returned_at, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.EquipmentID, m.UserID, m.ClientID, m.CheckoutAt, m.Quantity, m.ReturnedAt, m.Note,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get movement")
}

// GetForUpdate obtiene un movimiento y bloquea la fila, para que dos
// devoluciones concurrentes del mismo movimiento se serialicen.
func (r *MovementRepo) GetForUpdate(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get movement for update")
}

// SetReturned marca el movimiento como devuelto en el instante dado.
func (r *MovementRepo) SetReturned(id string, at time.Time) error {
	query := `UPDATE movements SET returned_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("set movement returned: %w", err)
	}
	return nil
}

// CountOpenByEquipment cuenta movimientos abiertos de un equipo.
func (r *MovementRepo) CountOpenByEquipment(equipmentID string) (int, error) {
	query := `SELECT COUNT(*) FROM movements WHERE equipment_id = $1 AND returned_at IS NULL`
	var n int
	if err := r.q.QueryRow(context.Background(), query, equipmentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count open movements: %w", err)
	}
	return n, nil
}

// CountByUser cuenta movimientos (abiertos o cerrados) que referencian
// al usuario. Usado como pre-chequeo antes de borrar un usuario.
func (r *MovementRepo) CountByUser(userID string) (int, error) {
	query := `SELECT COUNT(*) FROM movements WHERE user_id = $1`
	var n int
	if err := r.q.QueryRow(context.Background(), query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements by user: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) scanOne(row pgx.Row, op string) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.EquipmentID, &m.UserID, &m.ClientID, &m.CheckoutAt, &m.Quantity, &m.ReturnedAt, &m.Note)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}
