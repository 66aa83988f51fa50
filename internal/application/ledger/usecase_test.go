package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Prestamos-api/internal/application/ledger"
	"github.com/jhoicas/Prestamos-api/internal/domain"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore imita el comportamiento transaccional del almacén real: el
// fakeTxRunner toma el mutex durante todo el callback, igual que el bloqueo
// de fila serializa los checkouts concurrentes en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	equipment map[string]*entity.Equipment
	movements map[string]*entity.Movement
	users     map[string]*entity.User
	clients   map[string]*entity.Client
}

func newMemStore() *memStore {
	return &memStore{
		equipment: make(map[string]*entity.Equipment),
		movements: make(map[string]*entity.Movement),
		users:     make(map[string]*entity.User),
		clients:   make(map[string]*entity.Client),
	}
}

// fakeTxRunner serializa los callbacks con el mutex del store.
type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(&txMovementRepo{store: r.store}, &txEquipmentRepo{store: r.store})
}

// txEquipmentRepo opera sin tomar el mutex: el fakeTxRunner ya lo tiene.
type txEquipmentRepo struct {
	store *memStore
}

func (r *txEquipmentRepo) Create(e *entity.Equipment) error {
	cp := *e
	r.store.equipment[e.ID] = &cp
	return nil
}

func (r *txEquipmentRepo) GetByID(id string) (*entity.Equipment, error) { return r.get(id) }

func (r *txEquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) { return r.get(id) }

func (r *txEquipmentRepo) get(id string) (*entity.Equipment, error) {
	e, ok := r.store.equipment[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *txEquipmentRepo) ListActive(limit, offset int) ([]*entity.Equipment, error) {
	return nil, nil
}

func (r *txEquipmentRepo) ListAll(limit, offset int) ([]*entity.Equipment, error) {
	return nil, nil
}

func (r *txEquipmentRepo) Update(e *entity.Equipment) error {
	cp := *e
	r.store.equipment[e.ID] = &cp
	return nil
}

func (r *txEquipmentRepo) UpdateStock(id string, quantity int) error {
	r.store.equipment[id].QuantityInStock = quantity
	return nil
}

func (r *txEquipmentRepo) SetStatus(id, status string) error {
	r.store.equipment[id].Status = status
	return nil
}

type txMovementRepo struct {
	store *memStore
}

func (r *txMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.store.movements[m.ID] = &cp
	return nil
}

func (r *txMovementRepo) GetByID(id string) (*entity.Movement, error) { return r.get(id) }

func (r *txMovementRepo) GetForUpdate(id string) (*entity.Movement, error) { return r.get(id) }

func (r *txMovementRepo) get(id string) (*entity.Movement, error) {
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *txMovementRepo) SetReturned(id string, at time.Time) error {
	t := at
	r.store.movements[id].ReturnedAt = &t
	return nil
}

func (r *txMovementRepo) CountOpenByEquipment(equipmentID string) (int, error) {
	n := 0
	for _, m := range r.store.movements {
		if m.EquipmentID == equipmentID && m.ReturnedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *txMovementRepo) CountByUser(userID string) (int, error) {
	n := 0
	for _, m := range r.store.movements {
		if m.UserID == userID {
			n++
		}
	}
	return n, nil
}

// fakeUserRepo y fakeClientRepo se usan fuera de la tx (pre-checks).
type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(u *entity.User) error { return nil }

func (r *fakeUserRepo) Delete(id string) error { return nil }

type fakeClientRepo struct {
	store *memStore
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *c
	r.store.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }

func (r *fakeClientRepo) Update(c *entity.Client) error { return nil }

func (r *fakeClientRepo) SetStatus(id, status string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store  *memStore
	uc     *ledger.LedgerUseCase
	userID string
	client string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	userID := uuid.New().String()
	clientID := uuid.New().String()
	store.users[userID] = &entity.User{
		ID: userID, Name: "Laura Técnica", Email: "laura@test.local",
		AccessLevel: entity.AccessTecnico,
	}
	store.clients[clientID] = &entity.Client{
		ID: clientID, Name: "Obra Norte", Status: entity.ClientStatusActive,
	}
	uc := ledger.NewLedgerUseCase(
		&fakeTxRunner{store: store},
		&fakeUserRepo{store: store},
		&fakeClientRepo{store: store},
	)
	return &fixture{store: store, uc: uc, userID: userID, client: clientID}
}

func (f *fixture) addEquipment(t *testing.T, name string, stock int) string {
	t.Helper()
	id := uuid.New().String()
	f.store.equipment[id] = &entity.Equipment{
		ID: id, Name: name, QuantityInStock: stock,
		RegisteredAt: time.Now(), Status: entity.EquipmentStatusActive,
	}
	return id
}

func (f *fixture) stockOf(id string) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.equipment[id].QuantityInStock
}

func (f *fixture) openMovements(equipmentID string) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	n := 0
	for _, m := range f.store.movements {
		if m.EquipmentID == equipmentID && m.ReturnedAt == nil {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckOut
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckOut_DescuentaStockYCreaMovimiento(t *testing.T) {
	f := newFixture(t)
	equipID := f.addEquipment(t, "Taladro percutor", 5)

	mov, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
		EquipmentID: equipID,
		UserID:      f.userID,
		ClientID:    f.client,
		Quantity:    2,
		Note:        "obra calle 10",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.Equal(t, 3, f.stockOf(equipID), "el stock debe bajar de 5 a 3")
	assert.Equal(t, 2, mov.Quantity)
	assert.Nil(t, mov.ReturnedAt, "el movimiento nuevo debe estar abierto")
	assert.Equal(t, 1, f.openMovements(equipID))
}

func TestCheckOut_StockInsuficiente_NoMutaNada(t *testing.T) {
	f := newFixture(t)
	equipID := f.addEquipment(t, "Generador", 1)

	_, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
		EquipmentID: equipID,
		UserID:      f.userID,
		ClientID:    f.client,
		Quantity:    3,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 1, f.stockOf(equipID), "el stock no debe cambiar tras el rechazo")
	assert.Equal(t, 0, f.openMovements(equipID), "no debe quedar movimiento registrado")
}

func TestCheckOut_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	equipID := f.addEquipment(t, "Andamio", 10)

	for _, qty := range []int{0, -1} {
		_, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
			EquipmentID: equipID,
			UserID:      f.userID,
			ClientID:    f.client,
			Quantity:    qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
	assert.Equal(t, 10, f.stockOf(equipID))
}

func TestCheckOut_EquipoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
		EquipmentID: uuid.New().String(),
		UserID:      f.userID,
		ClientID:    f.client,
		Quantity:    1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckOut_EquipoInactivo(t *testing.T) {
	f := newFixture(t)
	equipID := f.addEquipment(t, "Compresor retirado", 4)
	f.store.equipment[equipID].Status = entity.EquipmentStatusInactive

	_, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
		EquipmentID: equipID,
		UserID:      f.userID,
		ClientID:    f.client,
		Quantity:    1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "equipo inactivo no debe prestarse")
	assert.Equal(t, 4, f.stockOf(equipID))
}

func TestCheckOut_ClienteInactivo(t *testing.T) {
	f := newFixture(t)
	equipID := f.addEquipment(t, "Mezcladora", 2)
	f.store.clients[f.client].Status = entity.ClientStatusInactive

	_, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
		EquipmentID: equipID,
		UserID:      f.userID,
		ClientID:    f.client,
		Quantity:    1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// N checkouts concurrentes contra stock S: exactamente S deben tener éxito
// y el stock final debe quedar en cero, nunca negativo.
func TestCheckOut_Concurrente_NuncaSobregira(t *testing.T) {
	const stock = 5
	const workers = 12

	f := newFixture(t)
	equipID := f.addEquipment(t, "Martillo demoledor", stock)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
				EquipmentID: equipID,
				UserID:      f.userID,
				ClientID:    f.client,
				Quantity:    1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			insufficient++
		}
	}

	assert.Equal(t, stock, ok, "deben triunfar exactamente %d checkouts", stock)
	assert.Equal(t, workers-stock, insufficient)
	assert.Equal(t, 0, f.stockOf(equipID), "el stock final debe ser cero")
	assert.Equal(t, stock, f.openMovements(equipID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Return
// ──────────────────────────────────────────────────────────────────────────────

func TestReturn_RestauraStock(t *testing.T) {
	f := newFixture(t)
	equipID := f.addEquipment(t, "Taladro", 5)

	mov, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
		EquipmentID: equipID, UserID: f.userID, ClientID: f.client, Quantity: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 3, f.stockOf(equipID))

	returned, err := f.uc.Return(context.Background(), mov.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedAt, "el movimiento debe quedar cerrado")

	assert.Equal(t, 5, f.stockOf(equipID), "el stock debe volver al valor original")
	assert.Equal(t, 0, f.openMovements(equipID))
}

func TestReturn_DobleDevolucion_IncrementaUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	equipID := f.addEquipment(t, "Nivel láser", 3)

	mov, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
		EquipmentID: equipID, UserID: f.userID, ClientID: f.client, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = f.uc.Return(context.Background(), mov.ID)
	require.NoError(t, err)

	_, err = f.uc.Return(context.Background(), mov.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyReturned, "la segunda devolución debe rechazarse")

	assert.Equal(t, 3, f.stockOf(equipID), "el stock debe incrementarse exactamente una vez")
}

func TestReturn_MovimientoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Return(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Ciclo completo: mientras el préstamo está abierto, stock + prestado debe
// conservar el total provisto; tras devolver, todo vuelve al stock.
func TestPrestamoYDevolucion_ConservaElTotal(t *testing.T) {
	const provisioned = 8

	f := newFixture(t)
	equipID := f.addEquipment(t, "Rotomartillo", provisioned)

	mov, err := f.uc.CheckOut(context.Background(), ledger.CheckOutInput{
		EquipmentID: equipID, UserID: f.userID, ClientID: f.client, Quantity: 3,
	})
	require.NoError(t, err)

	onLoan := 0
	f.store.mu.Lock()
	for _, m := range f.store.movements {
		if m.ReturnedAt == nil {
			onLoan += m.Quantity
		}
	}
	f.store.mu.Unlock()
	assert.Equal(t, provisioned, f.stockOf(equipID)+onLoan,
		"stock + prestado debe ser igual al total provisto")

	_, err = f.uc.Return(context.Background(), mov.ID)
	require.NoError(t, err)
	assert.Equal(t, provisioned, f.stockOf(equipID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests BatchCheckOut
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchCheckOut_ExitoParcial(t *testing.T) {
	f := newFixture(t)
	conStock := f.addEquipment(t, "Pistola de calor", 2)
	sinStock := f.addEquipment(t, "Vibrador de concreto", 0)
	inexistente := uuid.New().String()

	succeeded, skipped, err := f.uc.BatchCheckOut(
		context.Background(),
		[]string{conStock, sinStock, inexistente},
		f.userID, f.client, "kit obra sur",
	)
	require.NoError(t, err, "el lote no debe abortar por items fallidos")

	require.Len(t, succeeded, 1)
	assert.Equal(t, conStock, succeeded[0].EquipmentID)
	assert.Equal(t, 1, succeeded[0].Quantity, "cada item del lote se presta con cantidad 1")

	require.Len(t, skipped, 2)
	reasons := map[string]string{}
	for _, s := range skipped {
		reasons[s.EquipmentID] = s.Reason
	}
	assert.Equal(t, "INSUFFICIENT_STOCK", reasons[sinStock])
	assert.Equal(t, "NOT_FOUND", reasons[inexistente])

	assert.Equal(t, 1, f.stockOf(conStock))
	assert.Equal(t, 0, f.stockOf(sinStock), "el item sin stock no debe mutar")
}

func TestBatchCheckOut_ListaVacia(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.uc.BatchCheckOut(context.Background(), nil, f.userID, f.client, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
