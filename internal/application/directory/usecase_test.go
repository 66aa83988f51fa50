package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Prestamos-api/internal/application/directory"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/domain"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users   map[string]*entity.User
	deleted []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// fakeMovementRepo solo necesita los contadores para estos tests.
type fakeMovementRepo struct {
	byUser        map[string]int
	openByEquip   map[string]int
	repository.MovementRepository
}

func (r *fakeMovementRepo) CountByUser(userID string) (int, error) {
	return r.byUser[userID], nil
}

func (r *fakeMovementRepo) CountOpenByEquipment(equipmentID string) (int, error) {
	return r.openByEquip[equipmentID], nil
}

type fakeEquipmentRepo struct {
	equipment map[string]*entity.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{equipment: make(map[string]*entity.Equipment)}
}

func (r *fakeEquipmentRepo) Create(e *entity.Equipment) error {
	cp := *e
	r.equipment[e.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	return r.GetByID(id)
}

func (r *fakeEquipmentRepo) ListActive(limit, offset int) ([]*entity.Equipment, error) {
	var out []*entity.Equipment
	for _, e := range r.equipment {
		if e.Status == entity.EquipmentStatusActive {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) ListAll(limit, offset int) ([]*entity.Equipment, error) {
	var out []*entity.Equipment
	for _, e := range r.equipment {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeEquipmentRepo) Update(e *entity.Equipment) error {
	cp := *e
	r.equipment[e.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) UpdateStock(id string, quantity int) error {
	r.equipment[id].QuantityInStock = quantity
	return nil
}

func (r *fakeEquipmentRepo) SetStatus(id, status string) error {
	r.equipment[id].Status = status
	return nil
}

// fakeTxRunner pasa los repos directamente: estos tests no ejercitan
// concurrencia, solo las reglas de negocio dentro del callback.
type fakeTxRunner struct {
	movRepo   repository.MovementRepository
	equipRepo repository.EquipmentRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	return fn(r.movRepo, r.equipRepo)
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }

func (r *fakeClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) SetStatus(id, status string) error {
	r.clients[id].Status = status
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UserUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_HasheaElPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := directory.NewUserUseCase(repo, &fakeMovementRepo{byUser: map[string]int{}})

	out, err := uc.Create(dto.CreateUserRequest{
		Name:        "Carlos Admin",
		Email:       "carlos@test.local",
		Password:    "superSecreta99",
		AccessLevel: entity.AccessAdmin,
	})
	require.NoError(t, err)

	stored := repo.users[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "superSecreta99", stored.PasswordHash,
		"el password nunca debe guardarse en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(stored.PasswordHash), []byte("superSecreta99")),
		"el hash debe verificar contra el password original")
}

func TestUserCreate_AccessLevelPorDefectoEsTecnico(t *testing.T) {
	repo := newFakeUserRepo()
	uc := directory.NewUserUseCase(repo, &fakeMovementRepo{byUser: map[string]int{}})

	out, err := uc.Create(dto.CreateUserRequest{
		Name:     "Ana",
		Email:    "ana@test.local",
		Password: "otroSecreto1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AccessTecnico, out.AccessLevel)
}

func TestUserCreate_AccessLevelInvalido(t *testing.T) {
	repo := newFakeUserRepo()
	uc := directory.NewUserUseCase(repo, &fakeMovementRepo{byUser: map[string]int{}})

	_, err := uc.Create(dto.CreateUserRequest{
		Name:        "Pedro",
		Email:       "pedro@test.local",
		Password:    "secreta123",
		AccessLevel: "superjefe",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := directory.NewUserUseCase(repo, &fakeMovementRepo{byUser: map[string]int{}})

	_, err := uc.Create(dto.CreateUserRequest{
		Name: "Uno", Email: "mismo@test.local", Password: "secreta123",
	})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateUserRequest{
		Name: "Dos", Email: "mismo@test.local", Password: "secreta456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserDelete_ConMovimientos_Bloqueado(t *testing.T) {
	repo := newFakeUserRepo()
	userID := uuid.New().String()
	repo.users[userID] = &entity.User{ID: userID, Name: "Laura", Email: "laura@test.local"}

	uc := directory.NewUserUseCase(repo, &fakeMovementRepo{
		byUser: map[string]int{userID: 4},
	})

	err := uc.Delete(userID)
	require.ErrorIs(t, err, domain.ErrReferencedByMovements)
	assert.Empty(t, repo.deleted, "el usuario referenciado no debe borrarse")
	assert.Contains(t, repo.users, userID)
}

func TestUserDelete_SinMovimientos_OK(t *testing.T) {
	repo := newFakeUserRepo()
	userID := uuid.New().String()
	repo.users[userID] = &entity.User{ID: userID, Name: "Temporal", Email: "temp@test.local"}

	uc := directory.NewUserUseCase(repo, &fakeMovementRepo{byUser: map[string]int{}})

	require.NoError(t, uc.Delete(userID))
	assert.Equal(t, []string{userID}, repo.deleted)
}

func TestUserDelete_Inexistente(t *testing.T) {
	uc := directory.NewUserUseCase(newFakeUserRepo(), &fakeMovementRepo{byUser: map[string]int{}})

	err := uc.Delete(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUpdate_RehashSoloSiLlegaPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := directory.NewUserUseCase(repo, &fakeMovementRepo{byUser: map[string]int{}})

	out, err := uc.Create(dto.CreateUserRequest{
		Name: "Marta", Email: "marta@test.local", Password: "claveInicial9",
	})
	require.NoError(t, err)
	originalHash := repo.users[out.ID].PasswordHash

	_, err = uc.Update(out.ID, dto.UpdateUserRequest{Name: "Marta R."})
	require.NoError(t, err)
	assert.Equal(t, originalHash, repo.users[out.ID].PasswordHash,
		"sin password nuevo el hash no debe cambiar")

	_, err = uc.Update(out.ID, dto.UpdateUserRequest{Password: "claveNueva77"})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, repo.users[out.ID].PasswordHash)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests EquipmentUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestEquipmentCreate_Valido(t *testing.T) {
	equipRepo := newFakeEquipmentRepo()
	uc := directory.NewEquipmentUseCase(equipRepo, &fakeTxRunner{
		movRepo:   &fakeMovementRepo{openByEquip: map[string]int{}},
		equipRepo: equipRepo,
	})

	out, err := uc.Create(dto.CreateEquipmentRequest{
		Name:        "Taladro percutor",
		Description: "800W con mandril de 13mm",
		Quantity:    6,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, out.QuantityInStock)
	assert.Equal(t, entity.EquipmentStatusActive, out.Status)
	assert.NotEmpty(t, out.ID)
}

func TestEquipmentCreate_Invalido(t *testing.T) {
	equipRepo := newFakeEquipmentRepo()
	uc := directory.NewEquipmentUseCase(equipRepo, &fakeTxRunner{equipRepo: equipRepo})

	_, err := uc.Create(dto.CreateEquipmentRequest{Name: "", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateEquipmentRequest{Name: "Sierra", Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEquipmentDeactivate_ConPrestamosAbiertos_Bloqueado(t *testing.T) {
	equipRepo := newFakeEquipmentRepo()
	equipID := uuid.New().String()
	equipRepo.equipment[equipID] = &entity.Equipment{
		ID: equipID, Name: "Generador", QuantityInStock: 2,
		RegisteredAt: time.Now(), Status: entity.EquipmentStatusActive,
	}
	uc := directory.NewEquipmentUseCase(equipRepo, &fakeTxRunner{
		movRepo:   &fakeMovementRepo{openByEquip: map[string]int{equipID: 1}},
		equipRepo: equipRepo,
	})

	err := uc.Deactivate(context.Background(), equipID)
	require.ErrorIs(t, err, domain.ErrHasOpenMovements)
	assert.Equal(t, entity.EquipmentStatusActive, equipRepo.equipment[equipID].Status,
		"el equipo con préstamos abiertos debe seguir activo")
}

func TestEquipmentDeactivate_SinPrestamos_OK(t *testing.T) {
	equipRepo := newFakeEquipmentRepo()
	equipID := uuid.New().String()
	equipRepo.equipment[equipID] = &entity.Equipment{
		ID: equipID, Name: "Andamio", QuantityInStock: 0,
		RegisteredAt: time.Now(), Status: entity.EquipmentStatusActive,
	}
	uc := directory.NewEquipmentUseCase(equipRepo, &fakeTxRunner{
		movRepo:   &fakeMovementRepo{openByEquip: map[string]int{}},
		equipRepo: equipRepo,
	})

	require.NoError(t, uc.Deactivate(context.Background(), equipID))
	assert.Equal(t, entity.EquipmentStatusInactive, equipRepo.equipment[equipID].Status)
}

func TestEquipmentUpdate_Reaprovisiona(t *testing.T) {
	equipRepo := newFakeEquipmentRepo()
	equipID := uuid.New().String()
	equipRepo.equipment[equipID] = &entity.Equipment{
		ID: equipID, Name: "Compresor", QuantityInStock: 1,
		RegisteredAt: time.Now(), Status: entity.EquipmentStatusActive,
	}
	uc := directory.NewEquipmentUseCase(equipRepo, &fakeTxRunner{
		movRepo:   &fakeMovementRepo{openByEquip: map[string]int{}},
		equipRepo: equipRepo,
	})

	out, err := uc.Update(context.Background(), equipID, dto.UpdateEquipmentRequest{
		Name:     "Compresor 50L",
		Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, out.QuantityInStock)
	assert.Equal(t, "Compresor 50L", equipRepo.equipment[equipID].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ClientUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestClientDeactivate_BajaLogica(t *testing.T) {
	repo := newFakeClientRepo()
	uc := directory.NewClientUseCase(repo)

	out, err := uc.Create(dto.CreateClientRequest{Name: "Obra Norte", Contact: "3001234567"})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(out.ID))
	assert.Equal(t, entity.ClientStatusInactive, repo.clients[out.ID].Status,
		"el cliente debe quedar inactivo, nunca eliminado")
	assert.Contains(t, repo.clients, out.ID)
}

func TestClientDeactivate_Inexistente(t *testing.T) {
	uc := directory.NewClientUseCase(newFakeClientRepo())

	err := uc.Deactivate(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
