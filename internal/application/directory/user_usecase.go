package directory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/domain"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	"github.com/jhoicas/Prestamos-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios del staff.
type UserUseCase struct {
	repo    repository.UserRepository
	movRepo repository.MovementRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, movRepo repository.MovementRepository) *UserUseCase {
	return &UserUseCase{repo: repo, movRepo: movRepo}
}

// Create registra un usuario: hashea el password con bcrypt y persiste.
// El password en claro no se conserva después de la llamada.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("name, email y password requeridos: %w", domain.ErrInvalidInput)
	}
	level := in.AccessLevel
	if level == "" {
		level = entity.AccessTecnico
	}
	if level != entity.AccessAdmin && level != entity.AccessTecnico {
		return nil, fmt.Errorf("access_level %q: %w", in.AccessLevel, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		RoleTitle:    in.RoleTitle,
		AccessLevel:  level,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// GetByID obtiene un usuario por ID. Devuelve nil si no existe.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return toUserResponse(u), nil
}

// List lista usuarios sin filtrar.
func (uc *UserUseCase) List(limit, offset int) ([]*dto.UserResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Update actualiza nombre, cargo y nivel de acceso; si llega password lo
// rehashea. Devuelve nil si el usuario no existe.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.RoleTitle != "" {
		u.RoleTitle = in.RoleTitle
	}
	if in.AccessLevel != "" {
		if in.AccessLevel != entity.AccessAdmin && in.AccessLevel != entity.AccessTecnico {
			return nil, fmt.Errorf("access_level %q: %w", in.AccessLevel, domain.ErrInvalidInput)
		}
		u.AccessLevel = in.AccessLevel
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Delete elimina un usuario. Prohibido si algún movimiento lo referencia:
// el pre-check da un error limpio y la FK del almacén es la garantía final
// ante borrados concurrentes (el repo traduce la violación al mismo error).
func (uc *UserUseCase) Delete(id string) error {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	count, err := uc.movRepo.CountByUser(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("usuario %s con %d movimientos: %w", id, count, domain.ErrReferencedByMovements)
	}
	return uc.repo.Delete(id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		RoleTitle:   u.RoleTitle,
		AccessLevel: u.AccessLevel,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
