package usecase

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/exesman-api/internal/application/auth"
	"github.com/jhoicas/exesman-api/internal/application/dto"
	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Me obtiene el perfil del propio actor.
func (uc *UserUseCase) Me(actor policy.Actor) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID aplicando la política de visibilidad:
// admin cualquiera, manager los de su empresa, cualquier usuario a sí mismo.
func (uc *UserUseCase) GetByID(actor policy.Actor, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanViewUser(actor, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios según el rol: admin todos; manager los de su empresa
// completa (no solo reportes directos); employee solo a sí mismo.
func (uc *UserUseCase) List(actor policy.Actor, limit, offset int) (*dto.UserListResponse, error) {
	var (
		list []*entity.User
		err  error
	)
	switch actor.Role {
	case entity.RoleAdmin:
		list, err = uc.repo.List(limit, offset)
	case entity.RoleManager:
		list, err = uc.repo.ListByCompany(actor.CompanyID, limit, offset)
	default:
		var self *entity.User
		self, err = uc.repo.GetByID(actor.ID)
		if self != nil {
			list = []*entity.User{self}
		}
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items}, nil
}

// Subordinates lista los reportes directos del actor (manager/admin):
// usuarios cuyo manager_id == actor.ID.
func (uc *UserUseCase) Subordinates(actor policy.Actor) (*dto.UserListResponse, error) {
	if err := policy.CanListSubordinates(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByManager(actor.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items}, nil
}

// Update actualiza un usuario. Admin modifica a cualquiera incluido el rol;
// un usuario se modifica a sí mismo pero el intento de cambiar su propio rol
// falla con ErrForbidden. El password entrante se re-hashea con bcrypt antes
// de persistir; el texto plano nunca toca el repositorio.
func (uc *UserUseCase) Update(actor policy.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	changesRole := in.Role != nil && *in.Role != user.Role
	if err := policy.CanUpdateUser(actor, user, changesRole); err != nil {
		return nil, err
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.ManagerID != nil {
		user.ManagerID = in.ManagerID
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = string(hash)
	}
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario (solo admin). Eliminarse a sí mismo falla con
// ErrSelfDeletion (400).
func (uc *UserUseCase) Delete(actor policy.Actor, id string) error {
	if err := policy.CanDeleteUser(actor, id); err != nil {
		return err
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
