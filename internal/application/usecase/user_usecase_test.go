package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/exesman-api/internal/application/dto"
	"github.com/jhoicas/exesman-api/internal/application/usecase"
	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
)

func TestUserMe(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers())

	out, err := uc.Me(actorEmp)
	require.NoError(t, err)
	assert.Equal(t, empID, out.ID)
	assert.Equal(t, "emp@exesman.test", out.Email)
}

func TestUserGetByID_Visibilidad(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers())

	_, err := uc.GetByID(actorManager, emp2ID)
	assert.NoError(t, err, "el manager ve a todos los de su empresa")

	_, err = uc.GetByID(actorEmp, emp2ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "un empleado no ve a otro")

	out, err := uc.GetByID(actorEmp, empID)
	require.NoError(t, err)
	assert.Equal(t, empID, out.ID, "uno siempre se ve a sí mismo")

	_, err = uc.GetByID(actorAdmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserList_PorRol(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers())

	all, err := uc.List(actorAdmin, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)

	company, err := uc.List(actorManager, 0, 0)
	require.NoError(t, err)
	assert.Len(t, company.Items, 4, "el manager lista su empresa completa, no solo reportes directos")

	self, err := uc.List(actorEmp, 0, 0)
	require.NoError(t, err)
	require.Len(t, self.Items, 1)
	assert.Equal(t, empID, self.Items[0].ID)
}

func TestUserSubordinates_SoloReportesDirectos(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers())

	out, err := uc.Subordinates(actorManager)
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "solo los usuarios con manager_id == actor")
	assert.Equal(t, empID, out.Items[0].ID)

	_, err = uc.Subordinates(actorEmp)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUpdate_CambioDePropioRolProhibido(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers())

	role := entity.RoleManager
	_, err := uc.Update(actorEmp, empID, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El mismo request hecho por un admin sí pasa.
	out, err := uc.Update(actorAdmin, empID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)

	// Enviar el rol que ya se tiene no cuenta como cambio de rol.
	same := entity.RoleManager
	promoted := policy.Actor{ID: out.ID, CompanyID: out.CompanyID, Role: out.Role}
	_, err = uc.Update(promoted, out.ID, dto.UpdateUserRequest{Role: &same})
	assert.NoError(t, err)
}

func TestUserUpdate_PasswordSeRehashea(t *testing.T) {
	repo := seedUsers()
	uc := usecase.NewUserUseCase(repo)

	pass := "nueva-clave-123"
	name := "Empleado Uno"
	_, err := uc.Update(actorEmp, empID, dto.UpdateUserRequest{Password: &pass, FullName: &name})
	require.NoError(t, err)

	stored, err := repo.GetByID(empID)
	require.NoError(t, err)
	assert.Equal(t, name, stored.FullName)
	assert.NotEqual(t, pass, stored.HashedPassword, "el texto plano nunca se persiste")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte(pass)))
}

func TestUserDelete(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers())

	assert.ErrorIs(t, uc.Delete(actorManager, empID), domain.ErrForbidden, "solo admin elimina")
	assert.ErrorIs(t, uc.Delete(actorAdmin, adminID), domain.ErrSelfDeletion)
	assert.ErrorIs(t, uc.Delete(actorAdmin, "no-existe"), domain.ErrNotFound)
	assert.NoError(t, uc.Delete(actorAdmin, empID))
}
