package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/exesman-api/internal/application/dto"
	"github.com/jhoicas/exesman-api/internal/application/usecase"
	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
)

func seedCompanies() *memCompanyRepo {
	return newMemCompanyRepo(
		&entity.Company{ID: testCompanyID, Name: "Acme Corp", Currency: "USD", CreatedAt: time.Now()},
		&entity.Company{ID: "c-otra", Name: "Globex", Currency: "EUR", CreatedAt: time.Now()},
	)
}

func TestCompanyCreate_SoloAdminYNombreUnico(t *testing.T) {
	repo := seedCompanies()
	uc := usecase.NewCompanyUseCase(repo)

	out, err := uc.Create(actorAdmin, dto.CreateCompanyRequest{Name: "Initech"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.DefaultCurrency, out.Currency, "moneda por defecto si no viene")

	_, err = uc.Create(actorAdmin, dto.CreateCompanyRequest{Name: "Acme Corp"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "nombre duplicado es 400, no 409")

	_, err = uc.Create(actorManager, dto.CreateCompanyRequest{Name: "Umbrella"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanyGetByID_AjenaEsForbidden(t *testing.T) {
	uc := usecase.NewCompanyUseCase(seedCompanies())

	out, err := uc.GetByID(actorEmp, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", out.Name)

	_, err = uc.GetByID(actorEmp, "c-otra")
	assert.ErrorIs(t, err, domain.ErrForbidden, "la empresa existe: 403, no 404")

	_, err = uc.GetByID(actorAdmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyList_PorRol(t *testing.T) {
	uc := usecase.NewCompanyUseCase(seedCompanies())

	all, err := uc.List(actorAdmin, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	own, err := uc.List(actorEmp, 0, 0)
	require.NoError(t, err)
	require.Len(t, own.Items, 1, "no-admin lista solo su empresa")
	assert.Equal(t, testCompanyID, own.Items[0].ID)
}

func TestCompanyUpdate(t *testing.T) {
	uc := usecase.NewCompanyUseCase(seedCompanies())

	currency := "COP"
	out, err := uc.Update(actorAdmin, testCompanyID, dto.UpdateCompanyRequest{Currency: &currency})
	require.NoError(t, err)
	assert.Equal(t, "COP", out.Currency)
	assert.Equal(t, "Acme Corp", out.Name, "los campos no enviados no cambian")

	taken := "Globex"
	_, err = uc.Update(actorAdmin, testCompanyID, dto.UpdateCompanyRequest{Name: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Re-enviar el propio nombre no dispara el chequeo de duplicado.
	same := "Acme Corp"
	_, err = uc.Update(actorAdmin, testCompanyID, dto.UpdateCompanyRequest{Name: &same})
	assert.NoError(t, err)

	_, err = uc.Update(actorEmp, testCompanyID, dto.UpdateCompanyRequest{Currency: &currency})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanyDelete_DelegaLaCascada(t *testing.T) {
	repo := seedCompanies()
	uc := usecase.NewCompanyUseCase(repo)

	assert.ErrorIs(t, uc.Delete(actorManager, testCompanyID), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(actorAdmin, "no-existe"), domain.ErrNotFound)

	require.NoError(t, uc.Delete(actorAdmin, testCompanyID))
	assert.Equal(t, []string{testCompanyID}, repo.deleted)

	got, err := repo.GetByID(testCompanyID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
