package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/exesman-api/internal/application/report"
	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
)

// Stubs mínimos: solo los métodos que el caso de uso ejercita hacen trabajo.

type stubExpenseRepo struct {
	expenses  []*entity.Expense
	lastScope policy.ExpenseScope
}

func (s *stubExpenseRepo) Create(context.Context, *entity.Expense) error { return nil }
func (s *stubExpenseRepo) GetByID(context.Context, string) (*entity.Expense, error) {
	return nil, nil
}
func (s *stubExpenseRepo) List(_ context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	s.lastScope = f.Scope
	var out []*entity.Expense
	for _, e := range s.expenses {
		if f.Scope.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (s *stubExpenseRepo) Update(context.Context, *entity.Expense) error { return nil }
func (s *stubExpenseRepo) UpdateStatus(context.Context, string, string, time.Time) (bool, error) {
	return false, nil
}
func (s *stubExpenseRepo) Stats(_ context.Context, scope policy.ExpenseScope) (*repository.ExpenseStats, error) {
	stats := &repository.ExpenseStats{TotalAmount: decimal.Zero, ApprovedAmount: decimal.Zero}
	for _, e := range s.expenses {
		if scope.Matches(e) {
			stats.TotalExpenses++
			stats.TotalAmount = stats.TotalAmount.Add(e.Amount)
		}
	}
	return stats, nil
}
func (s *stubExpenseRepo) Delete(context.Context, string) error { return nil }

type stubUserRepo struct{ user *entity.User }

func (s *stubUserRepo) Create(*entity.User) error { return nil }
func (s *stubUserRepo) GetByID(id string) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}
func (s *stubUserRepo) GetByEmail(string) (*entity.User, error)              { return nil, nil }
func (s *stubUserRepo) Update(*entity.User) error                            { return nil }
func (s *stubUserRepo) List(int, int) ([]*entity.User, error)                { return nil, nil }
func (s *stubUserRepo) ListByCompany(string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) ListByManager(string) ([]*entity.User, error) { return nil, nil }
func (s *stubUserRepo) CountByCompany(string) (int, error)           { return 0, nil }
func (s *stubUserRepo) Delete(string) error                          { return nil }

type stubCompanyRepo struct{ company *entity.Company }

func (s *stubCompanyRepo) Create(*entity.Company) error { return nil }
func (s *stubCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if s.company != nil && s.company.ID == id {
		return s.company, nil
	}
	return nil, nil
}
func (s *stubCompanyRepo) GetByName(string) (*entity.Company, error) { return nil, nil }
func (s *stubCompanyRepo) Update(*entity.Company) error              { return nil }
func (s *stubCompanyRepo) List(int, int) ([]*entity.Company, error)  { return nil, nil }
func (s *stubCompanyRepo) Delete(string) error                       { return nil }

// stubGenerator captura lo que el caso de uso le entrega al render.
type stubGenerator struct {
	gotExpenses []*entity.Expense
	gotStats    *repository.ExpenseStats
}

func (g *stubGenerator) GenerateExpenseReport(_ context.Context, _ *entity.User, _ *entity.Company, expenses []*entity.Expense, stats *repository.ExpenseStats) ([]byte, error) {
	g.gotExpenses = expenses
	g.gotStats = stats
	return []byte("%PDF-stub"), nil
}

func TestReportGenerate_AlcanceDelActor(t *testing.T) {
	company := &entity.Company{ID: "c1", Name: "Acme Corp", Currency: "USD"}
	owner := &entity.User{ID: "u1", CompanyID: "c1", Role: entity.RoleEmployee, FullName: "Empleado Uno"}
	expenses := &stubExpenseRepo{expenses: []*entity.Expense{
		{ID: "e1", UserID: "u1", CompanyID: "c1", Amount: decimal.NewFromInt(10), Status: entity.StatusPending},
		{ID: "e2", UserID: "u2", CompanyID: "c1", Amount: decimal.NewFromInt(99), Status: entity.StatusPending},
	}}
	gen := &stubGenerator{}
	uc := report.NewReportUseCase(expenses, &stubUserRepo{user: owner}, &stubCompanyRepo{company: company}, gen)

	out, err := uc.Generate(context.Background(), policy.Actor{ID: "u1", CompanyID: "c1", Role: entity.RoleEmployee})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	require.Len(t, gen.gotExpenses, 1, "el reporte solo incluye el conjunto visible")
	assert.Equal(t, "e1", gen.gotExpenses[0].ID)
	assert.Equal(t, 1, gen.gotStats.TotalExpenses)
	assert.False(t, expenses.lastScope.All)
}

func TestReportGenerate_ConjuntoVacioSigueSiendoValido(t *testing.T) {
	company := &entity.Company{ID: "c1", Name: "Acme Corp", Currency: "USD"}
	owner := &entity.User{ID: "u1", CompanyID: "c1", Role: entity.RoleEmployee}
	gen := &stubGenerator{}
	uc := report.NewReportUseCase(&stubExpenseRepo{}, &stubUserRepo{user: owner}, &stubCompanyRepo{company: company}, gen)

	out, err := uc.Generate(context.Background(), policy.Actor{ID: "u1", CompanyID: "c1", Role: entity.RoleEmployee})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Zero(t, gen.gotStats.TotalExpenses)
	assert.True(t, gen.gotStats.TotalAmount.IsZero())
}

func TestReportGenerate_UsuarioDesconocido(t *testing.T) {
	uc := report.NewReportUseCase(&stubExpenseRepo{}, &stubUserRepo{}, &stubCompanyRepo{}, &stubGenerator{})

	_, err := uc.Generate(context.Background(), policy.Actor{ID: "fantasma", CompanyID: "c1", Role: entity.RoleEmployee})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
