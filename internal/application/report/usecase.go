// Package report genera el reporte PDF de gastos visibles para un actor.
// El alcance del reporte es exactamente el mismo predicado de visibilidad
// que usan los listados y las estadísticas.
package report

import (
	"context"

	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
)

// ExpenseReportGenerator puerto de render: lo implementa infrastructure/pdf.
type ExpenseReportGenerator interface {
	GenerateExpenseReport(
		ctx context.Context,
		requester *entity.User,
		company *entity.Company,
		expenses []*entity.Expense,
		stats *repository.ExpenseStats,
	) ([]byte, error)
}

// ReportUseCase arma los datos del reporte y delega el render al generador.
type ReportUseCase struct {
	expenseRepo repository.ExpenseRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	generator   ExpenseReportGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	expenseRepo repository.ExpenseRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	generator ExpenseReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		generator:   generator,
	}
}

// maxReportRows tope de filas del PDF; un reporte no es un export masivo.
const maxReportRows = 500

// Generate produce el PDF con los gastos visibles del actor y sus totales.
// Un conjunto visible vacío produce un reporte válido con totales en cero.
func (uc *ReportUseCase) Generate(ctx context.Context, actor policy.Actor) ([]byte, error) {
	requester, err := uc.userRepo.GetByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, domain.ErrUserNotFound
	}
	company, err := uc.companyRepo.GetByID(requester.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	scope := policy.ExpenseVisibility(actor)
	expenses, err := uc.expenseRepo.List(ctx, repository.ExpenseFilter{
		Scope: scope,
		Limit: maxReportRows,
	})
	if err != nil {
		return nil, err
	}
	stats, err := uc.expenseRepo.Stats(ctx, scope)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateExpenseReport(ctx, requester, company, expenses, stats)
}
