package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/exesman-api/internal/application/dto"
	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
)

// ExpenseTxRunner ejecuta un callback con un repositorio de gastos atado a
// una transacción. Lo implementa postgres.TxRunner; la transición de estado
// lo usa para que dos aprobaciones concurrentes no ganen las dos.
type ExpenseTxRunner interface {
	Run(ctx context.Context, fn func(expenses repository.ExpenseRepository) error) error
}

// ExpenseUseCase aplica las reglas de negocio del ciclo de vida de gastos.
type ExpenseUseCase struct {
	repo     repository.ExpenseRepository
	userRepo repository.UserRepository
	tx       ExpenseTxRunner
}

// NewExpenseUseCase construye el caso de uso con sus puertos.
func NewExpenseUseCase(repo repository.ExpenseRepository, userRepo repository.UserRepository, tx ExpenseTxRunner) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, userRepo: userRepo, tx: tx}
}

// Create crea un gasto para el propio actor. user_id, company_id y
// manager_id se derivan del actor en el servidor (nunca del body) y el
// estado se fuerza a pending. manager_id es un snapshot del jefe actual del
// dueño: cambios posteriores de jefe no re-enrutan gastos ya creados.
func (uc *ExpenseUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	owner, err := uc.userRepo.GetByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Amount:      in.Amount.Round(2),
		Category:    in.Category,
		Description: in.Description,
		ReceiptURL:  in.ReceiptURL,
		Status:      entity.StatusPending,
		UserID:      owner.ID,
		CompanyID:   owner.CompanyID,
		ManagerID:   owner.ManagerID,
		SubmittedAt: now,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return entityToExpenseResponse(expense), nil
}

// GetByID obtiene un gasto aplicando el predicado de visibilidad por
// registro: si existe pero está fuera del alcance del actor, ErrForbidden
// (403), no ErrNotFound.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, actor policy.Actor, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanViewExpense(actor, expense); err != nil {
		return nil, err
	}
	return entityToExpenseResponse(expense), nil
}

// List lista los gastos visibles para el actor con filtros opcionales de
// estado y categoría.
func (uc *ExpenseUseCase) List(ctx context.Context, actor policy.Actor, status, category string, limit, offset int) (*dto.ExpenseListResponse, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if category != "" && !entity.ValidCategory(category) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, repository.ExpenseFilter{
		Scope:    policy.ExpenseVisibility(actor),
		Status:   status,
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	return toExpenseListResponse(list), nil
}

// ListPending lista los gastos pendientes de aprobación (manager/admin).
// Un manager solo ve los asignados a él; un admin todos los pendientes.
func (uc *ExpenseUseCase) ListPending(ctx context.Context, actor policy.Actor, limit, offset int) (*dto.ExpenseListResponse, error) {
	if !actor.CanReview() {
		return nil, domain.ErrForbidden
	}
	scope := policy.ExpenseScope{All: true}
	if actor.Role == entity.RoleManager {
		scope = policy.ExpenseScope{ManagerID: actor.ID}
	}
	list, err := uc.repo.List(ctx, repository.ExpenseFilter{
		Scope:  scope,
		Status: entity.StatusPending,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return toExpenseListResponse(list), nil
}

// Update edita campos de un gasto. Solo el dueño y solo mientras está
// pending; el chequeo de dueño se evalúa antes que el de estado.
func (uc *ExpenseUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanUpdateExpense(actor, expense); err != nil {
		return nil, err
	}
	if in.Title != nil {
		expense.Title = *in.Title
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = in.Amount.Round(2)
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		expense.Category = *in.Category
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}
	if in.ReceiptURL != nil {
		expense.ReceiptURL = *in.ReceiptURL
	}
	if err := uc.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return entityToExpenseResponse(expense), nil
}

// UpdateStatus aprueba o rechaza un gasto (manager/admin). La transición es
// de un solo disparo: solo desde pending, estampa reviewed_at y no hay
// camino de vuelta. Corre dentro de una transacción con guarda de estado
// para que la segunda de dos aprobaciones concurrentes falle con
// ErrInvalidState.
func (uc *ExpenseUseCase) UpdateStatus(ctx context.Context, actor policy.Actor, id string, in dto.UpdateExpenseStatusRequest) (*dto.ExpenseResponse, error) {
	if in.Status != entity.StatusApproved && in.Status != entity.StatusRejected {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.ExpenseResponse
	err := uc.tx.Run(ctx, func(expenses repository.ExpenseRepository) error {
		expense, err := expenses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if expense == nil {
			return domain.ErrNotFound
		}
		if err := policy.CanTransitionExpense(actor, expense); err != nil {
			return err
		}
		reviewedAt := time.Now()
		updated, err := expenses.UpdateStatus(ctx, id, in.Status, reviewedAt)
		if err != nil {
			return err
		}
		if !updated {
			// Otra transición ganó entre la lectura y el UPDATE.
			return domain.ErrInvalidState
		}
		expense.Status = in.Status
		expense.ReviewedAt = &reviewedAt
		out = entityToExpenseResponse(expense)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un gasto: admin sin importar el estado, el dueño solo
// mientras está pending.
func (uc *ExpenseUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	if err := policy.CanDeleteExpense(actor, expense); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Stats agrega el conjunto visible del actor: conteos por estado y sumas de
// monto total y aprobado. Sobre conjunto vacío devuelve ceros.
func (uc *ExpenseUseCase) Stats(ctx context.Context, actor policy.Actor) (*dto.ExpenseStatsResponse, error) {
	stats, err := uc.repo.Stats(ctx, policy.ExpenseVisibility(actor))
	if err != nil {
		return nil, err
	}
	return &dto.ExpenseStatsResponse{
		TotalExpenses:  stats.TotalExpenses,
		PendingCount:   stats.PendingCount,
		ApprovedCount:  stats.ApprovedCount,
		RejectedCount:  stats.RejectedCount,
		TotalAmount:    stats.TotalAmount,
		ApprovedAmount: stats.ApprovedAmount,
	}, nil
}

func entityToExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		ReceiptURL:  e.ReceiptURL,
		Status:      e.Status,
		UserID:      e.UserID,
		CompanyID:   e.CompanyID,
		ManagerID:   e.ManagerID,
		SubmittedAt: e.SubmittedAt,
		ReviewedAt:  e.ReviewedAt,
		CreatedAt:   e.CreatedAt,
	}
}

func toExpenseListResponse(list []*entity.Expense) *dto.ExpenseListResponse {
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *entityToExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{Items: items}
}
