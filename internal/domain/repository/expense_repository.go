package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
)

// ExpenseFilter parámetros de listado de gastos. Scope es obligatorio y
// aplica el predicado de visibilidad por rol; Status y Category son filtros
// opcionales (cadena vacía = sin filtro).
type ExpenseFilter struct {
	Scope    policy.ExpenseScope
	Status   string
	Category string
	Limit    int
	Offset   int
}

// ExpenseStats agregación sobre el conjunto visible de gastos.
// Las sumas sobre conjunto vacío son cero, nunca null ni error.
type ExpenseStats struct {
	TotalExpenses  int
	PendingCount   int
	ApprovedCount  int
	RejectedCount  int
	TotalAmount    decimal.Decimal
	ApprovedAmount decimal.Decimal
}

// ExpenseRepository define el puerto de persistencia para Expense (DIP).
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	List(ctx context.Context, f ExpenseFilter) ([]*entity.Expense, error)
	Update(ctx context.Context, e *entity.Expense) error
	// UpdateStatus aplica la transición con guarda de estado: solo si el
	// gasto sigue pending. Devuelve false si la guarda no se cumple (otra
	// aprobación concurrente ya ganó).
	UpdateStatus(ctx context.Context, id, status string, reviewedAt time.Time) (bool, error)
	Stats(ctx context.Context, scope policy.ExpenseScope) (*ExpenseStats, error)
	Delete(ctx context.Context, id string) error
}
