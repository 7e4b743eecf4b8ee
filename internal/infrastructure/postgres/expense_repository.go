package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
// Se construye sobre DBTX para poder operar tanto con el pool como dentro de
// una transacción del TxRunner.
type ExpenseRepo struct {
	db DBTX
}

// NewExpenseRepository construye el adaptador de persistencia para gastos.
func NewExpenseRepository(db DBTX) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

const expenseColumns = `id, title, amount, category, description, receipt_url, status,
	user_id, company_id, manager_id, submitted_at, reviewed_at, created_at`

// Create persiste un nuevo gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, title, amount, category, description, receipt_url, status,
			user_id, company_id, manager_id, submitted_at, reviewed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.Title, e.Amount, e.Category, e.Description, e.ReceiptURL, e.Status,
		e.UserID, e.CompanyID, e.ManagerID, e.SubmittedAt, e.ReviewedAt, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID. Devuelve (nil, nil) si no existe: la
// distinción 403/404 la decide la capa de política, no el repositorio.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	var e entity.Expense
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Amount, &e.Category, &e.Description, &e.ReceiptURL, &e.Status,
		&e.UserID, &e.CompanyID, &e.ManagerID, &e.SubmittedAt, &e.ReviewedAt, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense by id: %w", err)
	}
	return &e, nil
}

// scopeCondition traduce el alcance de visibilidad a una condición SQL.
// Devuelve cadena vacía para el alcance admin (sin filtro).
func scopeCondition(scope policy.ExpenseScope, args *[]any) string {
	if scope.All {
		return ""
	}
	var parts []string
	if scope.OwnerID != "" {
		*args = append(*args, scope.OwnerID)
		parts = append(parts, fmt.Sprintf("user_id = $%d", len(*args)))
	}
	if scope.ManagerID != "" {
		*args = append(*args, scope.ManagerID)
		parts = append(parts, fmt.Sprintf("manager_id = $%d", len(*args)))
	}
	if len(parts) == 0 {
		// Alcance sin identidad: no debe ocurrir, pero jamás devolver todo.
		return "FALSE"
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// List lista gastos aplicando el alcance de visibilidad y filtros opcionales
// de estado y categoría, ordenados del más reciente al más antiguo.
func (r *ExpenseRepo) List(ctx context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	var args []any
	var conds []string
	if c := scopeCondition(f.Scope, &args); c != "" {
		conds = append(conds, c)
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY submitted_at DESC"
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Amount, &e.Category, &e.Description, &e.ReceiptURL, &e.Status,
			&e.UserID, &e.CompanyID, &e.ManagerID, &e.SubmittedAt, &e.ReviewedAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables de un gasto (no toca status ni
// reviewed_at: eso es competencia exclusiva de UpdateStatus).
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	query := `
		UPDATE expenses
		SET title = $2, amount = $3, category = $4, description = $5, receipt_url = $6
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.Title, e.Amount, e.Category, e.Description, e.ReceiptURL,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// UpdateStatus aplica la transición con guarda: el UPDATE solo toca filas
// que sigan en pending, de modo que la segunda de dos aprobaciones
// concurrentes vea cero filas afectadas y devuelva false.
func (r *ExpenseRepo) UpdateStatus(ctx context.Context, id, status string, reviewedAt time.Time) (bool, error) {
	query := `
		UPDATE expenses SET status = $2, reviewed_at = $3
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.db.Exec(ctx, query, id, status, reviewedAt)
	if err != nil {
		return false, fmt.Errorf("update expense status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Stats agrega el conjunto visible: conteos por estado y sumas de monto.
// COALESCE garantiza cero (no NULL) sobre conjunto vacío.
func (r *ExpenseRepo) Stats(ctx context.Context, scope policy.ExpenseScope) (*repository.ExpenseStats, error) {
	var args []any
	query := `
	SELECT
	    COUNT(*)                                                    AS total_expenses,
	    COUNT(*) FILTER (WHERE status = 'pending')                  AS pending_count,
	    COUNT(*) FILTER (WHERE status = 'approved')                 AS approved_count,
	    COUNT(*) FILTER (WHERE status = 'rejected')                 AS rejected_count,
	    COALESCE(SUM(amount), 0)                                    AS total_amount,
	    COALESCE(SUM(amount) FILTER (WHERE status = 'approved'), 0) AS approved_amount
	FROM expenses`
	if c := scopeCondition(scope, &args); c != "" {
		query += " WHERE " + c
	}

	var s repository.ExpenseStats
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.TotalExpenses, &s.PendingCount, &s.ApprovedCount, &s.RejectedCount,
		&s.TotalAmount, &s.ApprovedAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("expense stats: %w", err)
	}
	return &s, nil
}

// Delete elimina un gasto por ID.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
