package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para crear un gasto. user_id, company_id,
// manager_id y status NO se aceptan del cliente: se derivan del actor en el
// servidor y el estado inicial siempre es pending.
type CreateExpenseRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category" validate:"required,oneof=travel meals office equipment software other"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	ReceiptURL  string          `json:"receipt_url" validate:"omitempty,url"`
}

// UpdateExpenseRequest entrada para editar campos de un gasto pendiente.
type UpdateExpenseRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category" validate:"omitempty,oneof=travel meals office equipment software other"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	ReceiptURL  *string          `json:"receipt_url" validate:"omitempty,url"`
}

// UpdateExpenseStatusRequest entrada para aprobar/rechazar un gasto.
type UpdateExpenseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	Status      string          `json:"status"`
	UserID      string          `json:"user_id"`
	CompanyID   string          `json:"company_id"`
	ManagerID   *string         `json:"manager_id,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
	ReviewedAt  *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseListResponse lista de gastos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
}

// ExpenseStatsResponse agregación sobre el conjunto visible del actor.
type ExpenseStatsResponse struct {
	TotalExpenses  int             `json:"total_expenses"`
	PendingCount   int             `json:"pending_count"`
	ApprovedCount  int             `json:"approved_count"`
	RejectedCount  int             `json:"rejected_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}
