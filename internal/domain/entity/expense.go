package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un gasto. pending es el estado inicial;
// approved y rejected son terminales (no hay transición de salida).
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Categorías válidas de gasto.
const (
	CategoryTravel    = "travel"
	CategoryMeals     = "meals"
	CategoryOffice    = "office"
	CategoryEquipment = "equipment"
	CategorySoftware  = "software"
	CategoryOther     = "other"
)

// ValidCategory verifica que la categoría sea una de las conocidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryTravel, CategoryMeals, CategoryOffice, CategoryEquipment, CategorySoftware, CategoryOther:
		return true
	}
	return false
}

// ValidStatus verifica que el estado sea uno de los conocidos.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Expense representa un gasto reportado por un usuario.
//
// UserID es el dueño; CompanyID se desnormaliza desde el dueño al crear.
// ManagerID es un snapshot del jefe del dueño en el momento de la creación:
// si el jefe del usuario cambia después, los gastos ya creados conservan la
// referencia antigua y no se re-enrutan.
type Expense struct {
	ID          string
	Title       string
	Amount      decimal.Decimal // NUMERIC(10,2)
	Category    string
	Description string
	ReceiptURL  string
	Status      string // pending, approved, rejected
	UserID      string
	CompanyID   string
	ManagerID   *string    // nil = sin aprobador asignado
	SubmittedAt time.Time  // se estampa una vez al crear
	ReviewedAt  *time.Time // nil hasta la primera (y única) transición
	CreatedAt   time.Time
}

// IsPending indica si el gasto sigue editable/eliminable por su dueño.
func (e *Expense) IsPending() bool {
	return e.Status == StatusPending
}

// CanTransitionTo valida la máquina de estados: solo pending→approved o
// pending→rejected. No hay camino de vuelta ni transiciones posteriores.
func (e *Expense) CanTransitionTo(status string) bool {
	if e.Status != StatusPending {
		return false
	}
	return status == StatusApproved || status == StatusRejected
}
