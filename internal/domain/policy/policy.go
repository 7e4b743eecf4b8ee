// Package policy concentra las decisiones de autorización del sistema como
// funciones puras: (actor, registro objetivo) → permitir o error de dominio.
// Ninguna función consulta almacenamiento ni transporte; los handlers y casos
// de uso cargan el registro y delegan aquí la decisión.
//
// Orden de evaluación: cada función devuelve el primer precondición que falla
// en el orden documentado (p. ej. dueño antes que estado), y ese error es el
// que se expone al cliente.
package policy

import (
	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
)

// Actor describe al usuario autenticado que ejecuta la operación.
// Se construye desde los claims del token, no desde el body del request.
type Actor struct {
	ID        string
	CompanyID string
	Role      string
}

// IsAdmin indica si el actor tiene rol admin.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// CanReview indica si el rol del actor participa en aprobaciones.
func (a Actor) CanReview() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleManager
}

// ── Companies ─────────────────────────────────────────────────────────────────

// CanManageCompanies autoriza crear/actualizar/eliminar empresas: solo admin.
func CanManageCompanies(a Actor) error {
	if !a.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// CanViewCompany autoriza la lectura de una empresa concreta.
// Admin ve cualquiera; manager y employee solo la propia.
func CanViewCompany(a Actor, companyID string) error {
	if a.IsAdmin() || a.CompanyID == companyID {
		return nil
	}
	return domain.ErrForbidden
}

// ── Users ─────────────────────────────────────────────────────────────────────

// CanViewUser autoriza la lectura de un usuario concreto.
// Admin ve a cualquiera; manager ve a todos los de su empresa (no solo a sus
// reportes directos); cualquier usuario puede verse a sí mismo.
func CanViewUser(a Actor, target *entity.User) error {
	switch {
	case a.IsAdmin():
		return nil
	case a.Role == entity.RoleManager && target.CompanyID == a.CompanyID:
		return nil
	case a.ID == target.ID:
		return nil
	}
	return domain.ErrForbidden
}

// CanUpdateUser autoriza la modificación de un usuario. changesRole indica si
// el request intenta cambiar el campo role del objetivo.
// Admin modifica a cualquiera (incluido role); un usuario se modifica a sí
// mismo salvo su propio role; nadie más puede modificar.
func CanUpdateUser(a Actor, target *entity.User, changesRole bool) error {
	if a.IsAdmin() {
		return nil
	}
	if a.ID != target.ID {
		return domain.ErrForbidden
	}
	if changesRole {
		return domain.ErrForbidden
	}
	return nil
}

// CanDeleteUser autoriza la eliminación de un usuario: solo admin, y nunca a
// sí mismo (ErrSelfDeletion → 400, no 403).
func CanDeleteUser(a Actor, targetID string) error {
	if !a.IsAdmin() {
		return domain.ErrForbidden
	}
	if a.ID == targetID {
		return domain.ErrSelfDeletion
	}
	return nil
}

// CanListSubordinates autoriza el listado de reportes directos.
func CanListSubordinates(a Actor) error {
	if !a.CanReview() {
		return domain.ErrForbidden
	}
	return nil
}

// ── Expenses ──────────────────────────────────────────────────────────────────

// ExpenseScope describe el conjunto de gastos visible para un actor. Los
// repositorios lo traducen a cláusulas WHERE; listados, get, stats y reporte
// comparten exactamente el mismo predicado.
type ExpenseScope struct {
	All       bool   // admin: sin filtro
	OwnerID   string // gastos cuyo user_id == OwnerID
	ManagerID string // además, gastos cuyo manager_id == ManagerID (manager)
}

// ExpenseVisibility devuelve el alcance de visibilidad de gastos del actor.
// admin → todo; manager → propios + asignados como aprobador; employee →
// solo propios.
func ExpenseVisibility(a Actor) ExpenseScope {
	switch a.Role {
	case entity.RoleAdmin:
		return ExpenseScope{All: true}
	case entity.RoleManager:
		return ExpenseScope{OwnerID: a.ID, ManagerID: a.ID}
	default:
		return ExpenseScope{OwnerID: a.ID}
	}
}

// Matches evalúa el predicado de visibilidad sobre un gasto concreto.
func (s ExpenseScope) Matches(e *entity.Expense) bool {
	if s.All {
		return true
	}
	if e.UserID == s.OwnerID {
		return true
	}
	return s.ManagerID != "" && e.ManagerID != nil && *e.ManagerID == s.ManagerID
}

// CanViewExpense autoriza la lectura de un gasto concreto. Si el gasto existe
// pero queda fuera del alcance del actor, el error es ErrForbidden (403), no
// ErrNotFound: el registro existe, el actor no puede verlo.
func CanViewExpense(a Actor, e *entity.Expense) error {
	if ExpenseVisibility(a).Matches(e) {
		return nil
	}
	return domain.ErrForbidden
}

// CanUpdateExpense autoriza la edición de campos de un gasto.
// Solo el dueño y solo mientras está pending. El chequeo de dueño se evalúa
// antes que el de estado: no-dueño → ErrForbidden aunque tampoco esté pending.
func CanUpdateExpense(a Actor, e *entity.Expense) error {
	if e.UserID != a.ID {
		return domain.ErrForbidden
	}
	if !e.IsPending() {
		return domain.ErrInvalidState
	}
	return nil
}

// CanTransitionExpense autoriza aprobar/rechazar un gasto.
// Orden: rol (manager/admin) → asignación (manager solo sobre sus gastos
// asignados) → estado (solo desde pending).
func CanTransitionExpense(a Actor, e *entity.Expense) error {
	if !a.CanReview() {
		return domain.ErrForbidden
	}
	if a.Role == entity.RoleManager {
		if e.ManagerID == nil || *e.ManagerID != a.ID {
			return domain.ErrForbidden
		}
	}
	if !e.IsPending() {
		return domain.ErrInvalidState
	}
	return nil
}

// CanDeleteExpense autoriza la eliminación de un gasto.
// Admin elimina sin importar el estado (corto-circuito); el dueño solo
// mientras está pending. No-dueño no-admin → ErrForbidden.
func CanDeleteExpense(a Actor, e *entity.Expense) error {
	if a.IsAdmin() {
		return nil
	}
	if e.UserID != a.ID {
		return domain.ErrForbidden
	}
	if !e.IsPending() {
		return domain.ErrInvalidState
	}
	return nil
}
