package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
)

// Repositorios en memoria para las pruebas de casos de uso: mismo contrato
// que las implementaciones de postgres, sin base de datos.

// ── memUserRepo ───────────────────────────────────────────────────────────────

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo(seed ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range seed {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *memUserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return paginateUsers(r.all(), limit, offset), nil
}

func (r *memUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.all() {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return paginateUsers(out, limit, offset), nil
}

func (r *memUserRepo) ListByManager(managerID string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.all() {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) CountByCompany(companyID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// all devuelve copias ordenadas por ID para que los listados sean estables.
func (r *memUserRepo) all() []*entity.User {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paginateUsers(list []*entity.User, limit, offset int) []*entity.User {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── memCompanyRepo ────────────────────────────────────────────────────────────

type memCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
	deleted   []string
}

func newMemCompanyRepo(seed ...*entity.Company) *memCompanyRepo {
	r := &memCompanyRepo{companies: make(map[string]*entity.Company)}
	for _, c := range seed {
		cp := *c
		r.companies[c.ID] = &cp
	}
	return r
}

func (r *memCompanyRepo) Create(company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCompanyRepo) GetByName(name string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) Update(company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *memCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memCompanyRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.companies, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// ── memExpenseRepo ────────────────────────────────────────────────────────────

type memExpenseRepo struct {
	mu       sync.Mutex
	expenses map[string]*entity.Expense
}

func newMemExpenseRepo(seed ...*entity.Expense) *memExpenseRepo {
	r := &memExpenseRepo{expenses: make(map[string]*entity.Expense)}
	for _, e := range seed {
		cp := *e
		r.expenses[e.ID] = &cp
	}
	return r
}

func (r *memExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *memExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memExpenseRepo) List(_ context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Expense
	for _, e := range r.expenses {
		if !f.Scope.Matches(e) {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	// Mismo orden que la implementación real: más reciente primero.
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *memExpenseRepo) UpdateStatus(_ context.Context, id, status string, reviewedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.Status != entity.StatusPending {
		// Misma guarda que el UPDATE ... WHERE status='pending'.
		return false, nil
	}
	e.Status = status
	e.ReviewedAt = &reviewedAt
	return true, nil
}

func (r *memExpenseRepo) Stats(_ context.Context, scope policy.ExpenseScope) (*repository.ExpenseStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.ExpenseStats{
		TotalAmount:    decimal.Zero,
		ApprovedAmount: decimal.Zero,
	}
	for _, e := range r.expenses {
		if !scope.Matches(e) {
			continue
		}
		stats.TotalExpenses++
		stats.TotalAmount = stats.TotalAmount.Add(e.Amount)
		switch e.Status {
		case entity.StatusPending:
			stats.PendingCount++
		case entity.StatusApproved:
			stats.ApprovedCount++
			stats.ApprovedAmount = stats.ApprovedAmount.Add(e.Amount)
		case entity.StatusRejected:
			stats.RejectedCount++
		}
	}
	return stats, nil
}

func (r *memExpenseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.expenses, id)
	return nil
}

// memTxRunner pasa el mismo repositorio en memoria al callback; la
// atomicidad la da el mutex del propio repositorio.
type memTxRunner struct {
	repo *memExpenseRepo
}

func (t *memTxRunner) Run(_ context.Context, fn func(expenses repository.ExpenseRepository) error) error {
	return fn(t.repo)
}
