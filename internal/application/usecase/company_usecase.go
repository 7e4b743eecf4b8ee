package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/exesman-api/internal/application/dto"
	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/policy"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa (solo admin). Devuelve domain.ErrDuplicate
// si ya existe una empresa con ese nombre.
func (uc *CompanyUseCase) Create(actor policy.Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := policy.CanManageCompanies(actor); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	currency := in.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Currency:  currency,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID. Si la empresa existe pero el actor no
// pertenece a ella (y no es admin), devuelve ErrForbidden, no ErrNotFound.
func (uc *CompanyUseCase) GetByID(actor policy.Actor, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanViewCompany(actor, company.ID); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas según el rol: admin todas; manager/employee solo la
// propia (lista de un elemento).
func (uc *CompanyUseCase) List(actor policy.Actor, limit, offset int) (*dto.CompanyListResponse, error) {
	if actor.IsAdmin() {
		list, err := uc.repo.List(limit, offset)
		if err != nil {
			return nil, err
		}
		items := make([]dto.CompanyResponse, 0, len(list))
		for _, c := range list {
			items = append(items, *entityToCompanyResponse(c))
		}
		return &dto.CompanyListResponse{Items: items}, nil
	}
	own, err := uc.repo.GetByID(actor.CompanyID)
	if err != nil {
		return nil, err
	}
	items := []dto.CompanyResponse{}
	if own != nil {
		items = append(items, *entityToCompanyResponse(own))
	}
	return &dto.CompanyListResponse{Items: items}, nil
}

// Update actualiza parcialmente una empresa (solo admin).
func (uc *CompanyUseCase) Update(actor policy.Actor, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := policy.CanManageCompanies(actor); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != company.Name {
		existing, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		company.Name = *in.Name
	}
	if in.Currency != nil {
		company.Currency = *in.Currency
	}
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina una empresa (solo admin). La cascada sobre usuarios y
// gastos la resuelve el repositorio en una sola transacción.
func (uc *CompanyUseCase) Delete(actor policy.Actor, id string) error {
	if err := policy.CanManageCompanies(actor); err != nil {
		return err
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Currency:  c.Currency,
		CreatedAt: c.CreatedAt,
	}
}
