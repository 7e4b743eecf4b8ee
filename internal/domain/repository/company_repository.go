package repository

import "github.com/jhoicas/exesman-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByName(name string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	// Delete elimina la empresa y, en cascada y dentro de una única
	// transacción, sus usuarios y gastos.
	Delete(id string) error
}
