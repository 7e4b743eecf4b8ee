package repository

import "github.com/jhoicas/exesman-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	// ListByManager devuelve los reportes directos: usuarios cuyo manager_id
	// es exactamente managerID (índice inverso calculado, no almacenado).
	ListByManager(managerID string) ([]*entity.User, error)
	CountByCompany(companyID string) (int, error)
	Delete(id string) error
}
