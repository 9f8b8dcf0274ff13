package repository

import "github.com/jhoicas/revenue-analytics-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByName(name string) (*entity.Company, error)
	GetByInvestee(investeeID string) (*entity.Company, error)
}
