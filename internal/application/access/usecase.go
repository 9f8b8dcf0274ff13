package access

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/revenue-analytics-api/internal/domain"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/repository"
)

// UseCase administra los vínculos de acceso investor -> company.
// Los vínculos los otorga únicamente el investee dueño de la empresa:
// un investor nunca puede agregarse acceso a sí mismo.
type UseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	accessRepo  repository.AccessRepository
}

// NewUseCase construye el caso de uso de acceso.
func NewUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, accessRepo repository.AccessRepository) *UseCase {
	return &UseCase{userRepo: userRepo, companyRepo: companyRepo, accessRepo: accessRepo}
}

// Grant otorga a un investor acceso de lectura sobre la empresa del
// investee que actúa. La empresa se resuelve siempre desde el actor, nunca
// desde la entrada, así el alcance queda limitado a la empresa propia.
// Es idempotente: otorgar un vínculo ya existente responde OK.
func (uc *UseCase) Grant(investeeID, investorID string) error {
	company, err := uc.ownCompany(investeeID)
	if err != nil {
		return err
	}
	investor, err := uc.userRepo.GetByID(investorID)
	if err != nil {
		return err
	}
	if investor == nil || investor.Role != entity.RoleInvestor {
		return domain.ErrNotFound
	}
	return uc.accessRepo.Grant(&entity.InvestorCompanyLink{
		ID:         uuid.New().String(),
		InvestorID: investorID,
		CompanyID:  company.ID,
		CreatedAt:  time.Now(),
	})
}

// Revoke elimina el vínculo del investor con la empresa del investee que
// actúa; el investor vuelve al default de sin acceso.
func (uc *UseCase) Revoke(investeeID, investorID string) error {
	company, err := uc.ownCompany(investeeID)
	if err != nil {
		return err
	}
	return uc.accessRepo.Revoke(investorID, company.ID)
}

// ownCompany resuelve la empresa del actor. Un usuario sin empresa propia
// (incluido cualquier investor) no puede administrar vínculos.
func (uc *UseCase) ownCompany(investeeID string) (*entity.Company, error) {
	company, err := uc.companyRepo.GetByInvestee(investeeID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrForbidden
	}
	return company, nil
}
