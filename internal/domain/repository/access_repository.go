package repository

import "github.com/jhoicas/revenue-analytics-api/internal/domain/entity"

// AccessRepository administra los vínculos investor -> company
// (tabla investor_companies). La ausencia de vínculo es el default: sin acceso.
type AccessRepository interface {
	// Grant es idempotente: otorgar un vínculo ya existente no es error.
	Grant(link *entity.InvestorCompanyLink) error
	Revoke(investorID, companyID string) error
	HasAccess(investorID, companyID string) (bool, error)
	ListCompaniesForInvestor(investorID string) ([]*entity.Company, error)
}
