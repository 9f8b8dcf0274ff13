package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/repository"
)

var _ repository.AccessRepository = (*AccessRepo)(nil)

// AccessRepo implementación del puerto AccessRepository sobre PostgreSQL
// (tabla investor_companies).
type AccessRepo struct {
	q Querier
}

// NewAccessRepository construye el adaptador de vínculos investor-company.
func NewAccessRepository(q Querier) *AccessRepo {
	return &AccessRepo{q: q}
}

// Grant inserta el vínculo. ON CONFLICT DO NOTHING lo hace idempotente:
// otorgar dos veces el mismo acceso no es error.
func (r *AccessRepo) Grant(link *entity.InvestorCompanyLink) error {
	query := `
		INSERT INTO investor_companies (id, investor_id, company_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (investor_id, company_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		link.ID, link.InvestorID, link.CompanyID, link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("grant access: %w", err)
	}
	return nil
}

// Revoke elimina el vínculo; revocar un vínculo inexistente no es error.
func (r *AccessRepo) Revoke(investorID, companyID string) error {
	query := `DELETE FROM investor_companies WHERE investor_id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query, investorID, companyID)
	if err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}
	return nil
}

// HasAccess informa si existe el vínculo; respuesta O(1) vía índice único.
func (r *AccessRepo) HasAccess(investorID, companyID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM investor_companies
			 WHERE investor_id = $1 AND company_id = $2
		)`
	var ok bool
	if err := r.q.QueryRow(context.Background(), query, investorID, companyID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}
	return ok, nil
}

// ListCompaniesForInvestor devuelve las empresas vinculadas al investor.
func (r *AccessRepo) ListCompaniesForInvestor(investorID string) ([]*entity.Company, error) {
	query := `
		SELECT c.id, c.name, c.investee_id, c.created_at, c.updated_at
		FROM companies c
		JOIN investor_companies ic ON ic.company_id = c.id
		WHERE ic.investor_id = $1
		ORDER BY c.name`
	rows, err := r.q.Query(context.Background(), query, investorID)
	if err != nil {
		return nil, fmt.Errorf("list investor companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.InvesteeID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
