package dataset_test

import (
	"io"

	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*entity.User{}} }

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) GetByUsername(u string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == u {
			return user, nil
		}
	}
	return nil, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*entity.Company{}}
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) GetByName(name string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCompanyRepo) GetByInvestee(investeeID string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.InvesteeID == investeeID {
			return c, nil
		}
	}
	return nil, nil
}

type accessKey struct{ investorID, companyID string }

type fakeAccessRepo struct {
	links     map[accessKey]bool
	companies *fakeCompanyRepo
}

func newFakeAccessRepo(companies *fakeCompanyRepo) *fakeAccessRepo {
	return &fakeAccessRepo{links: map[accessKey]bool{}, companies: companies}
}

func (r *fakeAccessRepo) Grant(link *entity.InvestorCompanyLink) error {
	r.links[accessKey{link.InvestorID, link.CompanyID}] = true
	return nil
}
func (r *fakeAccessRepo) Revoke(investorID, companyID string) error {
	delete(r.links, accessKey{investorID, companyID})
	return nil
}
func (r *fakeAccessRepo) HasAccess(investorID, companyID string) (bool, error) {
	return r.links[accessKey{investorID, companyID}], nil
}
func (r *fakeAccessRepo) ListCompaniesForInvestor(investorID string) ([]*entity.Company, error) {
	var out []*entity.Company
	for key := range r.links {
		if key.investorID == investorID {
			if c := r.companies.companies[key.companyID]; c != nil {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type datasetKey struct{ companyID, dataType string }

type fakeDatasetRepo struct {
	datasets map[datasetKey]*entity.CompanyDataset
}

func newFakeDatasetRepo() *fakeDatasetRepo {
	return &fakeDatasetRepo{datasets: map[datasetKey]*entity.CompanyDataset{}}
}

func (r *fakeDatasetRepo) Save(ds *entity.CompanyDataset) error {
	r.datasets[datasetKey{ds.CompanyID, ds.DataType}] = ds
	return nil
}
func (r *fakeDatasetRepo) Get(companyID, dataType string) (*entity.CompanyDataset, error) {
	return r.datasets[datasetKey{companyID, dataType}], nil
}
func (r *fakeDatasetRepo) ListByCompany(companyID string) ([]*entity.CompanyDataset, error) {
	var out []*entity.CompanyDataset
	for key, ds := range r.datasets {
		if key.companyID == companyID {
			out = append(out, ds)
		}
	}
	return out, nil
}
func (r *fakeDatasetRepo) Delete(companyID, dataType string) error {
	delete(r.datasets, datasetKey{companyID, dataType})
	return nil
}

// fakeParser devuelve tablas predefinidas, ignorando el contenido del reader.
type fakeParser struct {
	tables []analysis.Table
	err    error
}

func (p *fakeParser) Parse(filename string, r io.Reader) ([]analysis.Table, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.tables, nil
}
