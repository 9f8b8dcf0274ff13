package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/revenue-analytics-api/internal/application/auth"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/domain"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/revenue-analytics-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID       map[string]*entity.User
	byUsername map[string]*entity.User
	lookupErr  error // inyectado para simular fallas de almacenamiento
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, byUsername: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byUsername[u.Username]; ok {
		return domain.ErrUsernameAlreadyExists
	}
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u
	return nil
}
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error)     { return r.byID[id], nil }
func (r *fakeUserRepo) GetByUsername(u string) (*entity.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.byUsername[u], nil
}

type fakeCompanyRepo struct {
	byID      map[string]*entity.Company
	lookupErr error
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: map[string]*entity.Company{}}
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.byID[c.ID] = c
	return nil
}
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) { return r.byID[id], nil }
func (r *fakeCompanyRepo) GetByName(name string) (*entity.Company, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, c := range r.byID {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCompanyRepo) GetByInvestee(investeeID string) (*entity.Company, error) {
	for _, c := range r.byID {
		if c.InvesteeID == investeeID {
			return c, nil
		}
	}
	return nil, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los mismos repos;
// suficiente para probar la lógica del caso de uso sin una DB.
type fakeTxRunner struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
}

func (tx *fakeTxRunner) RunRegistration(_ context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
) error) error {
	return fn(tx.users, tx.companies)
}

func buildAuthUC() (*auth.AuthUseCase, *fakeUserRepo, *fakeCompanyRepo) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	uc := auth.NewAuthUseCase(users, companies, &fakeTxRunner{users: users, companies: companies}, auth.JWTConfig{
		Secret:     "secret-de-test",
		ExpMinutes: 60,
		Issuer:     "revenue-analytics-test",
	})
	return uc, users, companies
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_InvesteeCreaUsuarioYEmpresa(t *testing.T) {
	uc, users, companies := buildAuthUC()

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username:    "maria",
		Password:    "contraseña-larga",
		Role:        entity.RoleInvestee,
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.RoleInvestee, resp.Role)
	assert.NotEmpty(t, resp.CompanyID, "el registro de investee debe crear la empresa")

	user, _ := users.GetByUsername("maria")
	require.NotNil(t, user)
	assert.NotEqual(t, "contraseña-larga", user.PasswordHash, "la contraseña nunca se guarda en claro")

	company, _ := companies.GetByInvestee(user.ID)
	require.NotNil(t, company)
	assert.Equal(t, "Acme Corp", company.Name)
}

func TestRegister_InvestorSinEmpresa(t *testing.T) {
	uc, _, companies := buildAuthUC()

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "fondo-inversor",
		Password: "contraseña-larga",
		Role:     entity.RoleInvestor,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.CompanyID, "un investor no es dueño de empresa")
	assert.Empty(t, companies.byID)
}

func TestRegister_InvesteeSinEmpresa_Rechazado(t *testing.T) {
	uc, _, _ := buildAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "maria",
		Password: "contraseña-larga",
		Role:     entity.RoleInvestee,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_InvestorConEmpresa_Rechazado(t *testing.T) {
	uc, _, _ := buildAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username:    "fondo",
		Password:    "contraseña-larga",
		Role:        entity.RoleInvestor,
		CompanyName: "Acme Corp",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_RolDesconocido_Rechazado(t *testing.T) {
	uc, _, _ := buildAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "alguien",
		Password: "contraseña-larga",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, _, _ := buildAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "maria", Password: "contraseña-larga", Role: entity.RoleInvestor,
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Username: "maria", Password: "otra-contraseña", Role: entity.RoleInvestor,
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestRegister_NombreDeEmpresaDuplicado(t *testing.T) {
	uc, _, _ := buildAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "maria", Password: "contraseña-larga", Role: entity.RoleInvestee, CompanyName: "Acme Corp",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Username: "pedro", Password: "contraseña-larga", Role: entity.RoleInvestee, CompanyName: "Acme Corp",
	})
	assert.ErrorIs(t, err, domain.ErrCompanyAlreadyExists)
}

// Una falla de almacenamiento en la verificación de duplicados se propaga;
// nunca debe leerse como "el nombre está libre".
func TestRegister_FallaDeLectura_SePropaga(t *testing.T) {
	uc, users, _ := buildAuthUC()
	users.lookupErr = errors.New("conexión perdida")

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username:    "maria",
		Password:    "contraseña-larga",
		Role:        entity.RoleInvestee,
		CompanyName: "Acme Corp",
	})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, users.byID, "ningún usuario creado tras la falla")
}

func TestRegister_FallaDeLecturaDeEmpresa_SePropaga(t *testing.T) {
	uc, users, companies := buildAuthUC()
	companies.lookupErr = errors.New("conexión perdida")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username:    "maria",
		Password:    "contraseña-larga",
		Role:        entity.RoleInvestee,
		CompanyName: "Acme Corp",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCompanyAlreadyExists)
	assert.Empty(t, users.byID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_InvesteeRecibeTokenConCompanyID(t *testing.T) {
	uc, _, _ := buildAuthUC()
	reg, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "maria", Password: "contraseña-larga", Role: entity.RoleInvestee, CompanyName: "Acme Corp",
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Username: "maria", Password: "contraseña-larga"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, companyID, role, err := pkgjwt.Parse("secret-de-test", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, reg.CompanyID, companyID)
	assert.Equal(t, entity.RoleInvestee, role)
}

func TestLogin_InvestorRecibeTokenSinCompanyID(t *testing.T) {
	uc, _, _ := buildAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "fondo", Password: "contraseña-larga", Role: entity.RoleInvestor,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Username: "fondo", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, companyID, role, err := pkgjwt.Parse("secret-de-test", resp.Token)
	require.NoError(t, err)
	assert.Empty(t, companyID, "la visibilidad del investor se resuelve por vínculo, no por claim")
	assert.Equal(t, entity.RoleInvestor, role)
}

// El mensaje de error nunca revela si falló el usuario o la contraseña.
func TestLogin_CredencialesInvalidas_ErrorGenerico(t *testing.T) {
	uc, _, _ := buildAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "maria", Password: "contraseña-larga", Role: entity.RoleInvestor,
	})
	require.NoError(t, err)

	_, errUser := uc.Login(dto.LoginRequest{Username: "no-existe", Password: "da igual"})
	_, errPass := uc.Login(dto.LoginRequest{Username: "maria", Password: "incorrecta"})

	assert.ErrorIs(t, errUser, domain.ErrUnauthorized)
	assert.ErrorIs(t, errPass, domain.ErrUnauthorized)
	assert.Equal(t, errUser, errPass, "ambos fallos deben ser indistinguibles")
}

func TestLogin_UsuarioInactivo_Forbidden(t *testing.T) {
	uc, users, _ := buildAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "maria", Password: "contraseña-larga", Role: entity.RoleInvestor,
	})
	require.NoError(t, err)

	user, _ := users.GetByUsername("maria")
	user.Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Username: "maria", Password: "contraseña-larga"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
