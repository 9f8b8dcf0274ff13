package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/domain"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/repository"
	"github.com/jhoicas/revenue-analytics-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta el registro (usuario + empresa) en una sola transacción.
// La implementación vive en infrastructure/postgres.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	txRunner    TxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, txRunner TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// Register crea un usuario con hash bcrypt. Si el rol es investee, crea
// también su empresa en la misma transacción: la invariante empresa <->
// investee nunca queda a medias. El rol es inmutable después del registro.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	companyName := strings.TrimSpace(in.CompanyName)

	switch in.Role {
	case entity.RoleInvestee:
		if companyName == "" {
			return nil, domain.ErrInvalidInput // investee sin empresa
		}
	case entity.RoleInvestor:
		if companyName != "" {
			return nil, domain.ErrInvalidInput // investor no es dueño de empresa
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	if companyName != "" {
		dup, err := uc.companyRepo.GetByName(companyName)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrCompanyAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CompanyName:  companyName,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var companyID string
	err = uc.txRunner.RunRegistration(ctx, func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
	) error {
		if err := users.Create(user); err != nil {
			return err
		}
		if in.Role != entity.RoleInvestee {
			return nil
		}
		company := &entity.Company{
			ID:         uuid.New().String(),
			Name:       companyName,
			InvesteeID: user.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		companyID = company.ID
		return companies.Create(company)
	})
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	resp.CompanyID = companyID
	return resp, nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Cualquier mismatch produce ErrUnauthorized genérico: nunca se revela si
// falló el usuario o la contraseña.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	// companyID va en el token solo para investees; los investors resuelven
	// su visibilidad contra investor_companies en cada lectura.
	var companyID string
	if user.Role == entity.RoleInvestee {
		company, err := uc.companyRepo.GetByInvestee(user.ID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			companyID = company.ID
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	resp.CompanyID = companyID
	return &dto.LoginResponse{Token: token, User: *resp}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		CompanyName: u.CompanyName,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
