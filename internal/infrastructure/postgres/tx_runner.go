package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/revenue-analytics-api/internal/application/auth"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/repository"
)

// Verificar en tiempo de compilación que TxRunner implementa auth.TxRunner.
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration inicia una transacción con repos de usuarios y empresas
// atados a la tx y hace Commit o Rollback. El registro de un investee crea
// usuario y empresa como unidad: nunca queda un investee sin empresa.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	companyRepo := NewCompanyRepository(tx)

	if err := fn(userRepo, companyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
