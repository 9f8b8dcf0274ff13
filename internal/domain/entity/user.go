package entity

import "time"

// Roles válidos para User. El rol es inmutable después del registro.
const (
	RoleInvestee = "investee"
	RoleInvestor = "investor"
)

// User representa un usuario del sistema.
// Un investee es dueño de exactamente una Company; un investor solo ve las
// empresas vinculadas vía investor_companies.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // investee, investor
	CompanyName  string // solo para investees; vacío en investors
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
