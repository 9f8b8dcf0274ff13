package entity

import "time"

// Company representa una empresa cuyos datos de ingresos se analizan.
// Pertenece a exactamente un usuario investee; el nombre es único.
type Company struct {
	ID         string
	Name       string
	InvesteeID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvestorCompanyLink vincula un investor con una Company y le otorga
// acceso de lectura a sus datasets. Su ausencia es el default (sin acceso).
type InvestorCompanyLink struct {
	ID         string
	InvestorID string
	CompanyID  string
	CreatedAt  time.Time
}
