package dto

import "time"

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyListResponse listado de empresas accesibles según el rol del usuario.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}

// GrantAccessRequest entrada para vincular o desvincular un investor de la
// empresa del investee autenticado (la empresa sale del token, nunca del body).
type GrantAccessRequest struct {
	InvestorID string `json:"investor_id" validate:"required,uuid"`
}
