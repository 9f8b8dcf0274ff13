package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/revenue-analytics-api/internal/application/access"
	"github.com/jhoicas/revenue-analytics-api/internal/application/auth"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dataset"
	"github.com/jhoicas/revenue-analytics-api/internal/application/usecase"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	AccessUC    *access.UseCase
	UploadUC    *dataset.UploadUseCase
	QueryUC     *dataset.QueryUseCase
	NarrativeUC *usecase.NarrativeUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Vínculos de lectura: los administra el investee dueño de la empresa
	accessGroup := protected.Group("/access", RequireRole(entity.RoleInvestee))
	accessHandler := NewAccessHandler(deps.AccessUC)
	accessGroup.Post("/grant", accessHandler.Grant)
	accessGroup.Post("/revoke", accessHandler.Revoke)

	// Empresas visibles para el usuario autenticado
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.QueryUC)
	companies.Get("/", companyHandler.List)

	// Subida de datos: la empresa destino se resuelve por el investee del token
	datasetHandler := NewDatasetHandler(deps.UploadUC, deps.QueryUC)
	datasets := protected.Group("/datasets", RequireRole(entity.RoleInvestee))
	datasets.Post("/upload", datasetHandler.Upload)

	// Lectura de datasets por empresa (investee dueño o investor con acceso)
	companies.Get("/:id/datasets", datasetHandler.Overview)
	companies.Get("/:id/datasets/:type", datasetHandler.Get)
	companies.Delete("/:id/datasets/:type", RequireRole(entity.RoleInvestee), datasetHandler.Delete)

	// Narrativas y chat contextual
	aiHandler := NewAIHandler(deps.NarrativeUC)
	companies.Post("/:id/datasets/:type/summary", aiHandler.Summarize)
	companies.Post("/:id/datasets/:type/chat", aiHandler.Chat)
}
