package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/revenue-analytics-api/internal/application/access"
	"github.com/jhoicas/revenue-analytics-api/internal/application/auth"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dataset"
	"github.com/jhoicas/revenue-analytics-api/internal/application/ports"
	"github.com/jhoicas/revenue-analytics-api/internal/application/usecase"
	infraai "github.com/jhoicas/revenue-analytics-api/internal/infrastructure/ai"
	"github.com/jhoicas/revenue-analytics-api/internal/infrastructure/ingest"
	"github.com/jhoicas/revenue-analytics-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/revenue-analytics-api/internal/interfaces/http"
	"github.com/jhoicas/revenue-analytics-api/pkg/config"
	"github.com/jhoicas/revenue-analytics-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	accessRepo := postgres.NewAccessRepository(pool)
	datasetRepo := postgres.NewDatasetRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	accessUC := access.NewUseCase(userRepo, companyRepo, accessRepo)

	parser := ingest.NewParser()
	uploadUC := dataset.NewUploadUseCase(companyRepo, datasetRepo, parser)
	queryUC := dataset.NewQueryUseCase(userRepo, companyRepo, accessRepo, datasetRepo)

	// Sin OPENAI_API_KEY el caso de uso opera solo con el resumen local.
	var llm ports.NarrativeService
	if cfg.AI.APIKey != "" {
		llm = infraai.NewOpenAIService(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature, cfg.AI.MaxTokens)
	} else {
		log.Warn().Msg("OPENAI_API_KEY no configurada, narrativas en modo local")
	}
	narrativeUC := usecase.NewNarrativeUseCase(queryUC, llm, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    25 << 20, // margen sobre el límite de subida de 20 MB
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Revenue Analytics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		AccessUC:    accessUC,
		UploadUC:    uploadUC,
		QueryUC:     queryUC,
		NarrativeUC: narrativeUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
