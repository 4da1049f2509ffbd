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

	"github.com/jhoicas/despensa-api/internal/application/usecase"
	"github.com/jhoicas/despensa-api/internal/infrastructure/network"
	"github.com/jhoicas/despensa-api/internal/infrastructure/openfoodfacts"
	"github.com/jhoicas/despensa-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/despensa-api/internal/interfaces/http"
	"github.com/jhoicas/despensa-api/pkg/config"
	"github.com/jhoicas/despensa-api/pkg/logger"
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
		Str("strategy", cfg.Inventory.Strategy).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	strategy, err := usecase.ParseStrategy(cfg.Inventory.Strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("INVENTORY_STRATEGY inválida")
	}

	recordRepo := postgres.NewLookupRecordRepository(pool)
	logRepo := postgres.NewInventoryLogRepository(pool)

	offTimeout := time.Duration(cfg.OFF.TimeoutSeconds) * time.Second
	offClient := openfoodfacts.NewClient(cfg.OFF.BaseURL, offTimeout)
	probe, err := network.NewDialProbe(cfg.OFF.BaseURL, 3*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("OFF_BASE_URL inválida")
	}

	lookupUC := usecase.NewLookupUseCase(recordRepo, offClient, probe)
	inventoryUC := usecase.NewInventoryUseCase(strategy, recordRepo, logRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Despensa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LookupUC:    lookupUC,
		InventoryUC: inventoryUC,
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
