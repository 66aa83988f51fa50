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
	"github.com/jhoicas/Prestamos-api/internal/application/auth"
	"github.com/jhoicas/Prestamos-api/internal/application/directory"
	"github.com/jhoicas/Prestamos-api/internal/application/ledger"
	"github.com/jhoicas/Prestamos-api/internal/application/reports"
	infrapdf "github.com/jhoicas/Prestamos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Prestamos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Prestamos-api/internal/interfaces/http"
	"github.com/jhoicas/Prestamos-api/pkg/config"
	"github.com/jhoicas/Prestamos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	userRepo := postgres.NewUserRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, userRepo, clientRepo)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := ledger.NewReceiptUseCase(movementRepo, equipmentRepo, userRepo, clientRepo, receiptGenerator)
	equipmentUC := directory.NewEquipmentUseCase(equipmentRepo, txRunner)
	userUC := directory.NewUserUseCase(userRepo, movementRepo)
	clientUC := directory.NewClientUseCase(clientRepo)
	reportsUC := reports.NewReportsUseCase(reportRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Prestamos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		EquipmentUC: equipmentUC,
		UserUC:      userUC,
		ClientUC:    clientUC,
		LedgerUC:    ledgerUC,
		ReceiptUC:   receiptUC,
		ReportsUC:   reportsUC,
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
