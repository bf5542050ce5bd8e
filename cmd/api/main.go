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

	"github.com/wayra/taller-api/internal/application/auth"
	"github.com/wayra/taller-api/internal/application/billing"
	"github.com/wayra/taller-api/internal/application/inventory"
	"github.com/wayra/taller-api/internal/application/orders"
	"github.com/wayra/taller-api/internal/application/reports"
	"github.com/wayra/taller-api/internal/application/settings"
	"github.com/wayra/taller-api/internal/application/usecase"
	infrapdf "github.com/wayra/taller-api/internal/infrastructure/pdf"
	"github.com/wayra/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/wayra/taller-api/internal/interfaces/http"
	"github.com/wayra/taller-api/pkg/config"
	"github.com/wayra/taller-api/pkg/logger"
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
	clientRepo := postgres.NewClientRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	accountingRepo := postgres.NewAccountingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(clientRepo, vehicleRepo)
	productUC := usecase.NewProductUseCase(productRepo, settingsRepo)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	inventoryUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, movRepo)
	orderUC := orders.NewCreateOrderUseCase(
		txRunner, clientRepo, vehicleRepo, userRepo, productRepo, orderRepo, settingsRepo,
	)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, orderRepo, clientRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator("Taller Wayra")
	pdfUC := billing.NewPDFUseCase(invoiceRepo, orderRepo, clientRepo, vehicleRepo, productRepo, pdfGenerator)
	settingsUC := settings.NewUseCase(settingsRepo, productRepo)
	reportUC := reports.NewUseCase(accountingRepo)

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
		Title:    "Taller Wayra API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    clientUC,
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		OrderUC:     orderUC,
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		SettingsUC:  settingsUC,
		ReportUC:    reportUC,
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
